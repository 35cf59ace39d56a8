// Package retry executes remote operations with linear backoff.
package retry

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Policy controls how often an operation is attempted and how its
// failures are classified.
type Policy struct {
	MaxAttempts int
	Delay       time.Duration
	// Retryable reports whether an error is transient. A nil predicate
	// treats every error as transient.
	Retryable func(error) bool
}

// Do runs op up to MaxAttempts times. A transient failure is logged and
// retried after Delay multiplied by the attempt number; any other error
// propagates immediately. On exhaustion the last captured error
// propagates; when no attempt ever ran, a generic error is returned.
func Do(ctx context.Context, logger *slog.Logger, p Policy, name string, op func(context.Context) error) error {
	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := op(ctx)
		if err == nil {
			return nil
		}
		if p.Retryable != nil && !p.Retryable(err) {
			return err
		}
		lastErr = err
		logger.Warn(name+" failed",
			"attempt", attempt,
			"max_attempts", p.MaxAttempts,
			"error", err)
		if attempt < p.MaxAttempts {
			if err := sleep(ctx, p.Delay*time.Duration(attempt)); err != nil {
				return err
			}
		}
	}
	if lastErr != nil {
		return lastErr
	}
	return fmt.Errorf("%s failed with no error captured", name)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
