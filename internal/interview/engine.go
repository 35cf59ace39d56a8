// Package interview drives the requirement-gathering conversation: it
// provisions the remote agent, relays user turns, polls runs to
// completion, and persists the transcript and the generated document.
package interview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/cinience/spec-creator/internal/config"
	"github.com/cinience/spec-creator/internal/foundry"
	"github.com/cinience/spec-creator/internal/retry"
	"github.com/cinience/spec-creator/internal/session"
)

// ErrRunFailed marks a turn aborted because the service reported the
// run as failed. The wrapped text carries the remote error.
var ErrRunFailed = errors.New("run failed")

// ErrNoReply marks a completed run that produced no assistant text.
var ErrNoReply = errors.New("no assistant reply")

// RemoteClient is the slice of the agents service the engine consumes.
// *foundry.Client satisfies it.
type RemoteClient interface {
	CreateAgent(ctx context.Context, req foundry.CreateAgentRequest) (*foundry.Agent, error)
	CreateThread(ctx context.Context) (*foundry.Thread, error)
	CreateMessage(ctx context.Context, threadID string, req foundry.CreateMessageRequest) (*foundry.Message, error)
	CreateRun(ctx context.Context, threadID string, req foundry.CreateRunRequest) (*foundry.Run, error)
	GetRun(ctx context.Context, threadID, runID string) (*foundry.Run, error)
	ListMessages(ctx context.Context, threadID string) (*foundry.MessageList, error)
	DeleteAgent(ctx context.Context, agentID string) (*foundry.AgentDeletion, error)
}

// Engine owns one interview: the remote identifiers, the local
// transcript, and the cleanup duties when the conversation ends.
type Engine struct {
	cfg    *config.Config
	client RemoteClient
	state  *session.State
	logger *slog.Logger
	policy retry.Policy

	agentID  string
	threadID string
}

// New assembles an engine around an existing transcript. The retry
// policy for the remote create operations comes from the config.
func New(cfg *config.Config, client RemoteClient, state *session.State, logger *slog.Logger) *Engine {
	return &Engine{
		cfg:    cfg,
		client: client,
		state:  state,
		logger: logger,
		policy: retry.Policy{
			MaxAttempts: cfg.MaxRetries,
			Delay:       cfg.RetryDelay,
			Retryable:   foundry.IsTransient,
		},
	}
}

// Bootstrap provisions the remote agent and the conversation thread,
// recording both identifiers in the session.
func (e *Engine) Bootstrap(ctx context.Context) error {
	var agent *foundry.Agent
	err := retry.Do(ctx, e.logger, e.policy, "agent creation", func(ctx context.Context) error {
		created, err := e.client.CreateAgent(ctx, foundry.CreateAgentRequest{
			Model:        e.cfg.ModelName,
			Name:         e.cfg.AgentName,
			Instructions: Instructions,
		})
		if err != nil {
			return err
		}
		agent = created
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to create agent: %w", err)
	}
	e.agentID = agent.ID
	e.state.AgentID = agent.ID

	var thread *foundry.Thread
	err = retry.Do(ctx, e.logger, e.policy, "thread creation", func(ctx context.Context) error {
		created, err := e.client.CreateThread(ctx)
		if err != nil {
			return err
		}
		thread = created
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to create thread: %w", err)
	}
	e.threadID = thread.ID
	e.state.ThreadID = thread.ID

	e.logger.Info("agent ready",
		"agent_id", e.agentID,
		"thread_id", e.threadID,
		"model", e.cfg.ModelName)
	return nil
}

// SendMessage runs one conversation turn: deliver the user text, start
// a run, poll it to a terminal status, and return the newest assistant
// reply. The user message stays in the transcript even when the turn
// fails afterwards, so a saved session shows what was asked.
func (e *Engine) SendMessage(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	err := retry.Do(ctx, e.logger, e.policy, "message send", func(ctx context.Context) error {
		_, err := e.client.CreateMessage(ctx, e.threadID, foundry.CreateMessageRequest{
			Role:    foundry.RoleUser,
			Content: content,
		})
		return err
	})
	if err != nil {
		return "", fmt.Errorf("failed to send message: %w", err)
	}
	e.state.AddMessage(foundry.RoleUser, content)

	var run *foundry.Run
	err = retry.Do(ctx, e.logger, e.policy, "run creation", func(ctx context.Context) error {
		created, err := e.client.CreateRun(ctx, e.threadID, foundry.CreateRunRequest{AssistantID: e.agentID})
		if err != nil {
			return err
		}
		run = created
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to create run: %w", err)
	}

	run, err = e.pollRun(ctx, run)
	if err != nil {
		return "", err
	}

	switch run.Status {
	case foundry.RunStatusCompleted:
	case foundry.RunStatusFailed:
		detail := runErrorText(run.LastError)
		e.logger.Error("run failed", "run_id", run.ID, "error", detail)
		return "", fmt.Errorf("%w: %s", ErrRunFailed, detail)
	default:
		return "", fmt.Errorf("run ended with status %q", run.Status)
	}

	reply, err := e.newestAssistantText(ctx)
	if err != nil {
		if errors.Is(err, ErrNoReply) {
			e.logger.Warn("run completed without an assistant reply", "run_id", run.ID)
		}
		return "", err
	}
	e.state.AddMessage(foundry.RoleAssistant, reply)
	return reply, nil
}

// pollRun refreshes the run at the configured interval until it
// reaches a terminal status. Each cycle waits first, so a run that is
// already terminal on arrival costs no extra fetch.
func (e *Engine) pollRun(ctx context.Context, run *foundry.Run) (*foundry.Run, error) {
	for !run.Status.Terminal() {
		if err := wait(ctx, e.cfg.PollInterval); err != nil {
			return nil, err
		}
		refreshed, err := e.client.GetRun(ctx, e.threadID, run.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to poll run: %w", err)
		}
		run = refreshed
	}
	return run, nil
}

// newestAssistantText fetches the thread messages, newest first, and
// returns the text of the top entry when it came from the assistant.
func (e *Engine) newestAssistantText(ctx context.Context) (string, error) {
	list, err := e.client.ListMessages(ctx, e.threadID)
	if err != nil {
		return "", fmt.Errorf("failed to list messages: %w", err)
	}
	if len(list.Data) == 0 {
		return "", ErrNoReply
	}
	newest := list.Data[0]
	if newest.Role != foundry.RoleAssistant {
		return "", ErrNoReply
	}
	text := newest.Text()
	if text == "" {
		return "", ErrNoReply
	}
	return text, nil
}

// WriteSpec persists the generated document to the configured output
// path, overwriting any previous version.
func (e *Engine) WriteSpec(content string) (string, error) {
	if err := os.WriteFile(e.cfg.OutputFile, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write spec: %w", err)
	}
	e.logger.Info("spec written", "path", e.cfg.OutputFile, "bytes", len(content))
	return e.cfg.OutputFile, nil
}

// SaveSession snapshots the transcript to the session directory
// without touching the remote service.
func (e *Engine) SaveSession() (string, error) {
	path, err := e.state.Save(e.cfg.SessionDir)
	if err != nil {
		return "", err
	}
	e.logger.Info("session saved", "path", path)
	return path, nil
}

// Cleanup deletes the remote agent, when one was created, and saves
// the session. Failures are logged and swallowed: teardown must never
// keep the process from exiting.
func (e *Engine) Cleanup(ctx context.Context) {
	if e.agentID != "" {
		if _, err := e.client.DeleteAgent(ctx, e.agentID); err != nil {
			e.logger.Error("failed to delete agent", "agent_id", e.agentID, "error", err)
		} else {
			e.logger.Info("agent deleted", "agent_id", e.agentID)
		}
	}

	if _, err := e.SaveSession(); err != nil {
		e.logger.Warn("failed to save session", "error", err)
	}
}

func runErrorText(lastErr *foundry.RunError) string {
	if lastErr == nil {
		return "unknown error"
	}
	if lastErr.Code != "" {
		return fmt.Sprintf("%s (%s)", lastErr.Message, lastErr.Code)
	}
	return lastErr.Message
}

// wait sleeps for d unless the context ends first.
func wait(ctx context.Context, d time.Duration) error {
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
