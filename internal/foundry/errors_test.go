package foundry

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"
)

type fakeNetError struct{}

func (fakeNetError) Error() string   { return "dial tcp: i/o timeout" }
func (fakeNetError) Timeout() bool   { return true }
func (fakeNetError) Temporary() bool { return true }

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "server error", err: &APIError{StatusCode: 500}, want: true},
		{name: "bad gateway", err: &APIError{StatusCode: 502}, want: true},
		{name: "throttled", err: &APIError{StatusCode: 429}, want: true},
		{name: "request timeout", err: &APIError{StatusCode: 408}, want: true},
		{name: "not found", err: &APIError{StatusCode: 404}, want: false},
		{name: "bad request", err: &APIError{StatusCode: 400}, want: false},
		{name: "unauthorized", err: &APIError{StatusCode: 401}, want: false},
		{
			name: "wrapped server error",
			err:  fmt.Errorf("failed to send request: %w", &APIError{StatusCode: 503}),
			want: true,
		},
		{
			name: "transport failure",
			err:  fmt.Errorf("failed to send request: %w", &url.Error{Op: "Post", URL: "https://x", Err: errors.New("connection refused")}),
			want: true,
		},
		{name: "net timeout", err: fakeNetError{}, want: true},
		{name: "canceled", err: context.Canceled, want: false},
		{
			name: "canceled inside transport error",
			err:  &url.Error{Op: "Post", URL: "https://x", Err: context.Canceled},
			want: false,
		},
		{name: "deadline exceeded", err: context.DeadlineExceeded, want: true},
		{name: "plain error", err: errors.New("boom"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTransient(tt.err); got != tt.want {
				t.Fatalf("IsTransient(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestAPIErrorString(t *testing.T) {
	withCode := &APIError{StatusCode: 429, Code: "rate_limit_exceeded", Message: "slow down"}
	if got := withCode.Error(); got != "agents API error [429]: slow down (code: rate_limit_exceeded)" {
		t.Errorf("unexpected error string: %q", got)
	}

	bare := &APIError{StatusCode: 500, Message: "boom"}
	if got := bare.Error(); got != "agents API error [500]: boom" {
		t.Errorf("unexpected error string: %q", got)
	}
}
