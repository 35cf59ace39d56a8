package config

import (
	"log/slog"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"PROJECT_ENDPOINT", "PROJECT_API_KEY", "API_VERSION", "MODEL_NAME",
		"AGENT_NAME", "MAX_RETRIES", "RETRY_DELAY_MS", "POLL_INTERVAL_MS",
		"REQUEST_TIMEOUT_MS", "OUTPUT_FILE", "SESSION_DIR", "LOG_FILE", "LOG_LEVEL",
	}
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("PROJECT_ENDPOINT", "https://foundry.example.com/api/projects/demo")

	cfg := Load()

	if cfg.ProjectEndpoint != "https://foundry.example.com/api/projects/demo" {
		t.Fatalf("unexpected endpoint: %q", cfg.ProjectEndpoint)
	}
	if cfg.ModelName != "gpt-5" {
		t.Errorf("expected default model, got %q", cfg.ModelName)
	}
	if cfg.AgentName != "spec-creator-agent" {
		t.Errorf("expected default agent name, got %q", cfg.AgentName)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("expected 3 retries, got %d", cfg.MaxRetries)
	}
	if cfg.RetryDelay != 2*time.Second {
		t.Errorf("expected 2s retry delay, got %v", cfg.RetryDelay)
	}
	if cfg.PollInterval != time.Second {
		t.Errorf("expected 1s poll interval, got %v", cfg.PollInterval)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("expected 30s request timeout, got %v", cfg.RequestTimeout)
	}
	if cfg.OutputFile != "spec.md" {
		t.Errorf("expected default output file, got %q", cfg.OutputFile)
	}
	if cfg.SessionDir != ".sessions" {
		t.Errorf("expected default session dir, got %q", cfg.SessionDir)
	}
	if cfg.LogFile != "spec_creator.log" {
		t.Errorf("expected default log file, got %q", cfg.LogFile)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("expected info level, got %v", cfg.LogLevel)
	}
	if cfg.APIKey != "" {
		t.Errorf("expected empty api key, got %q", cfg.APIKey)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PROJECT_ENDPOINT", "https://foundry.example.com")
	t.Setenv("PROJECT_API_KEY", "secret")
	t.Setenv("MODEL_NAME", "gpt-4o")
	t.Setenv("AGENT_NAME", "interviewer")
	t.Setenv("MAX_RETRIES", "5")
	t.Setenv("RETRY_DELAY_MS", "250")
	t.Setenv("POLL_INTERVAL_MS", "50")
	t.Setenv("REQUEST_TIMEOUT_MS", "1500")
	t.Setenv("OUTPUT_FILE", "out/product-spec.md")
	t.Setenv("SESSION_DIR", "/tmp/sessions")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()

	if cfg.APIKey != "secret" {
		t.Errorf("api key not picked up: %q", cfg.APIKey)
	}
	if cfg.ModelName != "gpt-4o" {
		t.Errorf("model override lost: %q", cfg.ModelName)
	}
	if cfg.AgentName != "interviewer" {
		t.Errorf("agent name override lost: %q", cfg.AgentName)
	}
	if cfg.MaxRetries != 5 {
		t.Errorf("retries override lost: %d", cfg.MaxRetries)
	}
	if cfg.RetryDelay != 250*time.Millisecond {
		t.Errorf("retry delay override lost: %v", cfg.RetryDelay)
	}
	if cfg.PollInterval != 50*time.Millisecond {
		t.Errorf("poll interval override lost: %v", cfg.PollInterval)
	}
	if cfg.RequestTimeout != 1500*time.Millisecond {
		t.Errorf("timeout override lost: %v", cfg.RequestTimeout)
	}
	if cfg.OutputFile != "out/product-spec.md" {
		t.Errorf("output file override lost: %q", cfg.OutputFile)
	}
	if cfg.SessionDir != "/tmp/sessions" {
		t.Errorf("session dir override lost: %q", cfg.SessionDir)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("log level override lost: %v", cfg.LogLevel)
	}
}

func TestLoadMalformedValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("PROJECT_ENDPOINT", "https://foundry.example.com")
	t.Setenv("MAX_RETRIES", "lots")
	t.Setenv("RETRY_DELAY_MS", "soon")
	t.Setenv("POLL_INTERVAL_MS", "-20")
	t.Setenv("LOG_LEVEL", "loud")

	cfg := Load()

	if cfg.MaxRetries != 3 {
		t.Errorf("malformed MAX_RETRIES should fall back to 3, got %d", cfg.MaxRetries)
	}
	if cfg.RetryDelay != 2*time.Second {
		t.Errorf("malformed RETRY_DELAY_MS should fall back, got %v", cfg.RetryDelay)
	}
	if cfg.PollInterval != time.Second {
		t.Errorf("non-positive POLL_INTERVAL_MS should fall back, got %v", cfg.PollInterval)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("unknown LOG_LEVEL should fall back to info, got %v", cfg.LogLevel)
	}
}

func TestLoadZeroRetriesIsKept(t *testing.T) {
	clearEnv(t)
	t.Setenv("PROJECT_ENDPOINT", "https://foundry.example.com")
	t.Setenv("MAX_RETRIES", "0")

	if got := Load().MaxRetries; got != 0 {
		t.Fatalf("MAX_RETRIES=0 must be honored, got %d", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		wantErr  bool
	}{
		{name: "endpoint set", endpoint: "https://foundry.example.com", wantErr: false},
		{name: "endpoint missing", endpoint: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{ProjectEndpoint: tt.endpoint}
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}
