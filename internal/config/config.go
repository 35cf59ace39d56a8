// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultModelName      = "gpt-5"
	DefaultAgentName      = "spec-creator-agent"
	DefaultAPIVersion     = "2025-05-01"
	DefaultMaxRetries     = 3
	DefaultRetryDelay     = 2 * time.Second
	DefaultPollInterval   = time.Second
	DefaultRequestTimeout = 30 * time.Second
	DefaultOutputFile     = "spec.md"
	DefaultSessionDir     = ".sessions"
	DefaultLogFile        = "spec_creator.log"
)

// Config holds all static settings for one process run. Loaded once at
// startup and treated as immutable afterwards.
type Config struct {
	ProjectEndpoint string
	APIKey          string
	APIVersion      string
	ModelName       string
	AgentName       string
	MaxRetries      int
	RetryDelay      time.Duration
	PollInterval    time.Duration
	RequestTimeout  time.Duration
	OutputFile      string
	SessionDir      string
	LogFile         string
	LogLevel        slog.Level
}

// Load reads configuration from the environment, falling back to
// defaults for anything unset or malformed.
func Load() *Config {
	return &Config{
		ProjectEndpoint: strings.TrimSpace(os.Getenv("PROJECT_ENDPOINT")),
		APIKey:          strings.TrimSpace(os.Getenv("PROJECT_API_KEY")),
		APIVersion:      getEnv("API_VERSION", DefaultAPIVersion),
		ModelName:       getEnv("MODEL_NAME", DefaultModelName),
		AgentName:       getEnv("AGENT_NAME", DefaultAgentName),
		MaxRetries:      getEnvInt("MAX_RETRIES", DefaultMaxRetries),
		RetryDelay:      getEnvMillis("RETRY_DELAY_MS", DefaultRetryDelay),
		PollInterval:    getEnvMillis("POLL_INTERVAL_MS", DefaultPollInterval),
		RequestTimeout:  getEnvMillis("REQUEST_TIMEOUT_MS", DefaultRequestTimeout),
		OutputFile:      getEnv("OUTPUT_FILE", DefaultOutputFile),
		SessionDir:      getEnv("SESSION_DIR", DefaultSessionDir),
		LogFile:         getEnv("LOG_FILE", DefaultLogFile),
		LogLevel:        getEnvLevel("LOG_LEVEL", slog.LevelInfo),
	}
}

// Validate reports the first fatal configuration problem. Only the
// project endpoint is required; everything else has a usable default.
func (c *Config) Validate() error {
	if c.ProjectEndpoint == "" {
		return errors.New("PROJECT_ENDPOINT is not set in .env file")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvMillis(key string, fallback time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Millisecond
		}
	}
	return fallback
}

func getEnvLevel(key string, fallback slog.Level) slog.Level {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return fallback
}
