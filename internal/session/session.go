// Package session tracks the local conversation transcript and its
// durable JSON snapshots.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const timeLayout = time.RFC3339Nano

// Message is one transcript entry. Immutable once appended.
type Message struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// State holds the conversation history plus the remote identifiers the
// conversation is bound to. Append order is preserved and timestamps
// never decrease.
type State struct {
	Messages  []Message `json:"messages"`
	ThreadID  string    `json:"thread_id"`
	AgentID   string    `json:"agent_id"`
	CreatedAt string    `json:"created_at"`
	UpdatedAt string    `json:"updated_at"`
}

// New creates an empty session stamped with the current time.
func New() *State {
	now := time.Now().Format(timeLayout)
	return &State{
		Messages:  []Message{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddMessage appends one transcript entry and bumps the update
// timestamp.
func (s *State) AddMessage(role, content string) {
	now := time.Now().Format(timeLayout)
	s.Messages = append(s.Messages, Message{Role: role, Content: content, Timestamp: now})
	s.UpdatedAt = now
}

// Filename derives the snapshot name from the creation timestamp,
// replacing colons and dots so the name is safe on any filesystem.
func (s *State) Filename() string {
	sanitized := strings.NewReplacer(":", "-", ".", "-").Replace(s.CreatedAt)
	return "session_" + sanitized + ".json"
}

// Save writes the session as indented JSON under dir, creating the
// directory when absent, and returns the snapshot path.
func (s *State) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create session dir: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal session: %w", err)
	}
	path := filepath.Join(dir, s.Filename())
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write session: %w", err)
	}
	return path, nil
}

// Load reads a snapshot back. Missing timestamps default to the current
// time and a missing message list to an empty one.
func Load(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse session: %w", err)
	}
	now := time.Now().Format(timeLayout)
	if s.CreatedAt == "" {
		s.CreatedAt = now
	}
	if s.UpdatedAt == "" {
		s.UpdatedAt = now
	}
	if s.Messages == nil {
		s.Messages = []Message{}
	}
	return &s, nil
}
