package session

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Summary describes one saved snapshot for listings.
type Summary struct {
	Path         string `json:"path"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
	MessageCount int    `json:"message_count"`
	FirstPrompt  string `json:"first_prompt,omitempty"`
}

// Summaries lists the snapshots under dir, newest first. Snapshots that
// cannot be read are skipped and reported as warnings; a missing
// directory simply yields no summaries.
func Summaries(dir string) ([]Summary, []error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, []error{fmt.Errorf("failed to read session dir: %w", err)}
	}

	var summaries []Summary
	var warnings []error
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "session_") || !strings.HasSuffix(name, ".json") {
			continue
		}
		path := filepath.Join(dir, name)
		state, err := Load(path)
		if err != nil {
			warnings = append(warnings, err)
			continue
		}
		summaries = append(summaries, Summary{
			Path:         path,
			CreatedAt:    state.CreatedAt,
			UpdatedAt:    state.UpdatedAt,
			MessageCount: len(state.Messages),
			FirstPrompt:  firstPrompt(state.Messages),
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt > summaries[j].CreatedAt
	})
	return summaries, warnings
}

func firstPrompt(messages []Message) string {
	for _, m := range messages {
		if m.Role == "user" {
			oneLine := strings.Join(strings.Fields(m.Content), " ")
			return truncate(oneLine, 80)
		}
	}
	return ""
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
