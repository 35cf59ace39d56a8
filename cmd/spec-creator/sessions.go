package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/cinience/spec-creator/internal/config"
	"github.com/cinience/spec-creator/internal/session"
)

func newSessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Inspect saved interview sessions",
	}
	cmd.AddCommand(newSessionsListCmd())
	cmd.AddCommand(newSessionsShowCmd())
	return cmd
}

func newSessionsListCmd() *cobra.Command {
	var (
		dir        string
		formatFlag string
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved sessions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				dir = defaultSessionDir()
			}
			summaries, warnings := session.Summaries(dir)

			errs := cmd.ErrOrStderr()
			for _, warn := range warnings {
				fmt.Fprintf(errs, "warning: %v\n", warn)
			}

			if limit > 0 && len(summaries) > limit {
				summaries = summaries[:limit]
			}

			return writeSummaries(cmd.OutOrStdout(), summaries, strings.ToLower(formatFlag))
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&dir, "session-dir", "",
		"Directory holding session snapshots (env: SESSION_DIR, default: "+config.DefaultSessionDir+")")
	flags.StringVar(&formatFlag, "format", "table", "output format: table, plain, or json")
	flags.IntVar(&limit, "limit", 0, "limit number of sessions returned (0 means no limit)")

	return cmd
}

func newSessionsShowCmd() *cobra.Command {
	var (
		dir        string
		formatFlag string
	)

	cmd := &cobra.Command{
		Use:   "show <session-file>",
		Short: "Print the transcript of a saved session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				dir = defaultSessionDir()
			}
			path, err := resolveSessionPath(args[0], dir)
			if err != nil {
				return err
			}
			state, err := session.Load(path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch strings.ToLower(formatFlag) {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(state)
			case "", "text":
				printTranscript(out, path, state, shouldUseColorAuto(out))
				return nil
			default:
				return fmt.Errorf("unsupported format: %s", formatFlag)
			}
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&dir, "session-dir", "",
		"Directory holding session snapshots (env: SESSION_DIR, default: "+config.DefaultSessionDir+")")
	flags.StringVar(&formatFlag, "format", "text", "output format: text or json")

	return cmd
}

func writeSummaries(w io.Writer, summaries []session.Summary, format string) error {
	switch format {
	case "", "table":
		writeSummaryTable(w, summaries)
		return nil
	case "plain":
		for _, s := range summaries {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
				displayTime(s.CreatedAt), displayTime(s.UpdatedAt),
				s.MessageCount, filepath.Base(s.Path), s.FirstPrompt)
		}
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(summaries)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func writeSummaryTable(w io.Writer, summaries []session.Summary) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Created", "Updated", "Msgs", "File", "First Prompt"})
	for _, s := range summaries {
		t.AppendRow(table.Row{
			displayTime(s.CreatedAt), displayTime(s.UpdatedAt),
			s.MessageCount, filepath.Base(s.Path), s.FirstPrompt,
		})
	}
	t.Render()
}

func printTranscript(out io.Writer, path string, state *session.State, colors bool) {
	const labelWidth = 8
	writeKV(out, labelWidth, "File", path)
	writeKV(out, labelWidth, "Created", displayTime(state.CreatedAt))
	writeKV(out, labelWidth, "Updated", displayTime(state.UpdatedAt))
	writeKV(out, labelWidth, "Messages", fmt.Sprintf("%d", len(state.Messages)))
	if state.AgentID != "" {
		writeKV(out, labelWidth, "Agent", state.AgentID)
	}
	if state.ThreadID != "" {
		writeKV(out, labelWidth, "Thread", state.ThreadID)
	}

	for i, msg := range state.Messages {
		if i == 0 {
			fmt.Fprintln(out)
		}
		header := fmt.Sprintf("[%s] %s", displayTime(msg.Timestamp), msg.Role)
		fmt.Fprintln(out, colorize(colors, roleColor(msg.Role), header))
		fmt.Fprintln(out, msg.Content)
		if i < len(state.Messages)-1 {
			fmt.Fprintln(out)
		}
	}
}

func resolveSessionPath(arg, root string) (string, error) {
	if arg == "" {
		return "", errors.New("session file is empty")
	}

	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		return arg, nil
	}

	candidate := filepath.Join(root, arg)
	if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
		return candidate, nil
	}

	return "", fmt.Errorf("session %q not found under %s", arg, root)
}

func defaultSessionDir() string {
	if dir := strings.TrimSpace(os.Getenv("SESSION_DIR")); dir != "" {
		return dir
	}
	return config.DefaultSessionDir
}

// displayTime compacts a stored timestamp for terminal output, leaving
// unparseable values untouched.
func displayTime(value string) string {
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.Format("2006-01-02 15:04:05")
	}
	return value
}
