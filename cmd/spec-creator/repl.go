package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cinience/spec-creator/internal/interview"
	"github.com/cinience/spec-creator/internal/specmark"
)

const greeting = "Hi! I'm here to help you write your spec. " +
	"What feature or app are you looking to build today?"

// runLoop drives the conversation until the user exits, input ends, a
// spec is generated, or the context is cancelled.
func runLoop(ctx context.Context, eng *interview.Engine, in io.Reader, out, errOut io.Writer, colors bool) {
	agentLabel := colorize(colors, ansiBoldYellow, "Agent:")

	fmt.Fprintln(out, colorize(colors, ansiGreen, "Agent ready! Let's start."))
	fmt.Fprintf(out, "%s %s\n", agentLabel, greeting)
	fmt.Fprintln(out, colorize(colors, ansiDim, "Type 'exit' or 'quit' to end, 'save' to save session."))

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 1024), 1024*1024)

	for ctx.Err() == nil {
		fmt.Fprintf(out, "%s ", colorize(colors, ansiBoldCyan, "You>"))
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				fmt.Fprintf(errOut, "read failed: %v\n", err)
			}
			return
		}
		if ctx.Err() != nil {
			return
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		switch strings.ToLower(input) {
		case "exit", "quit":
			if confirmExit(scanner, out) {
				fmt.Fprintln(out, colorize(colors, ansiYellow, "Exiting..."))
				return
			}
			continue
		case "save":
			path, err := eng.SaveSession()
			if err != nil {
				fmt.Fprintf(errOut, "Failed to save session: %v\n", err)
				continue
			}
			fmt.Fprintln(out, colorize(colors, ansiGreen, "Session saved to "+path))
			continue
		}

		fmt.Fprintln(out, colorize(colors, ansiDim, "Thinking..."))
		reply, err := eng.SendMessage(ctx, input)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			switch {
			case errors.Is(err, interview.ErrNoReply):
				// Already logged by the engine; nothing to show.
			case errors.Is(err, interview.ErrRunFailed):
				detail := strings.TrimPrefix(err.Error(), interview.ErrRunFailed.Error()+": ")
				fmt.Fprintf(out, "%s %s\n", colorize(colors, ansiBoldRed, "Run failed:"), detail)
			default:
				fmt.Fprintf(out, "%s %v\n", colorize(colors, ansiBoldRed, "Error during communication:"), err)
			}
			continue
		}

		if spec, ok := specmark.Extract(reply); ok && spec != "" {
			path, err := eng.WriteSpec(spec)
			if err != nil {
				fmt.Fprintf(errOut, "Failed to write spec: %v\n", err)
				continue
			}
			fmt.Fprintf(out, "\n%s Spec generation complete!\n", agentLabel)
			printSpecPreview(out, spec, colors)
			fmt.Fprintln(out, colorize(colors, ansiBoldGreen, "Successfully saved to "+path))
			return
		}

		fmt.Fprintf(out, "\n%s %s\n\n", agentLabel, reply)
	}
}

// confirmExit asks for explicit confirmation, defaulting to no. A
// closed input stream counts as a yes: there is nothing left to read.
func confirmExit(scanner *bufio.Scanner, out io.Writer) bool {
	fmt.Fprint(out, "Are you sure you want to exit? [y/N]: ")
	if !scanner.Scan() {
		return true
	}
	switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
	case "y", "yes":
		return true
	}
	return false
}
