package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/cinience/spec-creator/internal/foundry"
)

const (
	ansiReset      = "\x1b[0m"
	ansiDim        = "\x1b[2m"
	ansiGreen      = "\x1b[32m"
	ansiYellow     = "\x1b[33m"
	ansiBoldRed    = "\x1b[1;31m"
	ansiBoldGreen  = "\x1b[1;32m"
	ansiBoldYellow = "\x1b[1;33m"
	ansiBoldBlue   = "\x1b[1;34m"
	ansiBoldCyan   = "\x1b[1;36m"
)

func colorize(enabled bool, code string, text string) string {
	if !enabled {
		return text
	}
	return code + text + ansiReset
}

func roleColor(role string) string {
	switch role {
	case foundry.RoleAssistant:
		return ansiBoldYellow
	case foundry.RoleUser:
		return ansiBoldCyan
	}
	return ansiDim
}

func shouldUseColorAuto(out io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := out.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func printBanner(out io.Writer, colors bool) {
	renderPanel(out, "", []string{"Spec Creator CLI", "Powered by Azure AI Foundry"}, colors, ansiBoldBlue, 0)
}

// printSpecPreview frames the generated document so the terminal
// transcript shows exactly what was written to disk.
func printSpecPreview(out io.Writer, content string, colors bool) {
	width := terminalWidth(out)
	renderPanel(out, "Generated Spec Preview", strings.Split(content, "\n"), colors, ansiGreen, width)
}

// renderPanel draws a rounded box around body. With maxWidth 0 the box
// fits the content; otherwise lines are clipped to the given total
// width. Display widths come from runewidth so wide glyphs line up.
func renderPanel(out io.Writer, title string, body []string, colors bool, borderCode string, maxWidth int) {
	inner := runewidth.StringWidth(title) + 1
	for _, line := range body {
		if w := runewidth.StringWidth(line); w > inner {
			inner = w
		}
	}
	if maxWidth > 4 && inner > maxWidth-4 {
		inner = maxWidth - 4
	}
	if tw := runewidth.StringWidth(title); title != "" && inner < tw+1 {
		inner = tw + 1
	}

	border := func(s string) string { return colorize(colors, borderCode, s) }

	if title == "" {
		fmt.Fprintln(out, border("╭"+strings.Repeat("─", inner+2)+"╮"))
	} else {
		dashes := inner - runewidth.StringWidth(title) - 1
		fmt.Fprintln(out, border("╭─ ")+title+border(" "+strings.Repeat("─", dashes)+"╮"))
	}
	for _, line := range body {
		clipped := runewidth.Truncate(line, inner, "…")
		fmt.Fprintf(out, "%s %s %s\n", border("│"), runewidth.FillRight(clipped, inner), border("│"))
	}
	fmt.Fprintln(out, border("╰"+strings.Repeat("─", inner+2)+"╯"))
}

func terminalWidth(out io.Writer) int {
	if file, ok := out.(*os.File); ok {
		if w, _, err := term.GetSize(int(file.Fd())); err == nil && w > 0 {
			return w
		}
	}
	if colsStr := os.Getenv("COLUMNS"); colsStr != "" {
		if v, err := strconv.Atoi(colsStr); err == nil && v > 0 {
			return v
		}
	}
	return 80
}

func writeKV(out io.Writer, width int, label string, value string) {
	fmt.Fprintf(out, "%-*s: %s\n", width, label, value)
}
