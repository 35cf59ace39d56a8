// Package specmark detects the delimiter pair that brackets a finished
// specification inside an assistant reply.
package specmark

import "strings"

// Delimiters the remote agent is instructed to emit around the final
// document.
const (
	Start = "!!!SPEC_START!!!"
	End   = "!!!SPEC_END!!!"
)

// Extract returns the trimmed text between the first occurrence of each
// delimiter. It reports false when either delimiter is missing or the
// end delimiter appears before the start delimiter; such replies are
// ordinary conversational text.
func Extract(text string) (string, bool) {
	startIdx := strings.Index(text, Start)
	if startIdx < 0 {
		return "", false
	}
	endIdx := strings.Index(text, End)
	if endIdx < 0 {
		return "", false
	}
	interiorStart := startIdx + len(Start)
	if endIdx < interiorStart {
		return "", false
	}
	return strings.TrimSpace(text[interiorStart:endIdx]), true
}
