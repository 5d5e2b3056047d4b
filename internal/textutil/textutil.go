package textutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FoldKey turns a display string into its case-insensitive lookup form.
// Casers are stateful, so a fresh one is created per call.
func FoldKey(s string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(s))
}

// Truncate shortens a string to maxLen runes, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}
