package textutil

import (
	"regexp"
	"strings"
)

// Decorated is a display string split into an optional leading bracket
// annotation, the core text and an optional trailing bracket annotation.
type Decorated struct {
	Prefix string
	Base   string
	Suffix string
}

var (
	// "(Old) Town Hall", "(Old) - Town Hall"
	leadingGroup = regexp.MustCompile(`(?s)^(\([^()]*\)\s*[-–—]?\s*)(.*)$`)
	// "Town Hall (ruined)", "Town Hall - (ruined)"
	trailingGroup = regexp.MustCompile(`(?s)^(.*?)(\s*[-–—]?\s*\([^()]*\))$`)
)

// Decompose separates at most one leading and one trailing parenthetical
// group from s. The prefix is extracted first and the suffix is searched on
// what remains, so a string made of a single group ends up entirely in Prefix.
// Case is preserved.
func Decompose(s string) Decorated {
	var d Decorated
	s = strings.TrimSpace(s)

	if m := leadingGroup.FindStringSubmatch(s); m != nil {
		d.Prefix = m[1]
		s = strings.TrimSpace(m[2])
	}

	if m := trailingGroup.FindStringSubmatch(s); m != nil {
		s = strings.TrimSpace(m[1])
		d.Suffix = m[2]
	}

	d.Base = strings.TrimSpace(s)
	return d
}

// Apply wraps text in the decorations of d.
func (d Decorated) Apply(text string) string {
	return strings.TrimSpace(d.Prefix + text + d.Suffix)
}

// String reassembles the decomposed string.
func (d Decorated) String() string {
	return d.Apply(d.Base)
}
