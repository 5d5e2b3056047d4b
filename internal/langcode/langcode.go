// Package langcode is the registry of catalog language codes.
package langcode

import (
	"errors"
	"fmt"
	"strings"
)

// English is the code of the language every catalog entry carries.
const English = "eng"

// ErrUnsupported is returned for codes or names outside the registry.
var ErrUnsupported = errors.New("unsupported language")

type language struct {
	Code string
	Name string
}

// registry is ordered as catalogs list their languages.
var registry = []language{
	{Code: "eng", Name: "English"},
	{Code: "ger", Name: "German"},
	{Code: "fra", Name: "French"},
	{Code: "esp", Name: "Spanish"},
	{Code: "ita", Name: "Italian"},
	{Code: "pol", Name: "Polish"},
	{Code: "rus", Name: "Russian"},
	{Code: "zhs", Name: "Simplified Chinese"},
	{Code: "zht", Name: "Traditional Chinese"},
}

// aliases maps the column headers used by community spreadsheets.
var aliases = map[string]string{
	"chinese":   "zhs",
	"taiwanese": "zht",
}

// Codes returns every supported code in registry order.
func Codes() []string {
	codes := make([]string, len(registry))
	for i, l := range registry {
		codes[i] = l.Code
	}
	return codes
}

// Valid reports whether code is a supported language code.
func Valid(code string) bool {
	_, ok := lookup(code)
	return ok
}

// Validate returns ErrUnsupported for unknown codes.
func Validate(code string) error {
	if !Valid(code) {
		return fmt.Errorf("%w: %q (supported: %s)", ErrUnsupported, code, strings.Join(Codes(), ", "))
	}
	return nil
}

// Name returns the English name of code, or code itself when unknown.
func Name(code string) string {
	if l, ok := lookup(code); ok {
		return l.Name
	}
	return code
}

// FromName resolves a language name such as "German" or "Chinese" to its code.
// Matching is case-insensitive.
func FromName(name string) (string, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return "", false
	}
	if code, ok := aliases[n]; ok {
		return code, true
	}
	for _, l := range registry {
		if strings.ToLower(l.Name) == n {
			return l.Code, true
		}
	}
	return "", false
}

func lookup(code string) (language, bool) {
	for _, l := range registry {
		if l.Code == code {
			return l, true
		}
	}
	return language{}, false
}

// ExportName returns the lowercase language name used in text export file
// names, e.g. "german" for texts_german.xml and "chinese" for zhs.
func ExportName(code string) string {
	for alias, c := range aliases {
		if c == code {
			return alias
		}
	}
	if l, ok := lookup(code); ok {
		return strings.ToLower(l.Name)
	}
	return code
}
