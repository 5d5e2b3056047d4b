package catalog

import (
	"fmt"

	json "github.com/goccy/go-json"
)

const (
	localizationKey = "Localization"
	headerKey       = "Header"
	identifierKey   = "Identifier"
	guidKey         = "Guid"
)

// Entry is one catalog record.
type Entry struct {
	obj map[string]any
}

// NewEntry wraps a decoded JSON object.
func NewEntry(obj map[string]any) Entry {
	return Entry{obj: obj}
}

// Has reports whether the localization table has a value for lang.
func (e Entry) Has(lang string) bool {
	loc, _ := e.obj[localizationKey].(map[string]any)
	_, ok := loc[lang]
	return ok
}

// Text returns the localized string for lang.
func (e Entry) Text(lang string) (string, bool) {
	loc, _ := e.obj[localizationKey].(map[string]any)
	s, ok := loc[lang].(string)
	return s, ok
}

// SetText stores text for lang, creating the localization table if needed.
func (e Entry) SetText(lang, text string) {
	loc, ok := e.obj[localizationKey].(map[string]any)
	if !ok {
		loc = make(map[string]any)
		e.obj[localizationKey] = loc
	}
	loc[lang] = text
}

// Header returns the entry's display header.
func (e Entry) Header() string { return e.str(headerKey) }

// Identifier returns the catalog identifier.
func (e Entry) Identifier() string { return e.str(identifierKey) }

// GUID returns the text resource GUID as written in the catalog, or "".
// It is informational only; several entries may share one GUID.
func (e Entry) GUID() string { return e.str(guidKey) }

func (e Entry) str(key string) string {
	switch v := e.obj[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
