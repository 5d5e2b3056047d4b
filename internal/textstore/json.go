package textstore

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"
)

// JSONLoader reads a flat JSON object of identifier to string.
// Non-string values are skipped.
type JSONLoader struct{}

func NewJSONLoader() *JSONLoader { return &JSONLoader{} }

func (l *JSONLoader) CanLoad(ext string) bool {
	return ext == ".json"
}

func (l *JSONLoader) Decode(r io.Reader) (*Store, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read json: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("json text store must be an object, got %v", tok)
	}

	var entries []Entry
	skipped := 0

	// Stream key by key so the file order survives.
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read json key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected json key %v", keyTok)
		}

		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("read json value for %q: %w", key, err)
		}
		text, ok := value.(string)
		if !ok {
			skipped++
			continue
		}
		entries = append(entries, Entry{ID: key, Text: text})
	}

	store := New(entries...)
	store.dropped += skipped
	return store, nil
}
