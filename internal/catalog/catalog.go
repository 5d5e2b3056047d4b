// Package catalog reads and writes preset catalogs: JSON documents whose
// "Buildings" array holds one object per game object, each with a
// "Localization" table keyed by language code.
//
// Documents are kept as generic JSON so fields this tool does not know about
// survive a load/save round trip.
package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
)

// EntriesKey is the top-level field holding the catalog entries.
const EntriesKey = "Buildings"

// ErrNoEntries is returned when a document has no catalog entries at all.
var ErrNoEntries = errors.New("no Buildings found in catalog")

// Document is a decoded catalog.
type Document struct {
	root    map[string]any
	entries []Entry
}

// Load reads a catalog file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Decode(bytes.NewReader(data))
}

// Decode parses a catalog. Numbers are kept verbatim as json.Number.
func Decode(r io.Reader) (*Document, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var root map[string]any
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	raw, _ := root[EntriesKey].([]any)
	if len(raw) == 0 {
		return nil, ErrNoEntries
	}

	doc := &Document{root: root, entries: make([]Entry, 0, len(raw))}
	for _, item := range raw {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		doc.entries = append(doc.entries, Entry{obj: obj})
	}
	if len(doc.entries) == 0 {
		return nil, ErrNoEntries
	}
	return doc, nil
}

// Entries returns the catalog entries. Mutating an entry mutates the document.
func (d *Document) Entries() []Entry { return d.entries }

// Save writes the document to path.
func (d *Document) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create catalog file: %w", err)
	}
	defer f.Close()

	if err := d.Encode(f); err != nil {
		return err
	}
	return f.Close()
}

// Encode writes the document as indented JSON with sorted keys.
func (d *Document) Encode(w io.Writer) error {
	return WriteJSON(w, d.root)
}

// WriteJSON is the shared output format for catalogs and reports: two-space
// indentation, sorted object keys, unescaped HTML, trailing newline.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}
