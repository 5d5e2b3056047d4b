// Package textstore holds per-language keyed text stores and the loaders that
// build them from game text exports.
package textstore

import (
	"iter"
	"strings"
)

// Entry is a single identifier/text pair read from a text export.
type Entry struct {
	// ID is the opaque key shared by every language's copy of the resource.
	ID string
	// Text is the display string in the store's language.
	Text string
}

// Store maps identifiers to display strings for one language.
// It is immutable once built and iterates in first-seen identifier order.
type Store struct {
	ids     []string
	texts   map[string]string
	dropped int
}

// New builds a store from entries. Identifiers and texts are trimmed; entries
// with a blank identifier or blank text are dropped. A repeated identifier
// keeps its first position and its last text.
func New(entries ...Entry) *Store {
	s := &Store{texts: make(map[string]string, len(entries))}
	for _, e := range entries {
		id := strings.TrimSpace(e.ID)
		text := strings.TrimSpace(e.Text)
		if id == "" || text == "" {
			s.dropped++
			continue
		}
		if _, exists := s.texts[id]; !exists {
			s.ids = append(s.ids, id)
		}
		s.texts[id] = text
	}
	return s
}

// FromMap builds a store from a plain map. Iteration order follows the sorted
// identifiers, since Go maps carry no order of their own.
func FromMap(m map[string]string) *Store {
	entries := make([]Entry, 0, len(m))
	for id, text := range m {
		entries = append(entries, Entry{ID: id, Text: text})
	}
	sortEntries(entries)
	return New(entries...)
}

// Get returns the text stored under id.
func (s *Store) Get(id string) (string, bool) {
	text, ok := s.texts[id]
	return text, ok
}

// Len returns the number of stored identifiers.
func (s *Store) Len() int { return len(s.ids) }

// Dropped returns how many malformed records were skipped while building.
func (s *Store) Dropped() int { return s.dropped }

// IDs returns a copy of the identifiers in store order.
func (s *Store) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// All iterates identifier/text pairs in store order.
func (s *Store) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, id := range s.ids {
			if !yield(id, s.texts[id]) {
				return
			}
		}
	}
}
