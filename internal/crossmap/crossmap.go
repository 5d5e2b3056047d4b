// Package crossmap derives a source-text to target-text lookup table from two
// text stores that share identifiers.
package crossmap

import (
	"slices"
	"strings"

	"preset-localizer/internal/textstore"
	"preset-localizer/internal/textutil"

	"github.com/rs/zerolog/log"
)

// Policy decides which target text a key keeps when several identifiers fold
// to the same source key with different translations.
type Policy int

const (
	// LastWins keeps the text of the identifier processed last in source
	// store order.
	LastWins Policy = iota
	// FirstWins keeps the text of the identifier processed first.
	FirstWins
)

func (p Policy) String() string {
	if p == FirstWins {
		return "first-wins"
	}
	return "last-wins"
}

// Collision records a key that received two different target texts.
type Collision struct {
	// Key is the folded source text.
	Key string
	// Kept is the target text left in the map.
	Kept string
	// Dropped is the competing target text.
	Dropped string
	// ID is the identifier whose text competed for the key.
	ID string
}

// Map is a read-only lookup from folded source text to target text.
type Map struct {
	entries    map[string]string
	collisions []Collision
	policy     Policy
}

// Option configures Build.
type Option func(*Map)

// WithPolicy selects the collision policy. The default is LastWins.
func WithPolicy(p Policy) Option {
	return func(m *Map) { m.policy = p }
}

// Build joins source and target on identifier. For every identifier present
// in both stores whose texts differ case-insensitively, the folded source
// text maps to the target text. Identical pairs are skipped: they are
// untranslated fallbacks, not translations.
func Build(source, target *textstore.Store, opts ...Option) *Map {
	m := &Map{entries: make(map[string]string)}
	for _, opt := range opts {
		opt(m)
	}

	for id, srcText := range source.All() {
		tgtText, ok := target.Get(id)
		if !ok {
			continue
		}

		key := textutil.FoldKey(srcText)
		if textutil.FoldKey(tgtText) == key {
			continue
		}
		m.put(id, key, strings.TrimSpace(tgtText))
	}

	if len(m.collisions) > 0 {
		log.Debug().
			Int("collisions", len(m.collisions)).
			Str("policy", m.policy.String()).
			Msg("Source keys with conflicting translations")
	}
	return m
}

func (m *Map) put(id, key, text string) {
	existing, ok := m.entries[key]
	if !ok {
		m.entries[key] = text
		return
	}
	if existing == text {
		return
	}

	if m.policy == FirstWins {
		m.collisions = append(m.collisions, Collision{Key: key, Kept: existing, Dropped: text, ID: id})
		return
	}
	m.collisions = append(m.collisions, Collision{Key: key, Kept: text, Dropped: existing, ID: id})
	m.entries[key] = text
}

// Lookup returns the target text for a folded source key.
func (m *Map) Lookup(key string) (string, bool) {
	text, ok := m.entries[key]
	return text, ok
}

// Len returns the number of keys.
func (m *Map) Len() int { return len(m.entries) }

// Keys returns every key, sorted.
func (m *Map) Keys() []string {
	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Collisions returns the conflicts seen while building, in processing order.
func (m *Map) Collisions() []Collision {
	return slices.Clone(m.collisions)
}

// Policy returns the collision policy the map was built with.
func (m *Map) Policy() Policy { return m.policy }
