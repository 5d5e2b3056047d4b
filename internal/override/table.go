// Package override holds exact-match catalog fixes keyed by game version,
// catalog identifier and language. Tables are plain data loaded from YAML or
// Postgres and consulted before any derived translation.
package override

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"preset-localizer/internal/catalog"

	"gopkg.in/yaml.v3"
)

// Versions lists the game versions catalogs exist for.
var Versions = []string{"1404", "2070", "2205", "1800"}

// ValidVersion reports whether v is a known game version.
func ValidVersion(v string) bool {
	return slices.Contains(Versions, v)
}

//go:embed defaults.yaml
var defaultsYAML []byte

// Rule is a single override.
type Rule struct {
	Version    string
	Identifier string
	Lang       string
	Text       string
}

type ruleKey struct {
	version    string
	identifier string
	lang       string
}

// Table is a set of overrides. The zero value is not usable; call NewTable.
type Table struct {
	texts map[ruleKey]string
}

// NewTable builds a table from rules. Later rules replace earlier ones with
// the same key; rules with an empty identifier or text are ignored.
func NewTable(rules ...Rule) *Table {
	t := &Table{texts: make(map[ruleKey]string, len(rules))}
	for _, r := range rules {
		t.add(r)
	}
	return t
}

func (t *Table) add(r Rule) {
	if r.Identifier == "" || r.Text == "" {
		return
	}
	t.texts[ruleKey{version: r.Version, identifier: r.Identifier, lang: r.Lang}] = r.Text
}

// Default returns the built-in table.
func Default() (*Table, error) {
	t, err := DecodeYAML(bytes.NewReader(defaultsYAML))
	if err != nil {
		return nil, fmt.Errorf("decode built-in overrides: %w", err)
	}
	return t, nil
}

// LoadYAML reads a table file.
func LoadYAML(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open overrides file: %w", err)
	}
	defer f.Close()
	return DecodeYAML(f)
}

// DecodeYAML parses a version -> language -> identifier -> text mapping.
func DecodeYAML(r io.Reader) (*Table, error) {
	var doc map[string]map[string]map[string]string
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parse overrides: %w", err)
	}

	t := NewTable()
	for version, langs := range doc {
		for lang, ids := range langs {
			for id, text := range ids {
				t.add(Rule{Version: version, Identifier: id, Lang: lang, Text: text})
			}
		}
	}
	return t, nil
}

// Merge copies every rule of other into t, replacing rules with the same key.
func (t *Table) Merge(other *Table) {
	if other == nil {
		return
	}
	for k, v := range other.texts {
		t.texts[k] = v
	}
}

// Lookup returns the override for an entry, by exact identifier equality.
func (t *Table) Lookup(version, identifier, lang string) (string, bool) {
	text, ok := t.texts[ruleKey{version: version, identifier: identifier, lang: lang}]
	return text, ok
}

// Len returns the number of rules.
func (t *Table) Len() int { return len(t.texts) }

// Rules returns every rule sorted by version, language and identifier.
func (t *Table) Rules() []Rule {
	rules := make([]Rule, 0, len(t.texts))
	for k, v := range t.texts {
		rules = append(rules, Rule{Version: k.version, Identifier: k.identifier, Lang: k.lang, Text: v})
	}
	slices.SortFunc(rules, func(a, b Rule) int {
		if c := strings.Compare(a.Version, b.Version); c != 0 {
			return c
		}
		if c := strings.Compare(a.Lang, b.Lang); c != 0 {
			return c
		}
		return strings.Compare(a.Identifier, b.Identifier)
	})
	return rules
}

// Apply sets the override text on every entry lacking lang and returns how
// many entries were updated. Entries that already carry lang are left alone.
func (t *Table) Apply(entries []catalog.Entry, version, lang string) int {
	updated := 0
	for _, e := range entries {
		if e.Has(lang) {
			continue
		}
		if text, ok := t.Lookup(version, e.Identifier(), lang); ok {
			e.SetText(lang, text)
			updated++
		}
	}
	return updated
}
