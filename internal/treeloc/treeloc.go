// Package treeloc converts the shared tree localization sheet into the
// per-language JSON table consumed by the web designer.
package treeloc

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"preset-localizer/internal/catalog"
	"preset-localizer/internal/langcode"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// KeyColumn names the sheet column holding property keys.
const KeyColumn = "Property String (For developer use)"

// ErrNoKeyColumn is returned when the sheet lacks KeyColumn.
var ErrNoKeyColumn = errors.New("sheet has no " + KeyColumn + " column")

// Table maps language code to property key to localized text.
type Table map[string]map[string]string

type column struct {
	index int
	code  string
}

// Parse reads a CSV sheet. Columns whose header is not a known language name
// are ignored. Rows without a key are dropped; so are cells past the end of a
// short row.
func Parse(r io.Reader) (Table, error) {
	cr := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(transform.Nop)))
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoKeyColumn
		}
		return nil, fmt.Errorf("read sheet header: %w", err)
	}

	keyIdx := -1
	var cols []column
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == KeyColumn {
			keyIdx = i
			continue
		}
		if code, ok := langcode.FromName(name); ok {
			cols = append(cols, column{index: i, code: code})
		}
	}
	if keyIdx < 0 {
		return nil, ErrNoKeyColumn
	}

	t := make(Table, len(cols))
	for _, c := range cols {
		t[c.code] = make(map[string]string)
	}

	rows, dropped := 0, 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read sheet row: %w", err)
		}
		if keyIdx >= len(rec) || strings.TrimSpace(rec[keyIdx]) == "" {
			dropped++
			continue
		}
		key := strings.TrimSpace(rec[keyIdx])
		for _, c := range cols {
			if c.index < len(rec) {
				t[c.code][key] = rec[c.index]
			}
		}
		rows++
	}

	log.Debug().Int("rows", rows).Int("dropped", dropped).Int("languages", len(t)).Msg("Parsed tree localization sheet")
	return t, nil
}

// Encode writes t as {"languages": {...}}.
func (t Table) Encode(w io.Writer) error {
	return catalog.WriteJSON(w, map[string]any{"languages": t})
}

// Save writes t to path.
func (t Table) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create tree localization file: %w", err)
	}
	defer f.Close()

	if err := t.Encode(f); err != nil {
		return err
	}
	return f.Close()
}
