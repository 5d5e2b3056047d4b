// Package report writes unresolved merge entries for manual triage.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"preset-localizer/internal/catalog"
	"preset-localizer/internal/langcode"
	"preset-localizer/internal/merge"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

// Format selects the report encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTSV  Format = "tsv"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatTSV:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported report format %q", s)
	}
}

// Write writes failures to path in format f. Nothing is written, and false is
// returned, when there are no failures.
func Write(path string, f Format, failures []merge.Failure) (bool, error) {
	if len(failures) == 0 {
		return false, nil
	}

	file, err := os.Create(path)
	if err != nil {
		return false, fmt.Errorf("create report file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	switch f {
	case FormatTSV:
		err = EncodeTSV(w, failures)
	default:
		err = EncodeJSON(w, failures)
	}
	if err != nil {
		return false, err
	}
	if err := w.Flush(); err != nil {
		return false, fmt.Errorf("write report: %w", err)
	}
	if err := file.Close(); err != nil {
		return false, fmt.Errorf("close report file: %w", err)
	}

	log.Info().Str("path", path).Str("format", string(f)).Int("entries", len(failures)).Msg("Wrote failure report")
	return true, nil
}

// WriteJSON writes failures as a JSON array.
func WriteJSON(path string, failures []merge.Failure) (bool, error) {
	return Write(path, FormatJSON, failures)
}

// WriteTSV writes failures as tab separated values with a header row.
func WriteTSV(path string, failures []merge.Failure) (bool, error) {
	return Write(path, FormatTSV, failures)
}

type record struct {
	GUID       any    `json:"Guid"`
	Header     string `json:"Header"`
	Identifier string `json:"Identifier"`
	English    string `json:"eng"`
}

// EncodeJSON writes failures in the catalog's JSON layout. Numeric GUIDs are
// written as numbers, as they appear in the catalog.
func EncodeJSON(w io.Writer, failures []merge.Failure) error {
	records := make([]record, 0, len(failures))
	for _, f := range failures {
		records = append(records, record{
			GUID:       guidValue(f.GUID),
			Header:     f.Header,
			Identifier: f.Identifier,
			English:    f.English,
		})
	}
	return catalog.WriteJSON(w, records)
}

// EncodeTSV writes failures as TSV.
func EncodeTSV(w io.Writer, failures []merge.Failure) error {
	if _, err := fmt.Fprintf(w, "guid\theader\tidentifier\t%s\n", langcode.English); err != nil {
		return fmt.Errorf("write TSV header: %w", err)
	}
	for _, f := range failures {
		_, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			escapeTSV(f.GUID),
			escapeTSV(f.Header),
			escapeTSV(f.Identifier),
			escapeTSV(f.English),
		)
		if err != nil {
			return fmt.Errorf("write TSV row: %w", err)
		}
	}
	return nil
}

func guidValue(s string) any {
	if s == "" {
		return nil
	}
	n := json.Number(s)
	if _, err := n.Int64(); err == nil {
		return n
	}
	return s
}

// escapeTSV replaces tabs and newlines in a string for TSV safety.
func escapeTSV(s string) string {
	s = strings.ReplaceAll(s, "\t", "\\t")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	return s
}
