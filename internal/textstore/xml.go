package textstore

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// XMLLoader reads game text exports of the form
//
//	<TextExport><Texts>
//	  <Text><GUID>100</GUID><Text>Town Hall</Text></Text>
//	</Texts></TextExport>
//
// Any <Text> element carrying a <GUID> child is taken as a record.
type XMLLoader struct{}

func NewXMLLoader() *XMLLoader { return &XMLLoader{} }

func (l *XMLLoader) CanLoad(ext string) bool {
	return ext == ".xml"
}

type xmlText struct {
	GUID *string `xml:"GUID"`
	Text *string `xml:"Text"`
}

func (l *XMLLoader) Decode(r io.Reader) (*Store, error) {
	// Exports ship as UTF-8 or BOM-prefixed UTF-16; normalize both to UTF-8.
	dec := xml.NewDecoder(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	dec.Strict = false
	dec.CharsetReader = func(label string, input io.Reader) (io.Reader, error) {
		switch strings.ToLower(label) {
		case "utf-8", "utf8", "utf-16", "utf16":
			return input, nil
		}
		return nil, fmt.Errorf("unsupported charset %q", label)
	}

	var entries []Entry
	malformed := 0

	// truncated reports whether a read error can be tolerated: a broken tail
	// after some records keeps what was read so far.
	truncated := func(err error) bool {
		var syntaxErr *xml.SyntaxError
		if errors.As(err, &syntaxErr) && len(entries) > 0 {
			log.Warn().Err(err).Int("entries", len(entries)).Msg("Truncated XML text export, keeping parsed entries")
			return true
		}
		return false
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if truncated(err) {
				break
			}
			return nil, fmt.Errorf("read xml token: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "Text" {
			continue
		}

		var rec xmlText
		if err := dec.DecodeElement(&rec, &start); err != nil {
			if truncated(err) {
				break
			}
			return nil, fmt.Errorf("decode text record: %w", err)
		}
		if rec.GUID == nil || rec.Text == nil {
			malformed++
			continue
		}
		entries = append(entries, Entry{ID: *rec.GUID, Text: *rec.Text})
	}

	store := New(entries...)
	store.dropped += malformed
	return store, nil
}
