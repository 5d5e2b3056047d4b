package textstore

import (
	"fmt"
	"io"

	"github.com/leonelquinteros/gotext"
)

// POLoader reads gettext catalogs, keyed by msgid. Untranslated messages
// have no text and are dropped like any other blank record.
type POLoader struct{}

func NewPOLoader() *POLoader { return &POLoader{} }

func (l *POLoader) CanLoad(ext string) bool {
	return ext == ".po"
}

func (l *POLoader) Decode(r io.Reader) (*Store, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read po: %w", err)
	}

	po := gotext.NewPo()
	po.Parse(data)

	translations := po.GetDomain().GetTranslations()
	entries := make([]Entry, 0, len(translations))
	for id, tr := range translations {
		entries = append(entries, Entry{ID: id, Text: tr.Trs[0]})
	}
	sortEntries(entries)
	return New(entries...), nil
}
