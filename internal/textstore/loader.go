package textstore

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

// ErrUnsupportedFormat is returned when no loader handles a file extension.
var ErrUnsupportedFormat = errors.New("unsupported text store format")

// Loader decodes one text export format into a Store.
type Loader interface {
	// CanLoad returns true if this loader handles the given file extension.
	CanLoad(ext string) bool
	// Decode reads a whole export and returns its store.
	Decode(r io.Reader) (*Store, error)
}

// DefaultLoaders returns every built-in loader.
func DefaultLoaders() []Loader {
	return []Loader{
		NewXMLLoader(),
		NewJSONLoader(),
		NewYAMLLoader(),
		NewINILoader(),
		NewPOLoader(),
	}
}

// LoaderFor picks the loader for a file path by its extension.
func LoaderFor(path string, loaders ...Loader) (Loader, error) {
	if len(loaders) == 0 {
		loaders = DefaultLoaders()
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, l := range loaders {
		if l.CanLoad(ext) {
			return l, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}

// Load opens path and decodes it with the matching loader.
func Load(path string, loaders ...Loader) (*Store, error) {
	l, err := LoaderFor(path, loaders...)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open text store: %w", err)
	}
	defer f.Close()

	store, err := l.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	log.Debug().
		Str("path", path).
		Int("entries", store.Len()).
		Int("dropped", store.Dropped()).
		Msg("Loaded text store")
	return store, nil
}

func sortEntries(entries []Entry) {
	slices.SortFunc(entries, func(a, b Entry) int { return strings.Compare(a.ID, b.ID) })
}
