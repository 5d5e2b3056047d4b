package textstore

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// exportPrefix is the file name prefix of per-language text exports,
// e.g. texts_english.xml, texts_chinese.xml.
const exportPrefix = "texts_"

// Discover walks root and returns the text exports it finds keyed by the
// lowercase language name embedded in the file name. When a language appears
// in more than one supported format, the first path in walk order wins.
func Discover(root string, loaders ...Loader) (map[string]string, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root path: %w", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root is not a directory: %s", root)
	}

	found := make(map[string]string)

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Error walking path")
			return nil
		}
		if d.IsDir() {
			return nil
		}

		name := strings.ToLower(d.Name())
		if !strings.HasPrefix(name, exportPrefix) {
			return nil
		}
		if _, err := LoaderFor(name, loaders...); err != nil {
			return nil
		}

		lang := strings.TrimSuffix(strings.TrimPrefix(name, exportPrefix), filepath.Ext(name))
		if lang == "" {
			return nil
		}
		if _, exists := found[lang]; !exists {
			found[lang] = path
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}

	log.Debug().Int("count", len(found)).Str("root", root).Msg("Discovered text exports")
	return found, nil
}
