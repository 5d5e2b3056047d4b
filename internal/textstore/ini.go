package textstore

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// INILoader reads key=value text exports. Keys inside a [section] are
// qualified as "section.key".
type INILoader struct{}

func NewINILoader() *INILoader { return &INILoader{} }

func (l *INILoader) CanLoad(ext string) bool {
	return ext == ".ini"
}

func (l *INILoader) Decode(r io.Reader) (*Store, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)

	var entries []Entry
	currentSection := ""
	malformed := 0

	for scanner.Scan() {
		trimmed := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments.
		if trimmed == "" || strings.HasPrefix(trimmed, ";") || strings.HasPrefix(trimmed, "#") {
			continue
		}

		// Section header.
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			currentSection = strings.TrimSpace(trimmed[1 : len(trimmed)-1])
			continue
		}

		eqIdx := strings.Index(trimmed, "=")
		if eqIdx < 0 {
			malformed++
			continue
		}

		key := strings.TrimSpace(trimmed[:eqIdx])
		if key != "" && currentSection != "" {
			key = currentSection + "." + key
		}

		entries = append(entries, Entry{
			ID:   key,
			Text: trimmed[eqIdx+1:],
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan ini: %w", err)
	}

	store := New(entries...)
	store.dropped += malformed
	return store, nil
}
