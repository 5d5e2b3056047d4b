package report

import (
	"fmt"
	"os"

	"preset-localizer/internal/catalog"
	"preset-localizer/internal/crossmap"

	"github.com/rs/zerolog/log"
)

type collisionRecord struct {
	Key     string `json:"key"`
	Kept    string `json:"kept"`
	Dropped string `json:"dropped"`
	ID      string `json:"id"`
}

// WriteCollisions writes map collisions as JSON. Like Write, an empty list
// writes nothing.
func WriteCollisions(path string, collisions []crossmap.Collision) (bool, error) {
	if len(collisions) == 0 {
		return false, nil
	}

	records := make([]collisionRecord, 0, len(collisions))
	for _, c := range collisions {
		records = append(records, collisionRecord{Key: c.Key, Kept: c.Kept, Dropped: c.Dropped, ID: c.ID})
	}

	f, err := os.Create(path)
	if err != nil {
		return false, fmt.Errorf("create collisions file: %w", err)
	}
	defer f.Close()

	if err := catalog.WriteJSON(f, records); err != nil {
		return false, err
	}
	if err := f.Close(); err != nil {
		return false, fmt.Errorf("close collisions file: %w", err)
	}

	log.Info().Str("path", path).Int("collisions", len(records)).Msg("Wrote collision report")
	return true, nil
}
