package override

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// querier is the subset of pgxpool.Pool the store needs.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PGStore keeps override rules in the loc_overrides table.
type PGStore struct {
	db querier
}

// NewPGStore creates a store backed by PostgreSQL.
func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{db: pool}
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS loc_overrides (
	version    TEXT NOT NULL,
	identifier TEXT NOT NULL,
	lang       TEXT NOT NULL,
	text       TEXT NOT NULL,
	PRIMARY KEY (version, identifier, lang)
)`

// EnsureSchema creates the overrides table if it does not exist.
func (s *PGStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create overrides table: %w", err)
	}
	return nil
}

// Load reads the rules for one version and language.
func (s *PGStore) Load(ctx context.Context, version, lang string) (*Table, error) {
	rows, err := s.db.Query(ctx,
		`SELECT identifier, text FROM loc_overrides WHERE version = $1 AND lang = $2 ORDER BY identifier`,
		version, lang,
	)
	if err != nil {
		return nil, fmt.Errorf("query overrides: %w", err)
	}
	defer rows.Close()

	t := NewTable()
	for rows.Next() {
		var id, text string
		if err := rows.Scan(&id, &text); err != nil {
			return nil, fmt.Errorf("scan override: %w", err)
		}
		t.add(Rule{Version: version, Identifier: id, Lang: lang, Text: text})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read overrides: %w", err)
	}

	log.Info().Int("count", t.Len()).Str("version", version).Str("lang", lang).Msg("Loaded overrides from PostgreSQL")
	return t, nil
}

// Upsert inserts or replaces rules and returns how many rows changed.
func (s *PGStore) Upsert(ctx context.Context, rules []Rule) (int, error) {
	changed := 0
	for _, r := range rules {
		tag, err := s.db.Exec(ctx, `
			INSERT INTO loc_overrides (version, identifier, lang, text)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (version, identifier, lang) DO UPDATE SET text = EXCLUDED.text
			WHERE loc_overrides.text <> EXCLUDED.text
		`, r.Version, r.Identifier, r.Lang, r.Text)
		if err != nil {
			return changed, fmt.Errorf("upsert override %s/%s: %w", r.Version, r.Identifier, err)
		}
		changed += int(tag.RowsAffected())
	}

	log.Info().Int("changed", changed).Int("rules", len(rules)).Msg("Upserted overrides")
	return changed, nil
}
