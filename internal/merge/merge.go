// Package merge fills missing catalog translations from a derived text map.
//
// Catalog entries are matched by their English display text, never by
// identifier or GUID: several catalog entries may share one text GUID, so an
// identifier join would mis-assign translations. Content matching accepts the
// opposite risk, that two distinct objects sharing an English name receive the
// same translation.
package merge

import (
	"context"

	"preset-localizer/internal/catalog"
	"preset-localizer/internal/langcode"
	"preset-localizer/internal/override"
	"preset-localizer/internal/textutil"
	"preset-localizer/internal/worker"

	"github.com/rs/zerolog/log"
)

// Lookup resolves a folded English key to target text.
type Lookup interface {
	Lookup(key string) (string, bool)
}

// Failure describes an entry left without a translation.
type Failure struct {
	Header     string
	Identifier string
	GUID       string
	// English is the folded English text that found no match.
	English string
}

// Result summarizes a merge run.
type Result struct {
	// Updated counts entries filled from the text map.
	Updated int
	// Overridden counts entries filled from the override table.
	Overridden int
	// Skipped counts entries that already had the target language.
	Skipped int
	// Failures lists unresolved entries in catalog order.
	Failures []Failure
}

func (r *Result) add(o Result) {
	r.Updated += o.Updated
	r.Overridden += o.Overridden
	r.Skipped += o.Skipped
	r.Failures = append(r.Failures, o.Failures...)
}

// Merger applies a text map to catalog entries.
type Merger struct {
	overrides *override.Table
	version   string
	workers   int
}

// Option configures a Merger.
type Option func(*Merger)

// WithOverrides consults table for (version, identifier, target language)
// before the text map. An override hit is written verbatim.
func WithOverrides(table *override.Table, version string) Option {
	return func(m *Merger) {
		m.overrides = table
		m.version = version
	}
}

// WithWorkers spreads entries over n workers. Each worker owns a disjoint
// slice of entries, so no locking is needed.
func WithWorkers(n int) Option {
	return func(m *Merger) { m.workers = n }
}

// New creates a Merger.
func New(opts ...Option) *Merger {
	m := &Merger{workers: 1}
	for _, opt := range opts {
		opt(m)
	}
	if m.workers < 1 {
		m.workers = 1
	}
	return m
}

// Merge fills targetLang on entries that lack it, in place, with default
// options.
func Merge(entries []catalog.Entry, table Lookup, targetLang string) Result {
	res, _ := New().Merge(context.Background(), entries, table, targetLang)
	return res
}

// Merge fills targetLang on every entry that lacks it. Entries that already
// have it are skipped, so running twice is harmless. The only error is ctx
// ending before all entries were visited.
func (m *Merger) Merge(ctx context.Context, entries []catalog.Entry, table Lookup, targetLang string) (Result, error) {
	if m.workers == 1 || len(entries) < 2 {
		res := m.mergeChunk(entries, table, targetLang)
		m.logResult(res, targetLang)
		return res, nil
	}

	size := (len(entries) + m.workers - 1) / m.workers
	chunks := worker.Batch(entries, size)

	pool := worker.NewPool(m.workers, func(ctx context.Context, chunk []catalog.Entry) (Result, error) {
		return m.mergeChunk(chunk, table, targetLang), nil
	})

	var res Result
	for _, task := range pool.Execute(ctx, chunks) {
		if !task.Done {
			return res, ctx.Err()
		}
		res.add(task.Result)
	}
	m.logResult(res, targetLang)
	return res, nil
}

func (m *Merger) mergeChunk(entries []catalog.Entry, table Lookup, lang string) Result {
	var res Result
	for _, e := range entries {
		m.mergeEntry(e, table, lang, &res)
	}
	return res
}

func (m *Merger) mergeEntry(e catalog.Entry, table Lookup, lang string, res *Result) {
	if e.Has(lang) {
		res.Skipped++
		return
	}

	if m.overrides != nil {
		if text, ok := m.overrides.Lookup(m.version, e.Identifier(), lang); ok {
			e.SetText(lang, text)
			res.Overridden++
			return
		}
	}

	english, ok := e.Text(langcode.English)
	if !ok {
		res.Failures = append(res.Failures, failure(e, ""))
		return
	}

	// Keys are folded; decorations keep the catalog's own casing.
	eng := textutil.FoldKey(english)
	d := textutil.Decompose(english)

	// The bare base first; the whole string covers names whose brackets are
	// part of the canonical text.
	text, ok := table.Lookup(textutil.FoldKey(d.Base))
	if !ok {
		text, ok = table.Lookup(eng)
	}
	if !ok {
		res.Failures = append(res.Failures, failure(e, eng))
		return
	}

	e.SetText(lang, d.Apply(text))
	res.Updated++
}

func failure(e catalog.Entry, eng string) Failure {
	return Failure{
		Header:     e.Header(),
		Identifier: e.Identifier(),
		GUID:       e.GUID(),
		English:    eng,
	}
}

func (m *Merger) logResult(res Result, lang string) {
	log.Debug().
		Str("lang", lang).
		Int("updated", res.Updated).
		Int("overridden", res.Overridden).
		Int("skipped", res.Skipped).
		Int("failures", len(res.Failures)).
		Int("workers", m.workers).
		Msg("Merge finished")
}
