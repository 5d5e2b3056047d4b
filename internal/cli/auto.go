package cli

import (
	"context"
	"errors"
	"fmt"

	"preset-localizer/internal/catalog"
	"preset-localizer/internal/config"
	"preset-localizer/internal/crossmap"
	"preset-localizer/internal/langcode"
	"preset-localizer/internal/merge"
	"preset-localizer/internal/override"
	"preset-localizer/internal/report"
	"preset-localizer/internal/textstore"
	"preset-localizer/internal/worker"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type autoOptions struct {
	input          string
	output         string
	source         string
	target         string
	textsDir       string
	targetName     string
	failures       string
	failuresFormat string
	collisions     string
	firstWins      bool
}

func autoCmd() *cobra.Command {
	var opts autoOptions

	cmd := &cobra.Command{
		Use:   "auto",
		Short: "Add a language to a catalog from the game's text exports",
		Long: `Builds an English to target language map from two text exports that share
identifiers, then fills the target language on every catalog entry lacking it.
Entries that cannot be matched are written to a failure report.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := setupContext()
			defer cancel()
			return runAuto(ctx, resolveConfig(cmd), opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.input, "input", "i", "presets.json", "Catalog to read")
	f.StringVarP(&opts.output, "output", "o", "presets_new.json", "Catalog to write")
	f.StringVarP(&opts.source, "source", "s", "", "English text export (default texts_english.xml)")
	f.StringVarP(&opts.target, "target", "t", "", "Target language text export (default texts_chinese.xml)")
	f.StringVar(&opts.textsDir, "texts-dir", "", "Directory to search for texts_<language> exports")
	f.StringVar(&opts.targetName, "target-name", "", "Language name of the target export in --texts-dir (default derived from --lang)")
	f.StringVar(&opts.failures, "failures", "failures.json", "Failure report path")
	f.StringVar(&opts.failuresFormat, "failures-format", "json", "Failure report format: json or tsv")
	f.StringVar(&opts.collisions, "collisions", "", "Write map collisions to this path")
	f.BoolVar(&opts.firstWins, "first-wins", false, "Keep the first translation when English texts collide")
	f.StringP("lang", "l", "zhs", "Target language code")
	f.String("version", "1800", "Game version for overrides")
	f.String("overrides", "", "YAML overrides file")
	f.Int("workers", 4, "Merge workers")

	return cmd
}

// runAuto handles the `auto` command.
func runAuto(ctx context.Context, cfg *config.Config, opts autoOptions) error {
	if err := langcode.Validate(cfg.TargetLang); err != nil {
		return err
	}
	if !override.ValidVersion(cfg.GameVersion) {
		return fmt.Errorf("unsupported game version %q, want one of %v", cfg.GameVersion, override.Versions)
	}
	format, err := report.ParseFormat(opts.failuresFormat)
	if err != nil {
		return err
	}

	sourcePath, targetPath, err := resolveExports(cfg, opts)
	if err != nil {
		return err
	}

	// 1. Load both text exports.
	source, target, err := loadStores(ctx, sourcePath, targetPath)
	if err != nil {
		return err
	}
	log.Info().
		Int("source_items", source.Len()).
		Int("target_items", target.Len()).
		Msg("Loaded text exports")

	// 2. Derive the English to target map.
	policy := crossmap.LastWins
	if opts.firstWins {
		policy = crossmap.FirstWins
	}
	table := crossmap.Build(source, target, crossmap.WithPolicy(policy))
	log.Info().
		Int("keys", table.Len()).
		Int("collisions", len(table.Collisions())).
		Str("policy", policy.String()).
		Msg("Built translation map")

	if opts.collisions != "" {
		if _, err := report.WriteCollisions(opts.collisions, table.Collisions()); err != nil {
			return err
		}
	}

	// 3. Read the catalog.
	doc, err := catalog.Load(opts.input)
	if errors.Is(err, catalog.ErrNoEntries) {
		log.Warn().Str("path", opts.input).Msg("No Buildings found in catalog, nothing to do")
		return nil
	}
	if err != nil {
		return err
	}

	overrides, err := loadOverrides(ctx, cfg, cfg.OverridesFile, cfg.GameVersion, cfg.TargetLang)
	if err != nil {
		return err
	}

	// 4. Merge.
	merger := merge.New(
		merge.WithOverrides(overrides, cfg.GameVersion),
		merge.WithWorkers(cfg.WorkerCount),
	)
	res, err := merger.Merge(ctx, doc.Entries(), table, cfg.TargetLang)
	if err != nil {
		return fmt.Errorf("merge catalog: %w", err)
	}

	// 5. Write results.
	if err := doc.Save(opts.output); err != nil {
		return err
	}
	if _, err := report.Write(opts.failures, format, res.Failures); err != nil {
		return err
	}

	log.Info().
		Int("updated", res.Updated).
		Int("overridden", res.Overridden).
		Int("skipped", res.Skipped).
		Int("failures", len(res.Failures)).
		Str("output", opts.output).
		Msg("Localization complete")

	return nil
}

// resolveExports picks the source and target export paths from explicit
// flags, a discovery directory, or the conventional file names.
func resolveExports(cfg *config.Config, opts autoOptions) (string, string, error) {
	sourceName := langcode.ExportName(cfg.SourceLang)
	targetName := opts.targetName
	if targetName == "" {
		targetName = langcode.ExportName(cfg.TargetLang)
	}

	source, target := opts.source, opts.target

	if opts.textsDir != "" && (source == "" || target == "") {
		found, err := textstore.Discover(opts.textsDir)
		if err != nil {
			return "", "", err
		}
		if source == "" {
			source = found[sourceName]
		}
		if target == "" {
			target = found[targetName]
		}
		if source == "" || target == "" {
			return "", "", fmt.Errorf("texts_%s and texts_%s exports not both found in %s", sourceName, targetName, opts.textsDir)
		}
	}

	if source == "" {
		source = "texts_" + sourceName + ".xml"
	}
	if target == "" {
		target = "texts_" + targetName + ".xml"
	}
	return source, target, nil
}

// loadStores decodes both exports concurrently.
func loadStores(ctx context.Context, sourcePath, targetPath string) (*textstore.Store, *textstore.Store, error) {
	pool := worker.NewPool(2, func(ctx context.Context, path string) (*textstore.Store, error) {
		return textstore.Load(path)
	})

	tasks := pool.Execute(ctx, []string{sourcePath, targetPath})
	for _, task := range tasks {
		if !task.Done {
			return nil, nil, ctx.Err()
		}
		if task.Err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", task.Input, task.Err)
		}
	}
	return tasks[0].Result, tasks[1].Result, nil
}
