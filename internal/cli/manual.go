package cli

import (
	"context"
	"errors"
	"fmt"

	"preset-localizer/internal/catalog"
	"preset-localizer/internal/config"
	"preset-localizer/internal/langcode"
	"preset-localizer/internal/override"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type manualOptions struct {
	input  string
	output string
}

func manualCmd() *cobra.Command {
	var opts manualOptions

	cmd := &cobra.Command{
		Use:   "manual",
		Short: "Apply hand-maintained overrides to a catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := setupContext()
			defer cancel()
			return runManual(ctx, resolveConfig(cmd), opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.input, "input", "i", "presets.json", "Catalog to read")
	f.StringVarP(&opts.output, "output", "o", "presets_new.json", "Catalog to write")
	f.StringP("version", "v", "1800", "Game version: 1404, 2070, 2205 or 1800")
	f.StringP("lang", "l", "zhs", "Target language code")
	f.String("overrides", "", "YAML overrides file")

	return cmd
}

// runManual handles the `manual` command.
func runManual(ctx context.Context, cfg *config.Config, opts manualOptions) error {
	if err := langcode.Validate(cfg.TargetLang); err != nil {
		return err
	}
	if !override.ValidVersion(cfg.GameVersion) {
		return fmt.Errorf("unsupported game version %q, want one of %v", cfg.GameVersion, override.Versions)
	}

	doc, err := catalog.Load(opts.input)
	if errors.Is(err, catalog.ErrNoEntries) {
		log.Warn().Str("path", opts.input).Msg("No Buildings found in catalog, nothing to do")
		return nil
	}
	if err != nil {
		return err
	}

	table, err := loadOverrides(ctx, cfg, cfg.OverridesFile, cfg.GameVersion, cfg.TargetLang)
	if err != nil {
		return err
	}

	updated := table.Apply(doc.Entries(), cfg.GameVersion, cfg.TargetLang)

	if err := doc.Save(opts.output); err != nil {
		return err
	}

	log.Info().
		Int("updated", updated).
		Str("version", cfg.GameVersion).
		Str("lang", cfg.TargetLang).
		Str("output", opts.output).
		Msg("Manual localization complete")
	return nil
}
