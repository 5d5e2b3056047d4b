package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"preset-localizer/internal/config"
	"preset-localizer/internal/override"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func overridesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "overrides",
		Short: "Inspect and publish override rules",
	}
	cmd.AddCommand(overridesListCmd())
	cmd.AddCommand(overridesPushCmd())
	return cmd
}

func overridesListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the effective override rules for a version and language",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := setupContext()
			defer cancel()

			cfg := resolveConfig(cmd)
			table, err := loadOverrides(ctx, cfg, cfg.OverridesFile, cfg.GameVersion, cfg.TargetLang)
			if err != nil {
				return err
			}
			return printRules(cmd.OutOrStdout(), table, cfg.GameVersion, cfg.TargetLang)
		},
	}

	cmd.Flags().StringP("version", "v", "1800", "Game version")
	cmd.Flags().StringP("lang", "l", "zhs", "Target language code")
	cmd.Flags().String("overrides", "", "YAML overrides file")

	return cmd
}

func overridesPushCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "push",
		Short: "Upsert built-in and file override rules into PostgreSQL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := setupContext()
			defer cancel()
			return runOverridesPush(ctx, resolveConfig(cmd))
		},
	}

	cmd.Flags().String("overrides", "", "YAML overrides file")

	return cmd
}

func printRules(w io.Writer, table *override.Table, version, lang string) error {
	for _, r := range table.Rules() {
		if r.Version != version || r.Lang != lang {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\n", r.Identifier, r.Text); err != nil {
			return err
		}
	}
	return nil
}

// runOverridesPush handles the `overrides push` command.
func runOverridesPush(ctx context.Context, cfg *config.Config) error {
	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL is not set")
	}

	table, err := override.Default()
	if err != nil {
		return err
	}
	if cfg.OverridesFile != "" {
		fromFile, err := override.LoadYAML(cfg.OverridesFile)
		if err != nil {
			return err
		}
		table.Merge(fromFile)
	}

	pgPool, err := initDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer pgPool.Close()

	changed, err := override.NewPGStore(pgPool).Upsert(ctx, table.Rules())
	if err != nil {
		return err
	}

	log.Info().Int("rules", table.Len()).Int("changed", changed).Msg("Pushed overrides")
	return nil
}
