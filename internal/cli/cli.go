package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"preset-localizer/internal/config"
	"preset-localizer/internal/override"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Execute runs the CLI application.
func Execute() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "preset-localizer",
		Short: "Fill missing translations in Anno Designer preset catalogs",
		Long: `Derives translations for preset catalogs from the game's own per-language
text exports, matching catalog entries by their English display text.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
		},
	}
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")

	rootCmd.AddCommand(autoCmd())
	rootCmd.AddCommand(manualCmd())
	rootCmd.AddCommand(treelocCmd())
	rootCmd.AddCommand(languagesCmd())
	rootCmd.AddCommand(overridesCmd())

	return rootCmd
}

// setupContext creates a cancellable context with signal handling.
func setupContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
			log.Warn().Msg("Received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}

// initDatabase connects to PostgreSQL and prepares the overrides table. It
// returns a nil pool when no database is configured.
func initDatabase(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	if cfg.DatabaseURL == "" {
		return nil, nil
	}

	pgPool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect PostgreSQL: %w", err)
	}

	if err := pgPool.Ping(ctx); err != nil {
		pgPool.Close()
		return nil, fmt.Errorf("ping PostgreSQL: %w", err)
	}

	if err := override.NewPGStore(pgPool).EnsureSchema(ctx); err != nil {
		pgPool.Close()
		return nil, err
	}
	log.Info().Msg("Connected to PostgreSQL")

	return pgPool, nil
}

// loadOverrides assembles the override table: built-in rules, then the YAML
// file, then PostgreSQL. Later sources replace earlier ones.
func loadOverrides(ctx context.Context, cfg *config.Config, file, version, lang string) (*override.Table, error) {
	table, err := override.Default()
	if err != nil {
		return nil, err
	}

	if file != "" {
		fromFile, err := override.LoadYAML(file)
		if err != nil {
			return nil, err
		}
		table.Merge(fromFile)
		log.Info().Str("path", file).Int("rules", fromFile.Len()).Msg("Loaded overrides file")
	}

	pgPool, err := initDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if pgPool != nil {
		defer pgPool.Close()
		fromDB, err := override.NewPGStore(pgPool).Load(ctx, version, lang)
		if err != nil {
			return nil, err
		}
		table.Merge(fromDB)
	}

	return table, nil
}

// resolveConfig applies command-line values over the environment config.
func resolveConfig(cmd *cobra.Command) *config.Config {
	cfg := config.Load()
	flags := cmd.Flags()

	if flags.Changed("lang") {
		cfg.TargetLang, _ = flags.GetString("lang")
	}
	if flags.Changed("version") {
		cfg.GameVersion, _ = flags.GetString("version")
	}
	if flags.Changed("overrides") {
		cfg.OverridesFile, _ = flags.GetString("overrides")
	}
	if flags.Changed("workers") {
		cfg.WorkerCount, _ = flags.GetInt("workers")
	}
	return cfg
}
