package cli

import (
	"bytes"
	"context"

	"preset-localizer/internal/treeloc"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func treelocCmd() *cobra.Command {
	var input, output string

	cmd := &cobra.Command{
		Use:   "treeloc",
		Short: "Generate the tree localization table from the community sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := setupContext()
			defer cancel()
			return runTreeloc(ctx, input, output)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", treeloc.DefaultSheetURL, "Sheet CSV path or URL")
	cmd.Flags().StringVarP(&output, "output", "o", "treeLocalization.json", "Output JSON path")

	return cmd
}

// runTreeloc handles the `treeloc` command.
func runTreeloc(ctx context.Context, input, output string) error {
	data, err := treeloc.NewFetcher().Fetch(ctx, input)
	if err != nil {
		return err
	}

	table, err := treeloc.Parse(bytes.NewReader(data))
	if err != nil {
		return err
	}

	if err := table.Save(output); err != nil {
		return err
	}

	log.Info().Int("languages", len(table)).Str("output", output).Msg("Tree localization complete")
	return nil
}
