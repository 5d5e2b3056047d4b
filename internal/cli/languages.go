package cli

import (
	"fmt"
	"io"

	"preset-localizer/internal/langcode"

	"github.com/spf13/cobra"
)

func languagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List supported catalog language codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printLanguages(cmd.OutOrStdout())
		},
	}
}

func printLanguages(w io.Writer) error {
	for _, code := range langcode.Codes() {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", code, langcode.Name(code)); err != nil {
			return err
		}
	}
	return nil
}
