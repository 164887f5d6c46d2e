package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bankmerge-dev/bankmerge/internal/importer"
)

func newFormatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List supported bank statement formats",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, f := range importer.DefaultRegistry().Formats() {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}
			return nil
		},
	}
}
