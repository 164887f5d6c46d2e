package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bankmerge-dev/bankmerge/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "bankmerge",
		Short:   "Consolidate bank statement exports into one transaction table",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newConsolidateCommand())
	rootCmd.AddCommand(newFormatsCommand())

	return rootCmd
}
