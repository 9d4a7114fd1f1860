// Package commands implements financectl, the operator CLI for the finance service.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ganpathioverseas/erp_finance/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "financectl",
		Short:   "Operate the Ganpathi Overseas finance service",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newPolicyCommand())
	rootCmd.AddCommand(newReportCommand())
	rootCmd.AddCommand(newRoleCommand())

	return rootCmd
}
