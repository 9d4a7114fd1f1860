package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ganpathioverseas/erp_finance/internal/platform/config"
	"github.com/ganpathioverseas/erp_finance/pkg/database"
)

func newMigrateCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:       "migrate <up|down>",
		Short:     "Apply or revert the database migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(database.MigrateUp), string(database.MigrateDown)},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if path == "" {
				path = cfg.MigrationsPath
			}
			changed, err := database.Migrate(cfg.DatabaseURL, path, database.MigrationDirection(args[0]))
			if err != nil {
				return err
			}
			if changed {
				fmt.Fprintf(cmd.OutOrStdout(), "migrations %s applied\n", args[0])
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "no migrations to apply")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "migration source URL (defaults to MIGRATIONS_PATH)")

	return cmd
}
