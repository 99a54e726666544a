package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewMigrateCommand() *cobra.Command {
	var driver, dsn string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(driver, dsn)
			if err != nil {
				return err
			}

			if err := openDatabase(cfg); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Database migrated (%s)\n", cfg.DatabaseDriver)
			return nil
		},
	}

	addDatabaseFlags(cmd, &driver, &dsn)

	return cmd
}
