package cli

import (
	"fmt"

	"github.com/monocle-dev/holdings/db"
	"github.com/monocle-dev/holdings/internal/config"
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root command for the holdings CLI.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "holdings",
		Short:        "Holdings - personal investment tracking API",
		Long:         "Track investments, their tags and their buy/sell activities behind a token-authenticated JSON API.",
		SilenceUsage: true,
	}

	cmd.AddCommand(NewServeCommand())
	cmd.AddCommand(NewMigrateCommand())
	cmd.AddCommand(NewCreateSuperuserCommand())

	return cmd
}

// loadConfig reads configuration and applies the database flag overrides
// shared by every subcommand.
func loadConfig(driver, dsn string) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}

	if driver != "" {
		cfg.DatabaseDriver = driver
	}
	if dsn != "" {
		cfg.DatabaseURL = dsn
	}

	return cfg, nil
}

func openDatabase(cfg config.Config) error {
	if err := db.ConnectDatabase(cfg.DatabaseDriver, cfg.DatabaseURL); err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	return nil
}

func addDatabaseFlags(cmd *cobra.Command, driver, dsn *string) {
	cmd.Flags().StringVar(driver, "db-driver", "", "database driver: postgres, mysql or sqlite (overrides DB_DRIVER)")
	cmd.Flags().StringVar(dsn, "db", "", "database DSN (overrides DATABASE_URL)")
}
