package cli

import (
	"errors"
	"fmt"

	"github.com/monocle-dev/holdings/db"
	"github.com/monocle-dev/holdings/internal/services"
	"github.com/spf13/cobra"
)

type createSuperuserOptions struct {
	Driver   string
	DSN      string
	Email    string
	Password string
}

func NewCreateSuperuserCommand() *cobra.Command {
	opts := &createSuperuserOptions{}

	cmd := &cobra.Command{
		Use:   "createsuperuser",
		Short: "Create an active staff superuser",
		Long: `Create an active staff superuser.

Example:
  holdings createsuperuser --email admin@example.com --password s3cret`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.Driver, opts.DSN)
			if err != nil {
				return err
			}

			if err := openDatabase(cfg); err != nil {
				return err
			}

			user, err := services.CreateSuperuser(db.DB, opts.Email, opts.Password)
			if errors.Is(err, services.ErrEmailTaken) {
				return fmt.Errorf("a user with email %s already exists", services.NormalizeEmail(opts.Email))
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Superuser %s created (id %d)\n", user.Email, user.ID)
			return nil
		},
	}

	addDatabaseFlags(cmd, &opts.Driver, &opts.DSN)
	cmd.Flags().StringVar(&opts.Email, "email", "", "superuser email (required)")
	cmd.Flags().StringVar(&opts.Password, "password", "", "superuser password (required)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
