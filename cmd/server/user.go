package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/storefront/internal/db"
)

var createUserCmd = &cobra.Command{
	Use:   "create-user <username> <password>",
	Short: "Create an admin account if it does not exist yet",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := db.Init(cfg.DatabaseDriver, cfg.DatabaseTarget()); err != nil {
			return fmt.Errorf("initialize database: %w", err)
		}

		created, err := db.EnsureUser(db.DB, args[0], args[1])
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		if !created {
			return errors.New("user already exists or credentials are blank")
		}

		fmt.Fprintf(cmd.OutOrStdout(), "created admin user %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createUserCmd)
}
