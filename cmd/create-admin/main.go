package main

import (
	"fmt"
	"log"
	"os"

	"union-backend/internal/auth"
	"union-backend/internal/config"
	"union-backend/internal/database"

	"github.com/spf13/cobra"
)

// create-admin registers an admin user from the shell, for bootstrapping
// a fresh deployment before any user exists to log in with.
func main() {
	rootCmd := &cobra.Command{
		Use:          "create-admin <username> <password>",
		Short:        "Create an admin user in the site database",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			username, password := args[0], args[1]
			if len(password) < 6 {
				return fmt.Errorf("password must be at least 6 characters")
			}

			cfg := config.Load()
			db, err := database.Open(cfg)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}

			users := auth.NewRepository(db)
			user, err := users.Create(username, password)
			if err != nil {
				return err
			}

			log.Printf("Admin created: %s (id: %d)", user.Username, user.ID)
			return nil
		},
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
