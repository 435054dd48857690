package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sirdav1d/geosapiens-challenge/internal/core/logger"
	"github.com/sirdav1d/geosapiens-challenge/internal/database"
)

var MigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations manually.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		dbURL := os.Getenv("DATABASE_URL")
		migrationsDir, _ := cmd.Flags().GetString("dir")

		log := logger.NewLogger()
		defer log.Sync()

		if err := database.RunMigrations(dbURL, migrationsDir, log); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}

		return nil
	},
}

func Execute(ctx context.Context) {
	rootCmd := &cobra.Command{
		Use:   "geosapiens",
		Short: "IT asset management service",
	}
	MigrateCmd.Flags().String("dir", "./migrations", "Directory containing the migration files")
	rootCmd.AddCommand(MigrateCmd)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
