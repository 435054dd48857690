package database

import (
	"fmt"
	"path/filepath"

	"github.com/sirdav1d/geosapiens-challenge/internal/database/migration"

	"go.uber.org/zap"
)

// RunMigrations applies pending migrations from migrationsDir at startup.
func RunMigrations(dbURL string, migrationsDir string, log *zap.Logger) error {
	if dbURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	absPath, err := filepath.Abs(migrationsDir)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	return migration.Migrate(dbURL, "file://"+absPath, log)
}
