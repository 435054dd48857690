package migration

import (
	"errors"

	"github.com/golang-migrate/migrate/v4"
	"go.uber.org/zap"

	_ "github.com/golang-migrate/migrate/v4/database/postgres" // register postgres driver
	_ "github.com/golang-migrate/migrate/v4/source/file"       // register file source
)

func Migrate(dbURL string, migrationsPath string, log *zap.Logger) error {
	log.Info("Running database migration", zap.String("source", migrationsPath))

	dbMigrate, err := migrate.New(migrationsPath, dbURL)
	if err != nil {
		return err
	}

	err = dbMigrate.Up()
	if err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("Database migration: no change needed")
		} else {
			log.Error("Database migration failed", zap.Error(err))
			return err
		}
	}

	return nil
}
