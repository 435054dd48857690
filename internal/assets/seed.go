package assets

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/doug-martin/goqu/v9"
	"go.uber.org/zap"

	"github.com/sirdav1d/geosapiens-challenge/pkg/metadata"
	"github.com/sirdav1d/geosapiens-challenge/pkg/models"
)

const (
	seedCount     = 200
	seedYearsBack = 5
	seedRandSeed  = 42
)

// SeedAssets fills an empty assets table with a deterministic demo data set.
// It is a no-op unless enabled, and never touches a table that already has
// rows. The whole batch goes in as one transaction.
func SeedAssets(repo *AssetsRepository, enabled bool, logger *zap.Logger) error {
	if !enabled {
		logger.Info("Seed disabled (APP_SEED=false)")
		return nil
	}

	count, err := repo.CountAssets()
	if err != nil {
		return err
	}
	if count > 0 {
		logger.Info("Seed skipped: assets already present", zap.Int64("count", count))
		return nil
	}

	records := generateSeedRecords(seedCount, time.Now())
	err = repo.InTransaction(func(tx *goqu.TxDatabase) error {
		return repo.insertBatch(tx, records)
	})
	if err != nil {
		return err
	}

	logger.Info("Seed finished", zap.Int("assets", len(records)))
	return nil
}

// generateSeedRecords walks the category x status combinations round-robin
// and draws acquisition dates from a fixed-seed RNG so consecutive runs of an
// empty database produce identical data.
func generateSeedRecords(total int, today time.Time) []goqu.Record {
	categories := metadata.Categories()
	statuses := metadata.Statuses()
	combos := len(categories) * len(statuses)

	maxDaysBack := seedYearsBack * 365
	rng := rand.New(rand.NewSource(seedRandSeed))

	records := make([]goqu.Record, 0, total)
	for i := 1; i <= total; i++ {
		comboIndex := (i - 1) % combos
		category := categories[comboIndex%len(categories)]
		status := statuses[(comboIndex/len(categories))%len(statuses)]

		daysBack := rng.Intn(maxDaysBack + 1)
		acquisitionDate := models.DateOf(today.AddDate(0, 0, -daysBack))

		records = append(records, goqu.Record{
			"name":             fmt.Sprintf("%s %03d", category.Label(), i),
			"serial_number":    fmt.Sprintf("GS-%s-%s-%04d", category.Code(), status.Code(), i),
			"category":         category.String(),
			"status":           status.String(),
			"acquisition_date": acquisitionDate,
		})
	}

	return records
}
