package database

import (
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mytheresa/go-inventory/models"
)

// Dialector picks the gorm dialector from the URL scheme.
// postgres:// and postgresql:// go through lib/pq; sqlite://path opens a SQLite file.
func Dialector(databaseURL string) (gorm.Dialector, error) {
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return postgres.New(postgres.Config{
			DriverName: "postgres",
			DSN:        databaseURL,
		}), nil
	case strings.HasPrefix(databaseURL, "sqlite://"):
		return sqlite.Open(strings.TrimPrefix(databaseURL, "sqlite://")), nil
	}
	return nil, fmt.Errorf("unsupported database URL: %s", databaseURL)
}

// Open connects to the record store, retrying with exponential backoff
// (1s, 2s, 4s ... capped at 10s) until attempts are exhausted.
func Open(databaseURL string, attempts int) (*gorm.DB, error) {
	dialector, err := Dialector(databaseURL)
	if err != nil {
		return nil, err
	}
	if attempts < 1 {
		attempts = 1
	}

	var db *gorm.DB
	for i := 1; i <= attempts; i++ {
		db, err = gorm.Open(dialector, &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err == nil {
			sqlDB, dbErr := db.DB()
			if dbErr != nil {
				return nil, dbErr
			}
			if err = sqlDB.Ping(); err == nil {
				configurePool(databaseURL, db)
				log.Info().Int("attempt", i).Msg("database connected")
				return db, nil
			}
		}

		log.Warn().Err(err).Int("attempt", i).Msg("database connection failed")
		if i == attempts {
			break
		}
		wait := time.Duration(1<<uint(i-1)) * time.Second
		if wait > 10*time.Second {
			wait = 10 * time.Second
		}
		time.Sleep(wait)
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", attempts, err)
}

func configurePool(databaseURL string, db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if strings.HasPrefix(databaseURL, "sqlite://") {
		// a single writer avoids "database is locked"
		sqlDB.SetMaxOpenConns(1)
		return
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
}

// Migrate creates or updates the Categories and Products collections.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}); err != nil {
		return fmt.Errorf("failed to migrate collections: %w", err)
	}
	log.Info().Msg("database migrations completed")
	return nil
}
