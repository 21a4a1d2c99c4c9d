package database

import (
	"fmt"

	"gomeraway-api/internal/domain/billing"
	"gomeraway-api/internal/domain/bookings"
	"gomeraway-api/internal/domain/listings"
	"gomeraway-api/internal/domain/users"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// InitDB opens the Postgres pool and migrates every table the service owns.
func InitDB(dsn string, log *zap.Logger) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&users.Profile{},
		&billing.Subscription{},
		&listings.Listing{},
		&bookings.Booking{},
	); err != nil {
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	log.Info("connected and migrated")
	return db, nil
}
