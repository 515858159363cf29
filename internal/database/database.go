package database

import (
	"context"
	"fmt"
	"time"

	"taskflow/internal/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect builds a lazy database handle. It does not dial: a down database at
// startup must not crash the process, so connectivity is probed separately via
// Ping and per request by the store middleware.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableAutomaticPing: true,
	})
}

// Ping probes connectivity with a short timeout.
func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return sqlDB.PingContext(ctx)
}
