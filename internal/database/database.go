package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/noah-isme/jys-academy-api/internal/config"
	"github.com/noah-isme/jys-academy-api/internal/models"
)

// gormConfig is shared by every driver. Unique violations surface as gorm.ErrDuplicatedKey.
func gormConfig() *gorm.Config {
	return &gorm.Config{TranslateError: true}
}

// Connect opens the relational store selected by the configuration.
func Connect(cfg config.Config) (*gorm.DB, error) {
	switch cfg.DatabaseDriver {
	case config.DatabaseDriverSQLite:
		return ConnectSQLite(cfg.DatabaseURL)
	case config.DatabaseDriverPostgres:
		return ConnectPostgres(cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}
}

// Migrate creates or updates every table owned by the academy.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
