// Package database opens the Postgres connection and keeps its schema
// current. The service runs without it; storage falls back to memory when
// no DATABASE_URL is configured.
package database

import (
	"fmt"

	"github.com/patternmusic/pattern-api/internal/storage"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens a gorm connection to the given Postgres URL.
func Connect(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the stored-pattern schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&storage.PatternRecord{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
