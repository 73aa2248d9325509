package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/pageza/nutrilens/backend/internal/database/migrations"
	"github.com/pageza/nutrilens/backend/internal/models"
	"gorm.io/gorm"
)

// RunMigrations brings the schema up to date. SQLite databases, used in
// tests and local development, are migrated from the gorm models.
func RunMigrations(db *gorm.DB) error {
	if db.Dialector.Name() == "sqlite" {
		slog.Info("using gorm auto-migration for sqlite")
		return AutoMigrate(db)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	m, err := NewMigrator(sqlDB)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// AutoMigrate creates the tables from the gorm models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.DietPreference{},
		&models.Meal{},
	)
}

// NewMigrator returns a migrate instance over the embedded Postgres
// migrations.
func NewMigrator(db *sql.DB) (*migrate.Migrate, error) {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	return migrate.NewWithInstance("iofs", src, "postgres", driver)
}
