package main

import (
	"database/sql"
	"errors"
	"flag"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/lib/pq"

	"github.com/pageza/nutrilens/backend/config"
	"github.com/pageza/nutrilens/backend/internal/database"
	"github.com/pageza/nutrilens/backend/internal/slogx"
)

func main() {
	down := flag.Int("down", 0, "roll back this many migrations")
	to := flag.Uint("to", 0, "migrate to this exact version")
	show := flag.Bool("version", false, "print the current version and exit")
	flag.Parse()

	logger := slogx.New(slogx.Config{Service: "nutrilens-migrate", Format: "text"})

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		cfg, err := config.LoadConfig()
		if err != nil {
			logger.Error("failed to load configuration", "error", err)
			os.Exit(1)
		}
		dsn = cfg.DatabaseURL()
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	m, err := database.NewMigrator(db)
	if err != nil {
		logger.Error("failed to create migrator", "error", err)
		os.Exit(1)
	}

	switch {
	case *show:
		v, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			logger.Error("failed to read version", "error", err)
			os.Exit(1)
		}
		logger.Info("schema version", "version", v, "dirty", dirty)
		return
	case *down > 0:
		err = m.Steps(-*down)
	case *to > 0:
		err = m.Migrate(*to)
	default:
		err = m.Up()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}

	v, _, _ := m.Version()
	logger.Info("migrations applied", "version", v)
}
