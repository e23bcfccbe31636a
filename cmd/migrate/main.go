package main

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"

	"fyyur/internal/config"
	"fyyur/internal/logging"
	"fyyur/migrations"
)

const usage = "usage: migrate up|down|version|force <version>"

func main() {
	logger, err := logging.New(logging.Config{Level: "info", Format: "text"})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logger.Zerolog()

	if err := run(os.Args[1:], log); err != nil {
		logger.Fatal(err, "migration failed")
	}
}

func run(args []string, log zerolog.Logger) error {
	if len(args) == 0 {
		return errors.New(usage)
	}

	dbCfg, err := config.LoadDatabase()
	if err != nil {
		return err
	}

	db, err := sql.Open("postgres", dbCfg.URL)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	m, err := migrations.New(db)
	if err != nil {
		return err
	}

	switch args[0] {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("apply migrations: %w", err)
		}
		log.Info().Msg("migrations applied")
	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("roll back migrations: %w", err)
		}
		log.Info().Msg("migrations rolled back")
	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			log.Info().Msg("no migrations applied")
			return nil
		}
		if err != nil {
			return fmt.Errorf("read version: %w", err)
		}
		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("schema version")
	case "force":
		if len(args) != 2 {
			return errors.New(usage)
		}
		version, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid version %q: %w", args[1], err)
		}
		if err := m.Force(version); err != nil {
			return fmt.Errorf("force version: %w", err)
		}
		log.Info().Int("version", version).Msg("version forced")
	default:
		return errors.New(usage)
	}
	return nil
}
