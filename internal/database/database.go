package database

import (
	"database/sql"
	"embed"
	"fmt"

	"dota-scout/internal/config"
	"dota-scout/internal/constants"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// New opens the fixture-capture database. An empty FIXTURE_DB_PATH disables
// capture; callers get a nil *sql.DB and must treat it as "capture off".
func New(cfg *config.Config, logger zerolog.Logger) (*sql.DB, error) {
	if cfg.FixtureDBPath == "" {
		logger.Info().Msg("fixture capture disabled, no database configured")
		return nil, nil
	}

	logger.Info().Str("path", cfg.FixtureDBPath).Msg("opening fixture database")

	db, err := sql.Open("sqlite3", cfg.FixtureDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixture database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		fmt.Sprintf("PRAGMA busy_timeout = %d", constants.DBBusyTimeoutMS),
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return nil, fmt.Errorf("failed to set pragma %q: %w", pragma, err)
		}
	}

	if err := runMigrations(db, logger); err != nil {
		return nil, err
	}

	return db, nil
}

func runMigrations(db *sql.DB, logger zerolog.Logger) error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to run goose migrations: %w", err)
	}

	logger.Info().Msg("fixture database migrations completed")
	return nil
}
