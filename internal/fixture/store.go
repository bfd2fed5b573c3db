// Package fixture persists raw upstream payloads for offline testing. It is
// a side-channel write hooked into the provider clients, never on the read
// path's critical timing.
package fixture

import (
	"context"
	"database/sql"
	"time"

	"dota-scout/internal/constants"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type Store struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewStore wraps the fixture database; db may be nil, which turns every
// capture into a no-op.
func NewStore(db *sql.DB, logger zerolog.Logger) *Store {
	return &Store{db: db, logger: logger}
}

func (s *Store) Enabled() bool {
	return s.db != nil
}

// Capture stores one raw payload. It runs on the client's capture goroutine;
// failures are logged and swallowed because fixture capture must never
// affect a live request.
func (s *Store) Capture(provider, path string, payload []byte) {
	if s.db == nil {
		return
	}

	id, err := gonanoid.New()
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to generate fixture id")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.DatabaseTimeout)
	defer cancel()

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO fixtures (id, provider, path, payload, captured_at) VALUES (?, ?, ?, ?, ?)`,
		id, provider, path, string(payload), time.Now().UTC(),
	)
	if err != nil {
		s.logger.Warn().Err(err).Str("provider", provider).Str("path", path).Msg("failed to capture fixture")
		return
	}
	s.logger.Debug().Str("provider", provider).Str("path", path).Msg("fixture captured")
}

type Fixture struct {
	ID         string
	Provider   string
	Path       string
	Payload    []byte
	CapturedAt time.Time
}

// Latest returns the most recent capture for a provider path, for exporting
// fixtures out of a running instance.
func (s *Store) Latest(ctx context.Context, provider, path string) (*Fixture, error) {
	if s.db == nil {
		return nil, sql.ErrNoRows
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	row := s.db.QueryRowContext(ctx,
		`SELECT id, provider, path, payload, captured_at FROM fixtures
		 WHERE provider = ? AND path = ? ORDER BY captured_at DESC, rowid DESC LIMIT 1`,
		provider, path,
	)

	var f Fixture
	var payload string
	if err := row.Scan(&f.ID, &f.Provider, &f.Path, &payload, &f.CapturedAt); err != nil {
		return nil, err
	}
	f.Payload = []byte(payload)
	return &f, nil
}
