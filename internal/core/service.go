// Package core provides the business logic for the karaoke catalog and
// performance queue. It owns all PostgreSQL access; the pure import pipeline
// lives in internal/legacy.
package core

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openkaraoke/server/internal/config"
)

// Service provides catalog queries, legacy imports, and queue operations.
type Service struct {
	pool *pgxpool.Pool
	cfg  *config.Config
}

// NewService creates a new Service instance.
func NewService(pool *pgxpool.Pool, cfg *config.Config) *Service {
	return &Service{pool: pool, cfg: cfg}
}

// Migrate creates the songs and queue tables if they do not exist.
// The unique index on songs.id is what turns two concurrent imports of the
// same new id into a visible duplicate-key error instead of silent
// duplicates; callers retry the whole upload on that signal.
func (s *Service) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS songs (
			seq        BIGSERIAL PRIMARY KEY,
			id         TEXT NOT NULL,
			arquivo    TEXT NOT NULL DEFAULT '',
			artista    TEXT NOT NULL DEFAULT '',
			musica     TEXT NOT NULL DEFAULT '',
			inicio     TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS songs_id_key ON songs (id)`,
		`CREATE INDEX IF NOT EXISTS songs_artista_idx ON songs (artista)`,
		`CREATE INDEX IF NOT EXISTS songs_musica_idx ON songs (musica)`,
		`CREATE TABLE IF NOT EXISTS queue_entries (
			id         UUID PRIMARY KEY,
			music_id   TEXT NOT NULL,
			name       TEXT NOT NULL,
			date       TEXT NOT NULL,
			time       TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS queue_entries_date_idx ON queue_entries (date, time, created_at)`,
	}

	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
