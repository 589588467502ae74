package core

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/openkaraoke/server/internal/legacy"
	"github.com/openkaraoke/server/internal/logging"
)

// ValidationError is returned by ImportLegacy when the uploaded file fails
// structural validation. Details holds the itemized, ordered error list for
// the client response.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("legacy file failed validation: %d problem(s)", len(e.Details))
}

// ImportLegacy runs the full import pipeline over decoded legacy file text:
// validate, parse, read the catalog snapshot, reconcile, and apply the
// resulting plan as batched inserts and updates.
//
// The read-reconcile-write sequence is not isolated against concurrent
// importers. When two uploads race to insert the same new id, the unique
// index on songs.id fails one of them; that error propagates out and the
// caller should retry the whole upload, not the one record.
func (s *Service) ImportLegacy(ctx context.Context, text string) (legacy.Stats, error) {
	if v := legacy.Validate(text); !v.Valid {
		return legacy.Stats{}, &ValidationError{Details: v.Errors}
	}

	batch := legacy.Parse(text)

	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return legacy.Stats{}, fmt.Errorf("read catalog snapshot: %w", err)
	}

	plan := legacy.Reconcile(batch, snapshot)
	if err := s.applyPlan(ctx, plan); err != nil {
		return legacy.Stats{}, err
	}

	stats := plan.Stats(len(batch))
	logging.FromContext(ctx).Info("legacy import applied",
		"total", stats.Total,
		"new", stats.New,
		"updated", stats.Updated,
		"unchanged", stats.Unchanged,
	)
	return stats, nil
}

// Snapshot reads the full persisted catalog, indexed by song id.
func (s *Service) Snapshot(ctx context.Context) (legacy.Snapshot, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, arquivo, artista, musica, inicio FROM songs`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snapshot := make(legacy.Snapshot)
	for rows.Next() {
		var song legacy.Song
		if err := rows.Scan(&song.ID, &song.File, &song.Artist, &song.Title, &song.Start); err != nil {
			return nil, fmt.Errorf("scan song: %w", err)
		}
		snapshot[song.ID] = song
	}
	return snapshot, rows.Err()
}

// applyPlan executes the plan's inserts and updates in a single batch round
// trip. Unchanged records produce no statements.
func (s *Service) applyPlan(ctx context.Context, plan legacy.Plan) error {
	if len(plan.Insert) == 0 && len(plan.Update) == 0 {
		return nil
	}

	b := &pgx.Batch{}
	for _, song := range plan.Insert {
		b.Queue(
			`INSERT INTO songs (id, arquivo, artista, musica, inicio) VALUES ($1, $2, $3, $4, $5)`,
			song.ID, song.File, song.Artist, song.Title, song.Start,
		)
	}
	for _, song := range plan.Update {
		b.Queue(
			`UPDATE songs SET arquivo = $2, artista = $3, musica = $4, inicio = $5, updated_at = now() WHERE id = $1`,
			song.ID, song.File, song.Artist, song.Title, song.Start,
		)
	}

	results := s.pool.SendBatch(ctx, b)
	defer results.Close()

	for i := 0; i < b.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("apply reconciliation plan: %w", err)
		}
	}
	return results.Close()
}
