package core

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/openkaraoke/server/internal/logging"
)

// QueueEntry is one request in the singing queue. MusicID references the
// catalog but is not enforced as a foreign key; entries for unknown songs
// are allowed and simply carry no catalog data when listed.
type QueueEntry struct {
	ID        uuid.UUID `json:"id"`
	MusicID   string    `json:"musicId"`
	Name      string    `json:"name"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	CreatedAt time.Time `json:"createdAt"`
}

// TodayEntry is a queue entry joined with its catalog song, when one exists.
type TodayEntry struct {
	ID        uuid.UUID `json:"id"`
	MusicID   string    `json:"musicId"`
	Name      string    `json:"name"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	CreatedAt time.Time `json:"createdAt"`
	Title     *string   `json:"musica"`
	Artist    *string   `json:"artista"`
}

// AddQueueEntry stores a new queue entry. The id and creation timestamp are
// assigned server-side; the caller supplies the rest already validated.
func (s *Service) AddQueueEntry(ctx context.Context, musicID, name, date, timeOfDay string) (*QueueEntry, error) {
	entry := &QueueEntry{
		ID:      uuid.New(),
		MusicID: musicID,
		Name:    name,
		Date:    date,
		Time:    timeOfDay,
	}

	err := s.pool.QueryRow(ctx,
		`INSERT INTO queue_entries (id, music_id, name, date, time)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		entry.ID, entry.MusicID, entry.Name, entry.Date, entry.Time,
	).Scan(&entry.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert queue entry: %w", err)
	}

	logging.FromContext(ctx).Info("queue entry added",
		"entry_id", entry.ID,
		"music_id", entry.MusicID,
		"date", entry.Date,
	)

	return entry, nil
}

// TodayQueue lists the entries for the server's current date, ordered by
// requested time then arrival. Catalog fields are nil when the referenced
// song is not in the catalog.
func (s *Service) TodayQueue(ctx context.Context) ([]TodayEntry, error) {
	today := time.Now().Format("2006-01-02")

	rows, err := s.pool.Query(ctx,
		`SELECT q.id, q.music_id, q.name, q.date, q.time, q.created_at, s.musica, s.artista
		 FROM queue_entries q
		 LEFT JOIN songs s ON s.id = q.music_id
		 WHERE q.date = $1
		 ORDER BY q.time, q.created_at`,
		today,
	)
	if err != nil {
		return nil, fmt.Errorf("query today queue: %w", err)
	}
	defer rows.Close()

	entries := []TodayEntry{}
	for rows.Next() {
		var entry TodayEntry
		var title, artist pgtype.Text
		if err := rows.Scan(&entry.ID, &entry.MusicID, &entry.Name, &entry.Date, &entry.Time, &entry.CreatedAt, &title, &artist); err != nil {
			return nil, fmt.Errorf("scan queue entry: %w", err)
		}
		if title.Valid {
			entry.Title = &title.String
		}
		if artist.Valid {
			entry.Artist = &artist.String
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return entries, nil
}
