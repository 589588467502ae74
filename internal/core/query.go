package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/openkaraoke/server/internal/legacy"
)

// Query defaults. Invalid or missing client parameters fall back to these
// rather than failing the request.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// sortColumns is the allow-list of client-facing sort fields and the columns
// they map to. Anything else silently falls back to id.
var sortColumns = map[string]string{
	"id":      "id",
	"artista": "artista",
	"musica":  "musica",
}

// SongQuery describes one catalog read: optional filters plus pagination and
// sorting. The zero value is valid and means "first page of everything".
type SongQuery struct {
	Artist string // substring match on artista, case-insensitive
	Title  string // substring match on musica, case-insensitive
	ID     string // exact match on id

	Page      int
	Limit     int
	SortBy    string // one of: id, artista, musica
	SortOrder string // asc (default) or desc
}

// Pagination describes the window of a paginated response. Total and
// TotalPages always cover the whole filtered set, not just the returned page.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// SongPage is a single page of catalog results.
type SongPage struct {
	Data       []legacy.Song `json:"data"`
	Pagination Pagination    `json:"pagination"`
}

// normalized returns a copy of q with defaults applied.
func (q SongQuery) normalized() SongQuery {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if _, ok := sortColumns[q.SortBy]; !ok {
		q.SortBy = "id"
	}
	if q.SortOrder != "desc" {
		q.SortOrder = "asc"
	}
	return q
}

// whereBuilder accumulates WHERE conditions with positional args.
type whereBuilder struct {
	conditions []string
	args       []interface{}
	argIndex   int
}

func newWhereBuilder() *whereBuilder {
	return &whereBuilder{argIndex: 1}
}

// AddContains adds a case-insensitive, unanchored substring condition.
func (wb *whereBuilder) AddContains(column, value string) {
	if value == "" {
		return
	}
	wb.conditions = append(wb.conditions, fmt.Sprintf("%s ILIKE $%d", column, wb.argIndex))
	wb.args = append(wb.args, "%"+value+"%")
	wb.argIndex++
}

// AddEqual adds an exact-match condition.
func (wb *whereBuilder) AddEqual(column, value string) {
	if value == "" {
		return
	}
	wb.conditions = append(wb.conditions, fmt.Sprintf("%s = $%d", column, wb.argIndex))
	wb.args = append(wb.args, value)
	wb.argIndex++
}

// Build returns the WHERE clause (with leading space, empty when there are
// no conditions) and its args.
func (wb *whereBuilder) Build() (string, []interface{}) {
	if len(wb.conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(wb.conditions, " AND "), wb.args
}

// NextArgIndex returns the positional index the next argument would take.
func (wb *whereBuilder) NextArgIndex() int {
	return wb.argIndex
}

// songWhere builds the filter clause for a query. The exact id filter and
// the substring filters combine with AND, matching the original API.
func songWhere(q SongQuery) *whereBuilder {
	wb := newWhereBuilder()
	wb.AddEqual("id", q.ID)
	wb.AddContains("artista", q.Artist)
	wb.AddContains("musica", q.Title)
	return wb
}

// orderClause builds the ORDER BY for a normalized query. A secondary id
// sort keeps pages stable when the primary column has ties.
func orderClause(q SongQuery) string {
	col := sortColumns[q.SortBy]
	dir := strings.ToUpper(q.SortOrder)
	if col == "id" {
		return fmt.Sprintf(" ORDER BY id %s", dir)
	}
	return fmt.Sprintf(" ORDER BY %s %s, id ASC", col, dir)
}

// totalPages computes ceil(total/limit); zero results mean zero pages.
func totalPages(total int64, limit int) int {
	return int((total + int64(limit) - 1) / int64(limit))
}

// ListSongs returns one page of the catalog. The total count is computed
// over the whole filtered set before the page window is applied, and rows
// are sorted before pagination, so the window is always a slice of one
// stable ordering.
func (s *Service) ListSongs(ctx context.Context, q SongQuery) (*SongPage, error) {
	q = q.normalized()

	wb := songWhere(q)
	whereClause, args := wb.Build()

	var total int64
	countQuery := "SELECT COUNT(*) FROM songs" + whereClause
	if err := s.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count songs: %w", err)
	}

	page := &SongPage{
		Data: []legacy.Song{},
		Pagination: Pagination{
			Page:       q.Page,
			Limit:      q.Limit,
			Total:      total,
			TotalPages: totalPages(total, q.Limit),
		},
	}
	if total == 0 {
		return page, nil
	}

	argIndex := wb.NextArgIndex()
	query := fmt.Sprintf(
		"SELECT id, arquivo, artista, musica, inicio FROM songs%s%s LIMIT $%d OFFSET $%d",
		whereClause, orderClause(q), argIndex, argIndex+1,
	)
	args = append(args, q.Limit, (q.Page-1)*q.Limit)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query songs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var song legacy.Song
		if err := rows.Scan(&song.ID, &song.File, &song.Artist, &song.Title, &song.Start); err != nil {
			return nil, fmt.Errorf("scan song: %w", err)
		}
		page.Data = append(page.Data, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return page, nil
}
