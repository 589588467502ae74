package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/openkaraoke/server/internal/core"
	"github.com/openkaraoke/server/internal/legacy"
)

// handleHealth reports service liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "karaoke api is running",
	})
}

// handleListSongs returns one page of the catalog. Filter, pagination and
// sort parameters are all optional; anything unparseable falls back to its
// default instead of failing the request.
func (s *Server) handleListSongs(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	// numero is a legacy alias for id; id wins when both are sent
	id := params.Get("id")
	if id == "" {
		id = params.Get("numero")
	}

	q := core.SongQuery{
		Artist:    params.Get("artista"),
		Title:     params.Get("musica"),
		ID:        id,
		Page:      parseIntParam(r, "page", core.DefaultPage),
		Limit:     parseIntParam(r, "limit", core.DefaultLimit),
		SortBy:    params.Get("sortBy"),
		SortOrder: params.Get("sortOrder"),
	}

	page, err := s.service.ListSongs(r.Context(), q)
	if err != nil {
		writeInternalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// uploadResponse is the success payload for a catalog import.
type uploadResponse struct {
	Message string       `json:"message"`
	Stats   legacy.Stats `json:"stats"`
}

// handleUpload imports a legacy .ini catalog file. The whole file is either
// reconciled against the stored catalog or rejected with the full list of
// validation problems.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		writeError(w, r, http.StatusBadRequest, "file too large or invalid form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".ini") {
		writeError(w, r, http.StatusBadRequest, "only .ini files are accepted")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeInternalError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.Upload.Timeout)
	defer cancel()

	stats, err := s.service.ImportLegacy(ctx, legacy.Decode(data))
	if err != nil {
		var verr *core.ValidationError
		if errors.As(err, &verr) {
			writeErrorDetails(w, r, http.StatusBadRequest, "file failed validation", verr.Details)
			return
		}
		writeInternalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{
		Message: "upload completed",
		Stats:   stats,
	})
}

// queueAddRequest is the JSON body for POST /queue/add.
type queueAddRequest struct {
	MusicID string `json:"musicId"`
	Name    string `json:"name"`
	Date    string `json:"date"`
	Time    string `json:"time"`
}

// queueAddResponse wraps a stored queue entry.
type queueAddResponse struct {
	Success bool             `json:"success"`
	Entry   *core.QueueEntry `json:"entry"`
}

// handleQueueAdd stores a new queue entry. All four fields are required.
func (s *Server) handleQueueAdd(w http.ResponseWriter, r *http.Request) {
	var req queueAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}

	var missing []string
	for _, f := range []struct{ name, value string }{
		{"musicId", req.MusicID},
		{"name", req.Name},
		{"date", req.Date},
		{"time", req.Time},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		writeError(w, r, http.StatusBadRequest, "missing required fields: "+strings.Join(missing, ", "))
		return
	}

	entry, err := s.service.AddQueueEntry(r.Context(), req.MusicID, req.Name, req.Date, req.Time)
	if err != nil {
		writeInternalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, queueAddResponse{Success: true, Entry: entry})
}

// handleQueueToday lists today's queue entries with catalog data joined in.
func (s *Server) handleQueueToday(w http.ResponseWriter, r *http.Request) {
	entries, err := s.service.TodayQueue(r.Context())
	if err != nil {
		writeInternalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return defaultVal
	}
	return i
}
