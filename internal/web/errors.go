package web

// errors.go provides unified JSON error responses for the web layer.
//
// Every error is logged server-side with the chi request ID for correlation
// and returned to the client as a small JSON envelope. Validation failures
// additionally carry a details list so the client can show every problem in
// the uploaded file at once. Unexpected failures keep their underlying
// message in both the log and the envelope.

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

// errorResponse is the JSON envelope for error responses.
type errorResponse struct {
	Error   string   `json:"error"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// writeError writes a JSON error response for a client error and logs it
// with request context.
func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	respond(w, r, status, message, nil, nil)
}

// writeErrorDetails is writeError with a details list.
func writeErrorDetails(w http.ResponseWriter, r *http.Request, status int, message string, details []string) {
	respond(w, r, status, message, details, nil)
}

// writeInternalError surfaces an unexpected failure as a 500. The underlying
// error message goes to both the log and the response envelope; these are
// storage or I/O failures, not secrets.
func writeInternalError(w http.ResponseWriter, r *http.Request, err error) {
	respond(w, r, http.StatusInternalServerError, err.Error(), nil, err)
}

func respond(w http.ResponseWriter, r *http.Request, status int, message string, details []string, err error) {
	attrs := []interface{}{
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"message", message,
		"request_id", middleware.GetReqID(r.Context()),
	}
	if err != nil {
		attrs = append(attrs, "error", err.Error())
	}
	if len(details) > 0 {
		attrs = append(attrs, "detail_count", len(details))
	}
	slog.Error("request error", attrs...)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Details: details,
	})
}

// writeJSON encodes v as JSON with the given status code.
// Encoding errors are logged since headers are already sent.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
