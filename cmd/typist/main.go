// Command typist is the companion automation daemon. It runs on the machine
// driving the karaoke player, accepts song numbers over HTTP and types them
// into the focused window one at a time.
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/openkaraoke/server/internal/logging"
	"github.com/openkaraoke/server/internal/typist"
	"github.com/openkaraoke/server/internal/web/middleware"
)

func main() {
	if err := godotenv.Overload(); err == nil {
		slog.Info("loaded .env file")
	}

	logging.Setup(envOr("LOG_LEVEL", "info"), envOr("LOG_FORMAT", "text"))

	opts := typist.DefaultOptions()
	if d, err := time.ParseDuration(envOr("TYPIST_FOCUS_DELAY", "")); err == nil {
		opts.FocusDelay = d
	}
	if d, err := time.ParseDuration(envOr("TYPIST_STEP_DELAY", "")); err == nil {
		opts.StepDelay = d
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	queue := typist.NewQueue(ctx, &typist.ExecTyper{
		Command: envOr("TYPIST_COMMAND", ""),
	}, opts)

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(middleware.Logger)
	router.Use(chimw.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	router.Post("/add-number", handleAddNumber(queue))
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("typist daemon is running. POST numbers to /add-number."))
	})

	addr := ":" + envOr("TYPIST_PORT", "4000")
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("typist daemon starting", "addr", addr, "focus_delay", opts.FocusDelay)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// addNumberRequest accepts the number as either a JSON string or a number,
// matching what the queue frontend sends.
type addNumberRequest struct {
	Number json.Number `json:"number"`
}

func handleAddNumber(queue *typist.Queue) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addNumberRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Number.String() == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{
				"error": "no number provided in body",
			})
			return
		}

		size := queue.Enqueue(req.Number.String())
		slog.Info("number queued", "number", req.Number.String(), "queue_size", size)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message":   "number added to queue",
			"queueSize": size,
		})
	}
}

// envOr returns the environment variable or a default when unset.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
