// Package typist drives a karaoke player by typing song numbers into
// whatever window holds keyboard focus. Numbers arrive over HTTP and are
// typed one at a time by a single worker, so concurrent requests can never
// interleave keystrokes.
package typist

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Typer performs one keystroke run: type the number, then confirm it.
type Typer interface {
	Type(ctx context.Context, number string) error
}

// Options tunes the worker's timing.
type Options struct {
	// FocusDelay is the grace period before the first keystroke of a run,
	// giving the operator time to click into the target window.
	FocusDelay time.Duration

	// StepDelay is the pause between consecutive numbers.
	StepDelay time.Duration
}

// DefaultOptions matches the timing the karaoke operators are used to.
func DefaultOptions() Options {
	return Options{
		FocusDelay: 5 * time.Second,
		StepDelay:  time.Second,
	}
}

// Queue is a single-consumer number queue. Enqueue wakes the worker if it is
// idle; a failed keystroke run puts the number back at the front and parks
// the worker until the next enqueue, so a broken target window does not burn
// retries unattended.
type Queue struct {
	typer Typer
	opts  Options
	ctx   context.Context

	mu         sync.Mutex
	pending    []string
	processing bool
}

// NewQueue creates an idle queue. The context bounds all keystroke runs;
// cancelling it stops the worker after the current number.
func NewQueue(ctx context.Context, typer Typer, opts Options) *Queue {
	return &Queue{
		typer: typer,
		opts:  opts,
		ctx:   ctx,
	}
}

// Enqueue appends a number and returns the queue size right after the
// append. The worker is started if it is not already running.
func (q *Queue) Enqueue(number string) int {
	q.mu.Lock()
	q.pending = append(q.pending, number)
	size := len(q.pending)
	start := !q.processing
	if start {
		q.processing = true
	}
	q.mu.Unlock()

	if start {
		go q.run()
	}
	return size
}

// Processing reports whether the worker is currently typing.
func (q *Queue) Processing() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.processing
}

// Size returns the number of queued numbers not yet typed.
func (q *Queue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// run drains the queue. The processing flag is already set when the
// goroutine starts; it is cleared under the same lock as the final queue
// inspection so an Enqueue racing with worker exit can never strand a
// number without a worker.
func (q *Queue) run() {
	slog.Warn("focus the target window now", "grace", q.opts.FocusDelay)
	if !q.sleep(q.opts.FocusDelay) {
		q.park()
		return
	}

	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			q.processing = false
			q.mu.Unlock()
			slog.Info("queue drained")
			return
		}
		number := q.pending[0]
		q.pending = q.pending[1:]
		q.mu.Unlock()

		slog.Info("typing number", "number", number)
		if err := q.typer.Type(q.ctx, number); err != nil {
			slog.Error("keystroke run failed, parking until next enqueue",
				"number", number,
				"error", err,
			)
			q.mu.Lock()
			q.pending = append([]string{number}, q.pending...)
			q.processing = false
			q.mu.Unlock()
			return
		}

		if !q.sleep(q.opts.StepDelay) {
			q.park()
			return
		}
	}
}

// park clears the processing flag after a cancelled run.
func (q *Queue) park() {
	q.mu.Lock()
	q.processing = false
	q.mu.Unlock()
}

// sleep waits for d unless the queue context is cancelled first.
func (q *Queue) sleep(d time.Duration) bool {
	if d <= 0 {
		return q.ctx.Err() == nil
	}
	select {
	case <-time.After(d):
		return true
	case <-q.ctx.Done():
		return false
	}
}
