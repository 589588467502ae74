package typist

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeTyper records typed numbers and can be told to fail specific ones.
type fakeTyper struct {
	mu      sync.Mutex
	typed   []string
	failOn  map[string]int // number -> remaining failures
	blockCh chan struct{}  // when set, Type blocks until closed
}

func (f *fakeTyper) Type(ctx context.Context, number string) error {
	if f.blockCh != nil {
		<-f.blockCh
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOn[number] > 0 {
		f.failOn[number]--
		return errors.New("window lost focus")
	}
	f.typed = append(f.typed, number)
	return nil
}

func (f *fakeTyper) typedNumbers() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.typed...)
}

// immediate disables both delays so tests run fast.
var immediate = Options{}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestQueue_TypesInOrder(t *testing.T) {
	ft := &fakeTyper{}
	q := NewQueue(context.Background(), ft, immediate)

	q.Enqueue("101")
	q.Enqueue("202")
	q.Enqueue("303")

	waitFor(t, func() bool { return q.Size() == 0 && !q.Processing() })

	got := ft.typedNumbers()
	want := []string{"101", "202", "303"}
	if len(got) != len(want) {
		t.Fatalf("typed %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("typed[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestQueue_EnqueueReportsSize(t *testing.T) {
	ft := &fakeTyper{blockCh: make(chan struct{})}
	q := NewQueue(context.Background(), ft, immediate)

	if size := q.Enqueue("101"); size != 1 {
		t.Errorf("first Enqueue size = %d, want 1", size)
	}
	// The worker pops 101 and blocks typing it, so later numbers pile up
	waitFor(t, func() bool { return q.Size() == 0 && q.Processing() })
	if size := q.Enqueue("202"); size != 1 {
		t.Errorf("second Enqueue size = %d, want 1", size)
	}
	if size := q.Enqueue("303"); size != 2 {
		t.Errorf("third Enqueue size = %d, want 2", size)
	}

	close(ft.blockCh)
	waitFor(t, func() bool { return q.Size() == 0 && !q.Processing() })
}

func TestQueue_ProcessingDuringRun(t *testing.T) {
	ft := &fakeTyper{blockCh: make(chan struct{})}
	q := NewQueue(context.Background(), ft, immediate)

	q.Enqueue("101")
	waitFor(t, func() bool { return q.Processing() })

	close(ft.blockCh)
	waitFor(t, func() bool { return !q.Processing() })
}

func TestQueue_FailureRequeuesAtFrontAndParks(t *testing.T) {
	ft := &fakeTyper{failOn: map[string]int{"202": 1}}
	// Small focus delay so all three numbers are queued before typing starts
	q := NewQueue(context.Background(), ft, Options{FocusDelay: 50 * time.Millisecond})

	q.Enqueue("101")
	q.Enqueue("202")
	q.Enqueue("303")

	// Worker types 101, fails on 202, parks with 202 back at the front
	waitFor(t, func() bool { return !q.Processing() && q.Size() == 2 })

	got := ft.typedNumbers()
	if len(got) != 1 || got[0] != "101" {
		t.Fatalf("typed %v before failure, want [101]", got)
	}

	// Next enqueue restarts the worker; the failed number goes first
	q.Enqueue("404")
	waitFor(t, func() bool { return q.Size() == 0 && !q.Processing() })

	got = ft.typedNumbers()
	want := []string{"101", "202", "303", "404"}
	if len(got) != len(want) {
		t.Fatalf("typed %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("typed[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestQueue_CancelStopsWorker(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ft := &fakeTyper{}
	q := NewQueue(ctx, ft, Options{FocusDelay: time.Hour})

	q.Enqueue("101")
	waitFor(t, func() bool { return q.Processing() })

	cancel()
	waitFor(t, func() bool { return !q.Processing() })

	if typed := ft.typedNumbers(); len(typed) != 0 {
		t.Errorf("typed %v after cancel during focus delay, want none", typed)
	}
}

func TestExecTyper_Defaults(t *testing.T) {
	et := &ExecTyper{}
	if got := et.command(); got != "xdotool" {
		t.Errorf("command() = %q, want xdotool", got)
	}
	if got := et.keyDelay(); got != 50 {
		t.Errorf("keyDelay() = %d, want 50", got)
	}

	et = &ExecTyper{Command: "ydotool", KeyDelayMs: 10}
	if got := et.command(); got != "ydotool" {
		t.Errorf("command() = %q, want ydotool", got)
	}
	if got := et.keyDelay(); got != 10 {
		t.Errorf("keyDelay() = %d, want 10", got)
	}
}
