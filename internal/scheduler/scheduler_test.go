package scheduler

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSchedulerFiresPastInstantImmediately(t *testing.T) {
	fired := make(chan Job, 1)
	s := New(func(ctx context.Context, job Job) {
		fired <- job
	}, 5*time.Millisecond, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	// An instant in the past fires at the next run-loop evaluation.
	s.Schedule(Job{ChatID: 42, At: time.Now().Add(-time.Hour)})

	select {
	case job := <-fired:
		if job.ChatID != 42 {
			t.Fatalf("fired job for chat %d, want 42", job.ChatID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("past-instant job never fired")
	}

	if got := s.Pending(); got != 0 {
		t.Fatalf("pending = %d after fire, want 0", got)
	}
}

func TestSchedulerFiresAtInstant(t *testing.T) {
	fired := make(chan Job, 1)
	s := New(func(ctx context.Context, job Job) {
		fired <- job
	}, 5*time.Millisecond, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	s.Schedule(Job{ChatID: 1, At: time.Now().Add(150 * time.Millisecond)})

	select {
	case <-fired:
		t.Fatal("job fired before its instant")
	case <-time.After(50 * time.Millisecond):
	}

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("job never fired")
	}
}

func TestSchedulerFiresEachJobOnce(t *testing.T) {
	var count atomic.Int32
	s := New(func(ctx context.Context, job Job) {
		count.Add(1)
	}, 5*time.Millisecond, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	// No dedup: two jobs for the same chat are two independent fires.
	s.Schedule(Job{ChatID: 7, At: time.Now()})
	s.Schedule(Job{ChatID: 7, At: time.Now()})

	deadline := time.Now().Add(2 * time.Second)
	for count.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	time.Sleep(50 * time.Millisecond)

	if got := count.Load(); got != 2 {
		t.Fatalf("fired %d times, want exactly 2", got)
	}
}

func TestSchedulerStopsOnContextCancel(t *testing.T) {
	fired := make(chan Job, 1)
	s := New(func(ctx context.Context, job Job) {
		fired <- job
	}, 5*time.Millisecond, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("run loop did not stop on cancel")
	}
}
