package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Job is a one-shot reminder job: deliver to ChatID starting at At.
type Job struct {
	ChatID     int64
	ReminderID int64  // reminder history row, 0 when recording failed
	Gen        uint64 // spam-flag generation registered at setup time
	At         time.Time
}

// FireFunc runs a fired job. It is invoked in its own goroutine.
type FireFunc func(ctx context.Context, job Job)

// Scheduler dispatches one-shot jobs at their fire instant. A run loop
// evaluates pending jobs every tick, so an instant in the past fires at
// the next tick. Jobs are never deduplicated: scheduling again for the
// same chat yields a second independent job.
type Scheduler struct {
	fire FireFunc
	tick time.Duration
	log  *slog.Logger

	mu      sync.Mutex
	pending []Job
}

// New creates a Scheduler that invokes fire for each due job.
func New(fire FireFunc, tick time.Duration, log *slog.Logger) *Scheduler {
	if tick <= 0 {
		tick = 500 * time.Millisecond
	}
	return &Scheduler{
		fire: fire,
		tick: tick,
		log:  log,
	}
}

// Schedule enqueues a job. The instant may be in the past; the job then
// fires near-immediately.
func (s *Scheduler) Schedule(job Job) {
	s.mu.Lock()
	s.pending = append(s.pending, job)
	s.mu.Unlock()

	s.log.Info("job scheduled",
		"chat_id", job.ChatID,
		"reminder_id", job.ReminderID,
		"at", job.At.Format("15:04:05"),
	)
}

// Pending returns the number of jobs not yet fired.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Run evaluates pending jobs until ctx is canceled.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopping")
			return
		case <-ticker.C:
			for _, job := range s.takeDue(time.Now()) {
				go s.fire(ctx, job)
			}
		}
	}
}

// takeDue removes and returns every job with At <= now.
func (s *Scheduler) takeDue(now time.Time) []Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	var due []Job
	rest := s.pending[:0]
	for _, job := range s.pending {
		if job.At.After(now) {
			rest = append(rest, job)
			continue
		}
		due = append(due, job)
	}
	s.pending = rest
	return due
}
