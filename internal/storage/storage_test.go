package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("init storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAddAndGet(t *testing.T) {
	s := newTestStorage(t)

	remindAt := time.Date(2025, time.May, 5, 10, 0, 0, 0, time.UTC)
	id, err := s.Add(42, "09:15", remindAt)
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	r, err := s.Get(id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if r.ChatID != 42 || r.MealTime != "09:15" {
		t.Fatalf("got %+v", r)
	}
	if r.Status != StatusScheduled {
		t.Fatalf("status = %q, want scheduled", r.Status)
	}
	if r.RemindAt.Unix() != remindAt.Unix() {
		t.Fatalf("remind_at = %v, want %v", r.RemindAt, remindAt)
	}
}

func TestGetNotFound(t *testing.T) {
	s := newTestStorage(t)
	if _, err := s.Get(12345); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestFinish(t *testing.T) {
	s := newTestStorage(t)

	id, err := s.Add(1, "12:00", time.Now())
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Finish(id, StatusDone); err != nil {
		t.Fatalf("finish: %v", err)
	}

	r, err := s.Get(id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if r.Status != StatusDone {
		t.Fatalf("status = %q, want done", r.Status)
	}
}

func TestMarkStoppedOnlyTouchesScheduled(t *testing.T) {
	s := newTestStorage(t)

	doneID, _ := s.Add(1, "08:00", time.Now())
	s.Finish(doneID, StatusDone)
	schedID, _ := s.Add(1, "09:00", time.Now())
	otherID, _ := s.Add(2, "09:00", time.Now())

	if err := s.MarkStopped(1); err != nil {
		t.Fatalf("mark stopped: %v", err)
	}

	r, _ := s.Get(schedID)
	if r.Status != StatusStopped {
		t.Fatalf("scheduled row status = %q, want stopped", r.Status)
	}
	r, _ = s.Get(doneID)
	if r.Status != StatusDone {
		t.Fatalf("done row status = %q, must stay done", r.Status)
	}
	r, _ = s.Get(otherID)
	if r.Status != StatusScheduled {
		t.Fatalf("other chat's row status = %q, must stay scheduled", r.Status)
	}
}

func TestCounts(t *testing.T) {
	s := newTestStorage(t)

	a, _ := s.Add(1, "08:00", time.Now())
	b, _ := s.Add(1, "09:00", time.Now())
	s.Add(1, "10:00", time.Now())
	s.Add(2, "11:00", time.Now())

	s.Finish(a, StatusDone)
	s.Finish(b, StatusStopped)

	st, err := s.Counts(1)
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if st.Total != 3 || st.Done != 1 || st.Stopped != 1 {
		t.Fatalf("stats = %+v, want total 3 done 1 stopped 1", st)
	}

	empty, err := s.Counts(99)
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if empty.Total != 0 {
		t.Fatalf("stats for unknown chat = %+v", empty)
	}
}
