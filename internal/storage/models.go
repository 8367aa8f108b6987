package storage

import "time"

// Reminder statuses.
const (
	StatusScheduled = "scheduled"
	StatusDone      = "done"
	StatusStopped   = "stopped"
)

// Reminder is one history row: a scheduled blood-draw reminder. History is
// audit-only; it is never read back to restore live sessions or loops.
type Reminder struct {
	ID        int64
	ChatID    int64
	MealTime  string // HH:MM as entered by the user
	RemindAt  time.Time
	Status    string
	CreatedAt time.Time
}

// Stats aggregates one chat's reminder history for /stats.
type Stats struct {
	Total   int
	Done    int
	Stopped int
}
