package storage

import (
	"database/sql"
	"errors"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var ErrNotFound = errors.New("not found")

// Storage handles all database operations
type Storage struct {
	db *sql.DB
}

// New creates a new Storage instance and initializes the database
func New(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}

	s := &Storage{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) init() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS reminders (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			chat_id INTEGER NOT NULL,
			meal_time TEXT NOT NULL,
			remind_at INTEGER NOT NULL,
			status TEXT NOT NULL DEFAULT 'scheduled',
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_reminders_chat_id ON reminders(chat_id)`,
		`CREATE INDEX IF NOT EXISTS idx_reminders_status ON reminders(status)`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}

	return nil
}

// Add records a newly scheduled reminder and returns its id
func (s *Storage) Add(chatID int64, mealTime string, remindAt time.Time) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO reminders (chat_id, meal_time, remind_at, status, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		chatID, mealTime, remindAt.Unix(), StatusScheduled, time.Now().Unix(),
	)
	if err != nil {
		return 0, err
	}

	return result.LastInsertId()
}

// Get returns a reminder by id
func (s *Storage) Get(id int64) (*Reminder, error) {
	var r Reminder
	var remindAt, createdAt int64

	err := s.db.QueryRow(
		`SELECT id, chat_id, meal_time, remind_at, status, created_at
		 FROM reminders WHERE id = ?`,
		id,
	).Scan(&r.ID, &r.ChatID, &r.MealTime, &remindAt, &r.Status, &createdAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	r.RemindAt = time.Unix(remindAt, 0)
	r.CreatedAt = time.Unix(createdAt, 0)
	return &r, nil
}

// Finish sets the final status of one reminder
func (s *Storage) Finish(id int64, status string) error {
	_, err := s.db.Exec(`UPDATE reminders SET status = ? WHERE id = ?`, status, id)
	return err
}

// MarkStopped marks every still-scheduled reminder of a chat as stopped
func (s *Storage) MarkStopped(chatID int64) error {
	_, err := s.db.Exec(
		`UPDATE reminders SET status = ? WHERE chat_id = ? AND status = ?`,
		StatusStopped, chatID, StatusScheduled,
	)
	return err
}

// Counts returns the reminder history totals for one chat
func (s *Storage) Counts(chatID int64) (Stats, error) {
	rows, err := s.db.Query(
		`SELECT status, COUNT(*) FROM reminders WHERE chat_id = ? GROUP BY status`,
		chatID,
	)
	if err != nil {
		return Stats{}, err
	}
	defer rows.Close()

	var st Stats
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return Stats{}, err
		}

		st.Total += count
		switch status {
		case StatusDone:
			st.Done += count
		case StatusStopped:
			st.Stopped += count
		}
	}

	return st, rows.Err()
}
