package notifier

import (
	"context"
	"log/slog"
	"time"

	"github.com/ananyev/glucobot/internal/scheduler"
	"github.com/ananyev/glucobot/internal/storage"
)

// Sender is the minimal transport contract the notifier needs: a
// best-effort text send to one chat.
type Sender interface {
	SendReminder(ctx context.Context, chatID int64, text string) error
}

// History records the fate of a reminder. May be nil.
type History interface {
	Finish(id int64, status string) error
}

// Config bounds one notification loop. Both values are process-wide,
// fixed at construction.
type Config struct {
	Duration time.Duration // total notification window
	Interval time.Duration // gap between repeated sends
}

// Notifier runs the repeated-delivery loop for fired reminder jobs.
type Notifier struct {
	cfg     Config
	flags   *Flags
	sender  Sender
	history History
	text    string
	log     *slog.Logger
}

// New creates a Notifier. Zero config fields fall back to 30s/1s.
func New(cfg Config, flags *Flags, sender Sender, history History, text string, log *slog.Logger) *Notifier {
	if cfg.Duration <= 0 {
		cfg.Duration = 30 * time.Second
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Second
	}
	return &Notifier{
		cfg:     cfg,
		flags:   flags,
		sender:  sender,
		history: history,
		text:    text,
		log:     log,
	}
}

// Flags exposes the registry so the stop handler can reach it.
func (n *Notifier) Flags() *Flags {
	return n.flags
}

// Run delivers reminders for one fired job until the chat's spam flag is
// cleared or the notification window elapses. Send failures are logged
// and swallowed; the loop keeps going. Exactly one Run per fired job.
func (n *Notifier) Run(ctx context.Context, job scheduler.Job) {
	n.log.Info("notification loop started", "chat_id", job.ChatID, "reminder_id", job.ReminderID)

	stopped := false
	start := time.Now()

	for time.Since(start) < n.cfg.Duration {
		if !n.flags.IsActive(job.ChatID, job.Gen) {
			n.log.Info("notification loop stopped by flag", "chat_id", job.ChatID)
			stopped = true
			break
		}

		if err := n.sender.SendReminder(ctx, job.ChatID, n.text); err != nil {
			n.log.Error("send reminder", "chat_id", job.ChatID, "error", err)
		}

		select {
		case <-ctx.Done():
			stopped = true
		case <-time.After(n.cfg.Interval):
		}
		if stopped {
			break
		}
	}

	n.flags.Release(job.ChatID, job.Gen)
	n.finish(job, stopped)

	n.log.Info("notification loop finished",
		"chat_id", job.ChatID,
		"reminder_id", job.ReminderID,
		"stopped", stopped,
	)
}

func (n *Notifier) finish(job scheduler.Job, stopped bool) {
	if n.history == nil || job.ReminderID == 0 {
		return
	}
	status := storage.StatusDone
	if stopped {
		status = storage.StatusStopped
	}
	if err := n.history.Finish(job.ReminderID, status); err != nil {
		n.log.Error("finish reminder history", "reminder_id", job.ReminderID, "error", err)
	}
}
