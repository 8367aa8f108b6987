package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"golang.org/x/time/rate"

	"github.com/ananyev/glucobot/internal/config"
	"github.com/ananyev/glucobot/internal/domain"
	"github.com/ananyev/glucobot/internal/notifier"
	"github.com/ananyev/glucobot/internal/scheduler"
	"github.com/ananyev/glucobot/internal/storage"
)

// Bot wraps the telegram bot with handlers. It is the thin dispatcher over
// the transport: updates become domain events, outcomes become sends and
// scheduler/flag calls.
type Bot struct {
	bot       *bot.Bot
	cfg       *config.Config
	storage   *storage.Storage
	states    *StateManager
	flags     *notifier.Flags
	scheduler *scheduler.Scheduler
	limiter   *rate.Limiter
	log       *slog.Logger
}

// New creates a new telegram bot
func New(cfg *config.Config, store *storage.Storage, flags *notifier.Flags, sched *scheduler.Scheduler, log *slog.Logger) (*Bot, error) {
	b := &Bot{
		cfg:       cfg,
		storage:   store,
		states:    NewStateManager(),
		flags:     flags,
		scheduler: sched,
		limiter:   rate.NewLimiter(rate.Limit(25), 5),
		log:       log,
	}

	opts := []bot.Option{
		bot.WithDefaultHandler(b.recovered(b.defaultHandler)),
	}

	tgBot, err := bot.New(cfg.BotToken, opts...)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	b.bot = tgBot

	// Register command handlers
	tgBot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, b.recovered(b.startHandler))
	tgBot.RegisterHandler(bot.HandlerTypeMessageText, "/start ", bot.MatchTypePrefix, b.recovered(b.startHandler))
	tgBot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, b.recovered(b.helpHandler))
	tgBot.RegisterHandler(bot.HandlerTypeMessageText, "/stats", bot.MatchTypeExact, b.recovered(b.statsHandler))

	return b, nil
}

// Start starts the bot polling
func (b *Bot) Start(ctx context.Context) {
	b.bot.Start(ctx)
}

// RegisterCommands publishes the bot's command menu
func (b *Bot) RegisterCommands(ctx context.Context) error {
	_, err := b.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: []models.BotCommand{
			{Command: "start", Description: "Запускаем Бота"},
			{Command: "help", Description: "Помощь в работе с ботом"},
		},
	})
	return err
}

// recovered isolates one inbound update: a panicking handler is logged and
// dropped instead of taking the process down.
func (b *Bot) recovered(h bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, tgBot *bot.Bot, update *models.Update) {
		defer func() {
			if r := recover(); r != nil {
				b.log.Error("handler panic", "panic", r, "stack", string(debug.Stack()))
			}
		}()
		h(ctx, tgBot, update)
	}
}

// --- Handlers ---

func (b *Bot) startHandler(ctx context.Context, tgBot *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	b.log.Info("user started", "chat_id", chatID)
	b.apply(ctx, chatID, domain.Event{Kind: domain.EventStart})
}

func (b *Bot) helpHandler(ctx context.Context, tgBot *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	b.sendMessage(ctx, update.Message.Chat.ID, textHelp, nil)
}

func (b *Bot) statsHandler(ctx context.Context, tgBot *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	st, err := b.storage.Counts(chatID)
	if err != nil {
		b.log.Error("reminder stats", "chat_id", chatID, "error", err)
		return
	}

	b.sendMessage(ctx, chatID, fmt.Sprintf(textStats, st.Total, st.Done, st.Stopped), nil)
}

func (b *Bot) defaultHandler(ctx context.Context, tgBot *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	chatID := update.Message.Chat.ID
	text := strings.TrimSpace(update.Message.Text)

	switch text {
	case ButtonStart:
		b.log.Info("user started", "chat_id", chatID)
		b.apply(ctx, chatID, domain.Event{Kind: domain.EventStart})
	case ButtonStop:
		b.log.Info("user stopped", "chat_id", chatID)
		b.apply(ctx, chatID, domain.Event{Kind: domain.EventStop})
	default:
		b.apply(ctx, chatID, domain.Event{Kind: domain.EventText, Text: text})
	}
}

// apply advances the chat's state machine by one event and executes the
// resulting side effects.
func (b *Bot) apply(ctx context.Context, chatID int64, ev domain.Event) {
	sess := b.states.Get(chatID)
	out := domain.Transition(sess, ev, time.Now())

	if out.Session == (domain.Session{}) {
		b.states.Clear(chatID)
	} else {
		b.states.Set(chatID, out.Session)
	}

	if out.StopSpam {
		b.flags.Deactivate(chatID)
		if err := b.storage.MarkStopped(chatID); err != nil {
			b.log.Error("mark reminders stopped", "chat_id", chatID, "error", err)
		}
	}

	if out.Schedule {
		b.scheduleReminder(chatID, sess.MealTime, out.RemindAt)
	}

	if text, keyboard, ok := render(out); ok {
		b.sendMessage(ctx, chatID, text, keyboard)
	}
}

// scheduleReminder registers a fresh spam flag for the chat, records the
// reminder in history and enqueues the one-shot job. History failures are
// logged and do not block the reminder.
func (b *Bot) scheduleReminder(chatID int64, mt domain.MealTime, remindAt time.Time) {
	gen := b.flags.Activate(chatID)

	mealTime := fmt.Sprintf("%02d:%02d", mt.Hour, mt.Minute)
	id, err := b.storage.Add(chatID, mealTime, remindAt)
	if err != nil {
		b.log.Error("record reminder", "chat_id", chatID, "error", err)
		id = 0
	}

	b.scheduler.Schedule(scheduler.Job{
		ChatID:     chatID,
		ReminderID: id,
		Gen:        gen,
		At:         remindAt,
	})

	b.log.Info("reminder set",
		"chat_id", chatID,
		"meal_time", mealTime,
		"remind_at", remindAt.Format("15:04"),
	)
}

// render maps an outcome to the reply text. The greeting re-sends the main
// keyboard; every other reply leaves the persistent keyboard as is.
func render(out domain.Outcome) (string, models.ReplyMarkup, bool) {
	switch out.Prompt {
	case domain.PromptAskMealTime:
		return textGreeting, MainKeyboard(), true
	case domain.PromptAskDelay:
		return textAskDelay, nil, true
	case domain.PromptBadMealTime:
		return textBadMealTime, nil, true
	case domain.PromptBadDelay:
		return textBadDelay, nil, true
	case domain.PromptConfirmed:
		return fmt.Sprintf(textConfirmed, out.RemindAt.Format("15:04")), nil, true
	case domain.PromptStopped:
		return textStopped, nil, true
	default:
		return "", nil, false
	}
}

// --- Helpers ---

func (b *Bot) sendMessage(ctx context.Context, chatID int64, text string, keyboard models.ReplyMarkup) {
	if err := b.limiter.Wait(ctx); err != nil {
		return
	}

	params := &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}

	_, err := b.bot.SendMessage(ctx, params)
	if err != nil {
		b.log.Error("send message", "error", err)
	}
}

// SendReminder sends one reminder to a chat. It implements the notifier's
// Sender contract: the error is reported, never thrown past the loop.
func (b *Bot) SendReminder(ctx context.Context, chatID int64, text string) error {
	if err := b.limiter.Wait(ctx); err != nil {
		return err
	}

	_, err := b.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	return err
}
