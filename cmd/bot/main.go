package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/ananyev/glucobot/internal/config"
	"github.com/ananyev/glucobot/internal/notifier"
	"github.com/ananyev/glucobot/internal/scheduler"
	"github.com/ananyev/glucobot/internal/storage"
	"github.com/ananyev/glucobot/internal/telegram"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found")
	}

	// Load config
	cfg := config.Load()

	// Setup logger
	var logOut io.Writer = os.Stdout
	if cfg.LogPath != "" {
		f, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			slog.Error("open log file", "path", cfg.LogPath, "error", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = io.MultiWriter(os.Stdout, f)
	}
	log := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(log)

	if cfg.BotToken == "" {
		log.Error("BOT_TOKEN is required")
		os.Exit(1)
	}

	// Initialize storage
	store, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Error("init storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	log.Info("storage initialized", "path", cfg.DBPath)

	// Initialize spam flags and notifier; the scheduler fires jobs into the
	// notifier, the telegram bot is its transport.
	flags := notifier.NewFlags()

	var notify *notifier.Notifier
	sched := scheduler.New(func(ctx context.Context, job scheduler.Job) {
		notify.Run(ctx, job)
	}, cfg.SchedulerTick, log)

	// Initialize telegram bot
	bot, err := telegram.New(cfg, store, flags, sched, log)
	if err != nil {
		log.Error("init telegram bot", "error", err)
		os.Exit(1)
	}
	log.Info("telegram bot initialized")

	notify = notifier.New(notifier.Config{
		Duration: cfg.ReminderDuration,
		Interval: cfg.ReminderInterval,
	}, flags, bot, store, telegram.TextReminder, log)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Register the command menu
	if err := bot.RegisterCommands(ctx); err != nil {
		log.Error("register commands", "error", err)
	}

	// Start the scheduler run loop
	go sched.Run(ctx)

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		log.Info("shutting down...")
		cancel()
	}()

	// Start bot polling
	log.Info("starting bot polling...")
	bot.Start(ctx)
}
