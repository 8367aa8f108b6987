package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Telegram
	BotToken string

	// Reminder loop: total notification window and gap between repeated
	// sends. Fixed at process start, not adjustable per user.
	ReminderDuration time.Duration
	ReminderInterval time.Duration

	// Scheduler run-loop tick
	SchedulerTick time.Duration

	// Database
	DBPath string

	// Logging
	LogPath string
}

func Load() *Config {
	return &Config{
		// Telegram
		BotToken: getEnv("BOT_TOKEN", ""),

		// Reminder loop
		ReminderDuration: time.Duration(getEnvInt("REMINDER_DURATION", 30)) * time.Second,
		ReminderInterval: time.Duration(getEnvInt("REMINDER_INTERVAL", 1)) * time.Second,

		// Scheduler
		SchedulerTick: time.Duration(getEnvInt("SCHEDULER_TICK_MS", 500)) * time.Millisecond,

		// Database
		DBPath: getEnv("DB_PATH", "./glucobot.db"),

		// Logging
		LogPath: getEnv("LOG_PATH", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}
