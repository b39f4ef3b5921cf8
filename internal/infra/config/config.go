package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	PracticumToken  string
	TelegramToken   string
	TelegramChatID  int64
	APIEndpoint     string
	DatabaseURL     string // Optional; enables the durable checkpoint when set
	PollInterval    time.Duration
	HTTPTimeout     time.Duration
	RecordSelection string // "newest" or "oldest"
	CheckpointStart string // "zero" (replay backlog) or "now" (skip backlog)
	LogLevel        string
	Environment     string
}

const (
	defaultAPIEndpoint     = "https://practicum.yandex.ru/api/user_api/homework_statuses/"
	defaultPollInterval    = 600 * time.Second
	defaultHTTPTimeout     = 10 * time.Second
	defaultRecordSelection = "newest"
	defaultCheckpointStart = "zero"
)

// Load reads configuration from environment variables and .env file (if present).
// Any of the three required credentials missing is a fatal startup condition:
// the caller must exit before entering the poll loop.
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	var err error

	cfg.PracticumToken = os.Getenv("PRACTICUM_TOKEN")
	if cfg.PracticumToken == "" {
		return nil, fmt.Errorf("PRACTICUM_TOKEN is not set")
	}

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is not set")
	}

	chatIDStr := os.Getenv("TELEGRAM_CHAT_ID")
	if chatIDStr == "" {
		return nil, fmt.Errorf("TELEGRAM_CHAT_ID is not set")
	}
	cfg.TelegramChatID, err = strconv.ParseInt(chatIDStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
	}

	cfg.APIEndpoint = os.Getenv("API_ENDPOINT")
	if cfg.APIEndpoint == "" {
		cfg.APIEndpoint = defaultAPIEndpoint
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL") // Empty means in-memory checkpoint only

	cfg.PollInterval, err = durationFromEnv("POLL_INTERVAL_SECONDS", defaultPollInterval)
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout, err = durationFromEnv("HTTP_TIMEOUT_SECONDS", defaultHTTPTimeout)
	if err != nil {
		return nil, err
	}

	cfg.RecordSelection = strings.ToLower(os.Getenv("RECORD_SELECTION"))
	if cfg.RecordSelection == "" {
		cfg.RecordSelection = defaultRecordSelection
	}
	if cfg.RecordSelection != "newest" && cfg.RecordSelection != "oldest" {
		return nil, fmt.Errorf("invalid RECORD_SELECTION %q: must be \"newest\" or \"oldest\"", cfg.RecordSelection)
	}

	cfg.CheckpointStart = strings.ToLower(os.Getenv("CHECKPOINT_START"))
	if cfg.CheckpointStart == "" {
		cfg.CheckpointStart = defaultCheckpointStart
	}
	if cfg.CheckpointStart != "zero" && cfg.CheckpointStart != "now" {
		return nil, fmt.Errorf("invalid CHECKPOINT_START %q: must be \"zero\" or \"now\"", cfg.CheckpointStart)
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info" // Default log level
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	return cfg, nil
}

func durationFromEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if seconds <= 0 {
		return 0, fmt.Errorf("%s must be > 0, got %d", key, seconds)
	}
	return time.Duration(seconds) * time.Second, nil
}
