package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homework_status_bot/internal/app"
	"homework_status_bot/internal/domain/checkpoint"
	"homework_status_bot/internal/infra/config"
	idb "homework_status_bot/internal/infra/database"
	"homework_status_bot/internal/infra/logger"
	"homework_status_bot/internal/infra/practicum"
	"homework_status_bot/internal/infra/scheduler"
	itelegram "homework_status_bot/internal/infra/telegram"

	"gopkg.in/telebot.v3"
)

func main() {
	fmt.Println("Homework Status Bot starting...")

	cfg, err := config.Load()
	if err != nil {
		// Missing required credential: exit before the loop ever starts.
		logger.Log.Fatalf("FATAL: Could not load application configuration: %v", err)
	}

	logger.Init(cfg)
	log := logger.Get()
	log.Infof("Configuration loaded. LogLevel: %s, Environment: %s, PollInterval: %s, RecordSelection: %s",
		cfg.LogLevel, cfg.Environment, cfg.PollInterval, cfg.RecordSelection)

	// Initialize Telegram Bot. telebot verifies the token on construction, so
	// an invalid notifier credential is also a fatal startup condition.
	pref := telebot.Settings{
		Token: cfg.TelegramToken,
		OnError: func(err error, c telebot.Context) {
			log.WithError(err).Error("telebot error")
		},
	}
	bot, err := telebot.NewBot(pref)
	if err != nil {
		log.Fatalf("FATAL: Could not create Telegram bot: %v", err)
	}
	telegramClient := itelegram.NewTelebotAdapter(bot)
	log.Info("Telegram client initialized.")

	// Initialize the checkpoint store. "zero" replays the whole backlog on a
	// fresh start, "now" skips everything observed before this process.
	var initial int64
	if cfg.CheckpointStart == "now" {
		initial = time.Now().Unix()
	}
	store := checkpoint.NewStore(initial)

	// Optional durable checkpoint.
	var checkpointRepo checkpoint.Repository
	if cfg.DatabaseURL != "" {
		db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("FATAL: Could not connect to database: %v", err)
		}
		defer db.Close()
		log.Info("Database connection established successfully.")

		repo := idb.NewPostgresCheckpointRepository(db)
		persisted, err := repo.Load(context.Background())
		switch {
		case err == nil:
			if store.Advance(persisted) {
				log.Infof("Resuming from persisted checkpoint %d", persisted)
			}
		case errors.Is(err, idb.ErrCheckpointNotFound):
			log.Infof("No persisted checkpoint found, starting from %d", store.Current())
		default:
			log.Fatalf("FATAL: Could not load persisted checkpoint: %v", err)
		}
		checkpointRepo = repo
	} else {
		log.Info("DATABASE_URL not set, checkpoint is held in memory only.")
	}

	apiClient := practicum.NewClient(cfg.APIEndpoint, cfg.PracticumToken, cfg.HTTPTimeout)
	notifier := app.NewDedupNotifier(telegramClient, cfg.TelegramChatID, log.WithField("component", "notifier"))
	pollService := app.NewPollService(
		apiClient,
		notifier,
		store,
		checkpointRepo,
		app.RecordSelection(cfg.RecordSelection),
		log.WithField("component", "poll_service"),
	)

	pollScheduler := scheduler.NewPollScheduler(pollService, log.WithField("component", "scheduler"), cfg.PollInterval)
	if err := pollScheduler.Start(); err != nil {
		log.Fatalf("FATAL: Could not start poll scheduler: %v", err)
	}
	log.Info("The bot has started.")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit // Block until a signal is received

	log.Info("Shutting down application...")
	pollScheduler.Stop()
	log.Info("The bot has completed its work.")
}
