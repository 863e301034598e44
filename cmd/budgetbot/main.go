package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"budgetbot/internal/amqp"
	"budgetbot/internal/bot"
	"budgetbot/internal/config"
	applog "budgetbot/internal/log"
	"budgetbot/internal/services"
	"budgetbot/internal/storage"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	// .env is optional, used for local development.
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		return err
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository",
			"error", err, "path", cfg.SQLiteDBPath)
		return err
	}

	// Event publishing is optional: without AMQP the ledger still works,
	// entries just produce no events.
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("AMQP unavailable, continuing without event publishing", "error", err)
			amqpClient = nil
		}
	}

	ledger := services.NewLedgerService(repo, amqpClient)
	defer func() {
		if err := ledger.Close(); err != nil {
			logger.Error("Failed to close ledger service", "error", err)
		}
	}()

	b, err := bot.New(cfg.BotToken, ledger, cfg.ChatRatePerMinute, cfg.PollTimeout)
	if err != nil {
		logger.Error("Failed to initialize bot", "error", err)
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return b.Run(ctx)
	})

	logger.Info("budgetbot started",
		"db", cfg.SQLiteDBPath,
		"amqp", cfg.AMQPURL != "",
		"poll_timeout", cfg.PollTimeout)

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Bot stopped with error", "error", err)
		return err
	}

	logger.Info("Shutdown complete")
	return nil
}
