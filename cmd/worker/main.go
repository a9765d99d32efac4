// Command worker applies the learned rules to every batch announced on the
// batch-imported queue.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"finboard/internal/config"
	"finboard/internal/database"
	"finboard/internal/events"
	"finboard/internal/logger"
	"finboard/internal/services"
	"finboard/internal/taxonomy"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Worker error: %v", err)
	}
}

func run() error {
	log := logger.Named("worker")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.AMQPURL == "" {
		return errors.New("AMQP_URL is required")
	}

	dbManager, err := database.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dbManager.Close()

	amqpClient, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		return fmt.Errorf("failed to connect to AMQP: %w", err)
	}
	defer amqpClient.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler := events.ApplyRulesOnImport(services.NewRuleService(dbManager.DB(), taxonomy.Default))

	log.Infow("Worker started", "queue", cfg.AMQPQueue)
	if err := amqpClient.ConsumeBatchImported(ctx, handler); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("Worker stopped")
	return nil
}
