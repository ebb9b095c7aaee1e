package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/digitalairlines/config"
	"github.com/Domenick1991/digitalairlines/internal/kafka"
	"github.com/Domenick1991/digitalairlines/internal/logger"
	"github.com/Domenick1991/digitalairlines/internal/repository"
	"github.com/Domenick1991/digitalairlines/internal/worker"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := logger.Setup(cfg.Log); err != nil {
		log.Fatalf("setup logger: %v", err)
	}
	if cfg.Database.Driver != "postgres" {
		log.Fatalf("worker requires the postgres driver, got %q", cfg.Database.Driver)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	retry := repository.RetryPolicy{
		Attempts:  cfg.Store.RetryAttempts,
		BaseDelay: time.Duration(cfg.Store.RetryBaseDelayMS) * time.Millisecond,
	}
	audit := worker.NewAuditHandler(repository.NewAuditRepository(pool, retry))
	reconciler := worker.NewReconciler(repository.NewInventoryRepository(pool, retry), cfg.Worker.RepairDrift)

	if len(cfg.Kafka.Brokers) > 0 {
		consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.BookingEventsTopic)
		defer consumer.Close()

		go func() {
			if err := consumer.Consume(ctx, audit.Handle); err != nil {
				log.WithError(err).Error("consumer stopped")
				stop()
			}
		}()
	} else {
		log.Warn("no kafka brokers configured; event auditing disabled")
	}

	interval := time.Duration(cfg.Worker.ReconcileIntervalMinutes) * time.Minute
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := reconciler.Run(ctx); err != nil {
			log.WithError(err).Error("inventory reconciliation failed")
		}
		select {
		case <-ticker.C:
		case <-ctx.Done():
			log.Info("worker shutting down")
			return
		}
	}
}
