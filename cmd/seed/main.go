package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/Domenick1991/digitalairlines/config"
	"github.com/Domenick1991/digitalairlines/internal/logger"
	"github.com/Domenick1991/digitalairlines/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

func main() {
	seedsPath := flag.String("file", "seeds/seeds.yaml", "path to the seeds file")
	flag.Parse()

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
		log.Fatalf("seeding requires the postgres driver, got %q", cfg.Database.Driver)
	}

	seeds, err := loadSeeds(*seedsPath)
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	retry := repository.RetryPolicy{
		Attempts:  cfg.Store.RetryAttempts,
		BaseDelay: time.Duration(cfg.Store.RetryBaseDelayMS) * time.Millisecond,
	}
	res, err := apply(ctx, repository.NewUserRepository(pool, retry), repository.NewFlightRepository(pool, retry), seeds)
	if err != nil {
		log.Fatalf("seed: %v", err)
	}
	log.WithFields(log.Fields{
		"users_created":   res.UsersCreated,
		"users_skipped":   res.UsersSkipped,
		"flights_created": res.FlightsCreated,
		"flights_skipped": res.FlightsSkipped,
	}).Info("seeding finished")
}
