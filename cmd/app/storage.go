package main

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/digitalairlines/config"
	"github.com/Domenick1991/digitalairlines/internal/repository"
	"github.com/Domenick1991/digitalairlines/internal/repository/memory"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type storage struct {
	tx       repository.Transactor
	users    repository.UserRepository
	flights  repository.FlightRepository
	bookings repository.BookingRepository
	ping     func(ctx context.Context) error
	close    func()
}

func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	if cfg.Database.Driver == "memory" {
		log.Warn("using in-memory store; data is lost on restart")
		store := memory.NewStore()
		return &storage{
			tx:       store,
			users:    store.Users(),
			flights:  store.Flights(),
			bookings: store.Bookings(),
			close:    func() {},
		}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	retry := repository.RetryPolicy{
		Attempts:  cfg.Store.RetryAttempts,
		BaseDelay: time.Duration(cfg.Store.RetryBaseDelayMS) * time.Millisecond,
	}
	return &storage{
		tx:       repository.NewTxManager(pool, retry),
		users:    repository.NewUserRepository(pool, retry),
		flights:  repository.NewFlightRepository(pool, retry),
		bookings: repository.NewBookingRepository(pool, retry),
		ping:     pool.Ping,
		close:    pool.Close,
	}, nil
}
