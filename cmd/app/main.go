package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/digitalairlines/api"
	"github.com/Domenick1991/digitalairlines/config"
	"github.com/Domenick1991/digitalairlines/internal/auth"
	"github.com/Domenick1991/digitalairlines/internal/bootstrap"
	"github.com/Domenick1991/digitalairlines/internal/cache"
	"github.com/Domenick1991/digitalairlines/internal/identity"
	"github.com/Domenick1991/digitalairlines/internal/kafka"
	"github.com/Domenick1991/digitalairlines/internal/logger"
	"github.com/Domenick1991/digitalairlines/internal/service/accounts"
	"github.com/Domenick1991/digitalairlines/internal/service/booking"
	"github.com/Domenick1991/digitalairlines/internal/service/flights"
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatalf("open storage: %v", err)
	}
	defer store.close()

	health := map[string]api.HealthCheck{}
	if store.ping != nil {
		health[cfg.Database.Driver] = store.ping
	}

	var (
		flightOpts    []flights.Option
		bookingOpts   []booking.BookingServiceOption
		sessionStore  accounts.SessionStore
		sessionReader api.SessionReader
	)

	redisClient := cache.NewClient(cfg.Redis)
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.WithError(err).Warn("redis unavailable; flight cache and cookie sessions disabled")
	} else {
		sessions := cache.NewSessionStore(redisClient, cfg.Session.TTL())
		sessionStore, sessionReader = sessions, sessions
		flightOpts = append(flightOpts, flights.WithCache(
			cache.NewRedisCache(redisClient, time.Duration(cfg.Booking.FlightsCacheTTL)*time.Second),
		))
		health["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}

	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
		if err := producer.CheckConnection(ctx); err != nil {
			log.WithError(err).Warn("kafka brokers unreachable; events will be dropped until they recover")
		}
		events := producer.Retrying(cfg.Kafka.PublishRetries)
		flightOpts = append(flightOpts, flights.WithEvents(events, cfg.Kafka.BookingEventsTopic))
		bookingOpts = append(bookingOpts, booking.WithEvents(events, cfg.Kafka.BookingEventsTopic))
	}

	tokens := auth.NewTokenIssuer(cfg.Session.TokenSecret, cfg.Session.TokenTTL())
	resolver := identity.NewResolver(store.users)

	flightService := flights.NewFlightService(store.flights, store.bookings, flightOpts...)
	bookingService := booking.NewBookingService(store.tx, store.bookings, store.flights, bookingOpts...)
	accountService := accounts.NewAccountService(store.users, sessionStore, tokens)

	router := api.NewRouter(api.RouterConfig{
		Accounts:      api.NewAccountHandler(accountService, cfg.Session.CookieName, cfg.Session.TTL()),
		Flights:       api.NewFlightHandler(flightService),
		Bookings:      api.NewBookingHandler(bookingService),
		Authenticator: api.NewAuthenticator(resolver, sessionReader, tokens, cfg.Session.CookieName),
		SwaggerDir:    cfg.HTTP.SwaggerDir,
		Health:        health,
	})

	if err := bootstrap.Run(ctx, cfg, router, bootstrap.Services{
		Flights:  flightService,
		Bookings: bookingService,
		Tokens:   tokens,
		Resolver: resolver,
	}); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
