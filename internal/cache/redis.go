package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/digitalairlines/config"
	"github.com/Domenick1991/digitalairlines/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"
)

func NewClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
}

// RedisCache caches flight search results per canonical filter. Entries are
// namespaced by a generation counter, so invalidation is a single INCR.
type RedisCache struct {
	client     *redis.Client
	flightsTTL time.Duration
}

func NewRedisCache(client *redis.Client, flightsTTL time.Duration) *RedisCache {
	return &RedisCache{client: client, flightsTTL: flightsTTL}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, flightsGenerationKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// GetFlights returns nil flights without error on a cache miss, along with the
// generation it read. A later SetFlights must pass that generation back.
func (c *RedisCache) GetFlights(ctx context.Context, filter domain.FlightFilter) ([]domain.FlightSummary, int64, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return nil, 0, err
	}
	data, err := c.client.Get(ctx, flightsKey(gen, filter)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, gen, nil
		}
		return nil, gen, err
	}

	flights := make([]domain.FlightSummary, 0)
	if err := msgpack.Unmarshal(data, &flights); err != nil {
		return nil, gen, err
	}
	return flights, gen, nil
}

// SetFlights stores a search result under gen. When the flights were
// invalidated in between, the entry lands in a namespace nobody reads.
func (c *RedisCache) SetFlights(ctx context.Context, gen int64, filter domain.FlightFilter, flights []domain.FlightSummary) error {
	payload, err := msgpack.Marshal(flights)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, flightsKey(gen, filter), payload, c.flightsTTL).Err()
}

func (c *RedisCache) InvalidateFlights(ctx context.Context) error {
	return c.client.Incr(ctx, flightsGenerationKey()).Err()
}

func flightsGenerationKey() string {
	return "cache:flights:gen"
}

func flightsKey(gen int64, filter domain.FlightFilter) string {
	return fmt.Sprintf("cache:flights:%d:%s", gen, filter.Key())
}
