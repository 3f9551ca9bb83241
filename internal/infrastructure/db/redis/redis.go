// Package redis owns the connection to the cache backing content detail
// reads. The cache is an accelerator, not a store of record: the service
// works without it, so Connect is the only place a Redis failure is fatal.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	pingTimeout = 5 * time.Second

	// One retry is enough for the read-through cache; a flaky Redis should
	// degrade to repository reads, not stall request handling.
	maxRetries = 1
)

// Config captures the cache connection settings. Password is empty for an
// unauthenticated local instance.
type Config struct {
	Addr     string
	Password string
	DB       int
	Timeout  time.Duration
}

// Connect dials the cache and verifies it is reachable with a ping. The
// returned client is shared by all cache adapters for the process lifetime.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = pingTimeout
	}

	client := redis.NewClient(clientOptions(cfg))

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}

func clientOptions(cfg Config) *redis.Options {
	return &redis.Options{
		Addr:       cfg.Addr,
		Password:   cfg.Password,
		DB:         cfg.DB,
		MaxRetries: maxRetries,
	}
}
