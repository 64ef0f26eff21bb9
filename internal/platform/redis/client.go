// Copyright (c) 2026 Vizza. All rights reserved.
// Author: daalagelerua

/*
Package redis provides the client behind the reference data cache.

Vizza keeps the country directory and the aggregate statistics in Redis in
front of PostgreSQL. Those entries only change when the seed command runs, and
every one carries a TTL, so the cache is never the source of truth. A slow
Redis must not slow a search down: timeouts are short and a miss falls back to
PostgreSQL.
*/
package redis

import (
	stdctx "context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/constants"
)

const (
	// Cached values are small JSON documents, so commands either answer fast
	// or the lookup goes to PostgreSQL.
	dialTimeout  = 2 * time.Second
	readTimeout  = 500 * time.Millisecond
	writeTimeout = 500 * time.Millisecond
	pingTimeout  = 2 * time.Second

	// Reads dominate and each request issues at most two cache commands.
	poolSize     = 10
	minIdleConns = 2
	maxIdleConns = 5
)

// Options parses redisURL and applies the cache settings. It does not connect.
func Options(redisURL string) (*redis.Options, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}

	options.ClientName = constants.AppName
	options.PoolSize = poolSize
	options.MinIdleConns = minIdleConns
	options.MaxIdleConns = maxIdleConns
	options.DialTimeout = dialTimeout
	options.ReadTimeout = readTimeout
	options.WriteTimeout = writeTimeout
	// Request deadlines win over the socket timeouts above.
	options.ContextTimeoutEnabled = true

	return options, nil
}

// NewClient connects to redisURL and pings it.
//
// # Parameters
//   - context: Context for the initial ping.
//   - redisURL: Redis connection URL.
//   - logger: Structured logger for connection events.
func NewClient(context stdctx.Context, redisURL string, logger *slog.Logger) (*redis.Client, error) {
	options, err := Options(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(options)

	if err := Ping(context, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("redis_client_connected",
		slog.String("addr", options.Addr),
		slog.Int("db", options.DB),
		slog.Int("pool_size", options.PoolSize),
	)

	return client, nil
}

// Ping verifies that Redis answers. It backs the readiness check.
func Ping(context stdctx.Context, client *redis.Client) error {
	pingCtx, cancel := stdctx.WithTimeout(context, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis: ping failed: %w", err)
	}

	return nil
}
