// Copyright (c) 2026 Vizza. All rights reserved.
// Author: daalagelerua

// Package postgres provides the managed PostgreSQL connection pool shared by
// the Vizza repositories.
//
// Two processes open a pool. The API serves short indexed lookups (one
// country, one journey, one user's favorites) and needs many cheap
// connections with a tight statement deadline. The seed command upserts the
// whole reference dataset over a couple of connections and needs a longer
// deadline. [Profile] captures that difference.
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/constants"
)

// Profile sizes a pool for one process.
type Profile struct {
	// Name is reported to PostgreSQL as application_name.
	Name string
	// MaxConns bounds concurrent queries.
	MaxConns int32
	// MinConns stays open while idle.
	MinConns int32
	// StatementTimeout is enforced server side on every connection.
	StatementTimeout time.Duration
}

// APIProfile serves request traffic. A search runs up to four short lookups
// and each is cut by the request deadline.
func APIProfile() Profile {
	return Profile{
		Name:             constants.AppName,
		MaxConns:         15,
		MinConns:         2,
		StatementTimeout: constants.GlobalRequestTimeout,
	}
}

// SeedProfile serves the sequential upserts of the seed command.
func SeedProfile() Profile {
	return Profile{
		Name:             constants.AppName + "-seed",
		MaxConns:         2,
		MinConns:         0,
		StatementTimeout: 2 * time.Minute,
	}
}

const (
	// maxConnLifetime recycles connections so failovers are picked up.
	maxConnLifetime = 60 * time.Minute
	// maxConnIdleTime closes connections left over from a traffic spike.
	maxConnIdleTime = 10 * time.Minute
	// healthCheckPeriod is the frequency of background connection checks.
	healthCheckPeriod = 1 * time.Minute
	// connectTimeout bounds dialing a new connection.
	connectTimeout = 5 * time.Second
	// pingTimeout bounds the readiness ping.
	pingTimeout = 2 * time.Second
)

// Config parses dsn and applies profile. It does not connect.
func Config(dsn string, profile Profile) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: invalid DSN: %w", err)
	}

	poolConfig.MaxConns = profile.MaxConns
	poolConfig.MinConns = profile.MinConns
	poolConfig.MaxConnLifetime = maxConnLifetime
	poolConfig.MaxConnIdleTime = maxConnIdleTime
	poolConfig.HealthCheckPeriod = healthCheckPeriod
	poolConfig.ConnConfig.ConnectTimeout = connectTimeout
	if profile.Name != "" {
		poolConfig.ConnConfig.RuntimeParams["application_name"] = profile.Name
	}

	timeoutQuery := fmt.Sprintf("SET statement_timeout = %d", profile.StatementTimeout.Milliseconds())
	poolConfig.AfterConnect = func(ctx context.Context, connection *pgx.Conn) error {
		_, err := connection.Exec(ctx, timeoutQuery)
		return err
	}

	return poolConfig, nil
}

// NewPool connects a pool sized by profile and pings it.
//
// # Parameters
//   - ctx: Context for the initial connection attempt.
//   - dsn: A libpq-compatible connection string or postgres:// URL.
//   - profile: [APIProfile] or [SeedProfile].
//   - logger: Structured logger for pool-level events.
func NewPool(ctx context.Context, dsn string, profile Profile, logger *slog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := Config(dsn, profile)
	if err != nil {
		return nil, err
	}

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to create pool: %w", err)
	}

	if err := Ping(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("postgres_pool_connected",
		slog.String("application_name", profile.Name),
		slog.Int("max_conns", int(profile.MaxConns)),
		slog.Duration("statement_timeout", profile.StatementTimeout),
	)

	return pool, nil
}

// Ping verifies that the pool can reach PostgreSQL. It backs the readiness check.
func Ping(ctx context.Context, pool *pgxpool.Pool) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		return fmt.Errorf("postgres: ping failed: %w", err)
	}

	return nil
}
