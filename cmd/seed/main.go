// Copyright (c) 2026 Vizza. All rights reserved.
// Author: daalagelerua

// Command seed loads the reference dataset (countries and visa requirements)
// from a JSON document into PostgreSQL.
//
// # Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL and run migrations.
//  4. Optionally connect to Redis to evict cached reference data.
//  5. Decode the seed document and apply it.
//
// The command is idempotent: every entry is created or replaced.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/core/country"
	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/core/seed"
	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/core/visa"
	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/cache"
	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/config"
	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/constants"
	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/migration"
	pgstore "github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/postgres"
	redisstore "github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/redis"
)

// seedTimeout bounds the whole run.
const seedTimeout = 5 * time.Minute

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.LoadSeed()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
	}

	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, pgstore.SeedProfile(), log)
	must(log, err, "connect to postgres")
	defer pool.Close()

	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	var countries seed.CountryWriter = country.NewPostgresRepository(pool)

	// ── 4. Redis (optional) ───────────────────────────────────────────────
	var jsonCache *cache.JSONCache
	if cfg.RedisURL != "" {
		rdb, err := redisstore.NewClient(ctx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer rdb.Close()

		jsonCache = cache.NewJSONCache(rdb)
		countries = country.NewCachedRepository(country.NewPostgresRepository(pool), jsonCache, 0, log)
	}

	// ── 5. Load ───────────────────────────────────────────────────────────
	file, err := os.Open(cfg.SeedFile)
	must(log, err, "open seed file")
	defer file.Close()

	document, err := seed.Decode(file)
	must(log, err, "decode seed file")

	log.Info("seed_started",
		slog.String("file", cfg.SeedFile),
		slog.Int("countries", len(document.Countries)),
		slog.Int("requirements", len(document.Requirements)),
	)

	loader := seed.NewLoader(countries, visa.NewPostgresRepository(pool), log)
	report, err := loader.Apply(ctx, document)
	must(log, err, "apply seed document")

	if jsonCache != nil {
		if err := jsonCache.Delete(ctx, constants.RedisKeyStatistics); err != nil {
			log.Warn("statistics_cache_evict_failed", slog.Any("error", err))
		}
	}

	log.Info("seed_completed",
		slog.Int("countries", report.Countries),
		slog.Int("requirements", report.Requirements),
		slog.Int("skipped", report.Skipped),
	)
}

// newLogger builds the JSON logger tagged with the command name.
func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(
		slog.String("app", constants.AppName),
		slog.String("version", constants.AppVersion),
		slog.String("command", "seed"),
	)
}

// must logs a structured fatal error and terminates the process if err is non-nil.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("seed failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
