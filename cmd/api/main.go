// Copyright (c) 2026 Vizza. All rights reserved.
// Author: daalagelerua

// Command api is the entry point for the Vizza HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Build the token service.
//  7. Wire repositories, services and HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/api"
	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/core/country"
	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/core/visa"
	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/cache"
	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/config"
	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/constants"
	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/migration"
	pgstore "github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/postgres"
	redisstore "github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/redis"
	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/sec"
	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/users/auth"
	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/users/favorite"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("[Vizza] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. A deadline surfaces misconfiguration quickly
	// instead of hanging on an unreachable dependency.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, pgstore.APIProfile(), log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Token Service ──────────────────────────────────────────────────
	tokens, err := sec.NewTokenService(sec.TokenOptions{
		Secret:   cfg.TokenSecret,
		Issuer:   cfg.TokenIssuer,
		Audience: cfg.TokenAudience,
		TTL:      cfg.TokenExpiry,
		Leeway:   cfg.TokenLeeway,
	})
	must(log, err, "initialize token service")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		},
		CheckCache: func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	jsonCache := cache.NewJSONCache(rdb)

	countryRepository := country.NewCachedRepository(
		country.NewPostgresRepository(pool), jsonCache, cfg.CacheTTL, log,
	)
	countryService := country.NewService(countryRepository, log)

	visaRepository := visa.NewPostgresRepository(pool)
	userRepository := auth.NewUserRepository(pool)

	favoriteService := favorite.NewService(
		favorite.NewPostgresRepository(pool), countryService, visaRepository, userRepository, log,
	)
	visaService := visa.NewService(countryService, visaRepository, log, visa.Options{
		Favorites: favoriteService,
		Cache:     jsonCache,
		CacheTTL:  cfg.CacheTTL,
	})
	authService := auth.NewService(userRepository, tokens, favoriteService, log)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	// The root context stops background workers such as the rate limiter sweep.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth: auth.NewHandler(authService, auth.CookieOptions{
			Name:   cfg.TokenCookieName,
			Secure: cfg.IsProduction(),
		}),
		Country:  country.NewHandler(countryService),
		Visa:     visa.NewHandler(visaService),
		Favorite: favorite.NewHandler(favoriteService),
	}

	server := api.NewServer(rootCtx, cfg, log, tokens, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// newLogger builds the JSON logger tagged with the application name.
func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName), slog.String("version", constants.AppVersion))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
