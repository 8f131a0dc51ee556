// Copyright (c) 2026 Staffdesk. All rights reserved.
// Author: quang.nguyendinh.dev@gmail.com

// Command api runs the Staffdesk HTTP server.
//
// Startup is strictly ordered: logger, then configuration, then the two
// backing stores, then migrations, and only then the HTTP surface. Every
// dependency is handed to its consumer through a constructor; nothing in
// here contains business logic of its own.
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

	"github.com/ndquang/staffdesk/internal/api"
	"github.com/ndquang/staffdesk/internal/auth"
	"github.com/ndquang/staffdesk/internal/auth/revocation"
	"github.com/ndquang/staffdesk/internal/employee"
	"github.com/ndquang/staffdesk/internal/platform/config"
	"github.com/ndquang/staffdesk/internal/platform/constants"
	"github.com/ndquang/staffdesk/internal/platform/migration"
	pgstore "github.com/ndquang/staffdesk/internal/platform/postgres"
	redisstore "github.com/ndquang/staffdesk/internal/platform/redis"
	"github.com/ndquang/staffdesk/internal/platform/sec"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Comes up before anything else so even a config failure logs as JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log := rawLog.With(slog.String("app", "staffdesk"))
	slog.SetDefault(log)

	log.Info("[Staffdesk] service_initializing",
		slog.String("name", constants.AppName),
		slog.String("version", constants.AppVersion),
	)

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "staffdesk"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// rootCtx lives for the whole process and bounds background goroutines
	// (rate limiter sweep). startupCtx only covers initial connections, with
	// a 30s deadline so misconfiguration is caught quickly rather than
	// hanging indefinitely.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	startupCtx, startupCancel := context.WithTimeout(rootCtx, 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
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

	// ── 6. Security Primitives ────────────────────────────────────────────
	tokenService, err := sec.NewTokenService(cfg.SecretKey, constants.AuthIssuer, cfg.TokenTTL())
	must(log, err, "initialize token service")

	hasher := sec.NewHasher(cfg.BcryptCost)

	// ── 7. Health Probes ──────────────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	employeeStore := employee.NewPostgresStore(pool)
	employeeService := employee.NewService(employeeStore, hasher, log)
	employeeHandler := employee.NewHandler(employeeService)

	revocationStore := revocation.NewRedisStore(rdb)
	authService := auth.NewService(employeeStore, hasher, tokenService, revocationStore)
	authHandler := auth.NewHandler(authService)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      authHandler,
		Employee:  employeeHandler,
	}

	server := api.NewServer(rootCtx, cfg, log, authService, employeeService, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Park here until the OS asks us to stop or the listener dies.
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

// must exits the process with a structured log line when err is non-nil.
// Only startup wiring may use it; once the server runs, errors are returned,
// never fatal.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
