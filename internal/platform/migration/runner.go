// Copyright (c) 2026 Staffdesk. All rights reserved.
// Author: quang.nguyendinh.dev@gmail.com

// Package migration applies the SQL schema migrations at startup.
//
// # Idempotency
//
// RunUp is safe to call on every boot: an up-to-date database is a no-op,
// and a database left dirty by an interrupted migration refuses to start the
// server rather than risk serving traffic on a half-applied schema.
package migration

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// Registers the "pgx5" database scheme.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	// Registers the "file" source scheme for .sql files on disk.
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunUp applies every pending UP migration found under migrationsPath.
func RunUp(dsn string, migrationsPath string, logger *slog.Logger) error {
	migrator, err := migrate.New("file://"+migrationsPath, pgx5URL(dsn))
	if err != nil {
		return fmt.Errorf("migration: failed to initialize: %w", err)
	}
	migrator.Log = &slogAdapter{logger: logger}

	defer func() {
		if sourceErr, dbErr := migrator.Close(); sourceErr != nil || dbErr != nil {
			logger.Error("migration_close_failed",
				slog.Any("source_error", sourceErr),
				slog.Any("db_error", dbErr),
			)
		}
	}()

	before, dirty, err := migrator.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("migration: failed to read current version: %w", err)
	}
	if dirty {
		return fmt.Errorf("migration: database is dirty at version %d (manual intervention required)", before)
	}

	logger.Info("migration_started", slog.Int("current_version", int(before)))

	switch err := migrator.Up(); {
	case err == nil:
		after, _, _ := migrator.Version()
		logger.Info("migration_successful",
			slog.Int("from_version", int(before)),
			slog.Int("to_version", int(after)),
		)
		return nil
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("migration_already_up_to_date")
		return nil
	default:
		return fmt.Errorf("migration: up failed: %w", err)
	}
}

// pgx5URL rewrites a postgres:// or postgresql:// DSN to the pgx5:// scheme
// golang-migrate's pgx/v5 driver registers. Any other DSN passes through.
func pgx5URL(dsn string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(dsn, prefix); ok {
			return "pgx5://" + rest
		}
	}
	return dsn
}

// slogAdapter bridges golang-migrate's Logger interface onto slog.
type slogAdapter struct {
	logger *slog.Logger
}

func (adapter *slogAdapter) Printf(format string, args ...any) {
	adapter.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (adapter *slogAdapter) Verbose() bool { return false }
