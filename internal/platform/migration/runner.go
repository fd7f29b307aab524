// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migration applies the SQL files under MIGRATION_PATH with
// golang-migrate. It backs the "migrate" command and runs on "serve" startup
// when STORE_DRIVER=postgres, so the users and lots tables exist before the
// first request.
package migration

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunUp applies every pending migration.
func RunUp(dsn, migrationsPath string, logger *slog.Logger) error {
	return run(dsn, migrationsPath, logger, "up", func(m *migrate.Migrate) error {
		return m.Up()
	})
}

// RunDown rolls back steps migrations, or all of them when steps <= 0.
func RunDown(dsn, migrationsPath string, steps int, logger *slog.Logger) error {
	return run(dsn, migrationsPath, logger, "down", func(m *migrate.Migrate) error {
		if steps > 0 {
			return m.Steps(-steps)
		}
		return m.Down()
	})
}

func run(dsn, migrationsPath string, logger *slog.Logger, direction string, apply func(*migrate.Migrate) error) error {
	m, err := migrate.New("file://"+migrationsPath, pgx5URL(dsn))
	if err != nil {
		return fmt.Errorf("migration_open_failed: %w", err)
	}
	m.Log = slogAdapter{logger: logger}
	defer func() {
		if sourceErr, dbErr := m.Close(); sourceErr != nil || dbErr != nil {
			logger.Error("migration_close_failed", slog.Any("source_error", sourceErr), slog.Any("db_error", dbErr))
		}
	}()

	from, err := version(m)
	if err != nil {
		return err
	}

	if err := apply(m); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("migration_no_change", slog.String("direction", direction), slog.Uint64("version", uint64(from)))
			return nil
		}
		return fmt.Errorf("migration_%s_failed: %w", direction, err)
	}

	to, err := version(m)
	if err != nil {
		return err
	}
	logger.Info("migration_applied",
		slog.String("direction", direction),
		slog.Uint64("from_version", uint64(from)),
		slog.Uint64("to_version", uint64(to)),
	)
	return nil
}

// version returns the applied version, 0 for an empty database. A dirty
// database needs a manual "migrate force" and is reported as an error.
func version(m *migrate.Migrate) (uint, error) {
	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("migration_version_failed: %w", err)
	}
	if dirty {
		return 0, fmt.Errorf("migration_dirty_state: version %d", v)
	}
	return v, nil
}

// pgx5URL rewrites postgres:// and postgresql:// to the pgx5:// scheme
// the golang-migrate pgx/v5 driver registers. Other forms pass through.
func pgx5URL(dsn string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(dsn, prefix); ok {
			return "pgx5://" + rest
		}
	}
	return dsn
}

// slogAdapter routes golang-migrate's progress lines to debug logs.
type slogAdapter struct {
	logger *slog.Logger
}

func (a slogAdapter) Printf(format string, args ...any) {
	a.logger.Debug("migration_progress", slog.String("detail", strings.TrimSpace(fmt.Sprintf(format, args...))))
}

func (a slogAdapter) Verbose() bool { return false }
