// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migration applies the SQL migrations under migrations/ at startup,
// so the revalidation event table exists before the webhook is served.
package migration

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// pgx5 driver registers "pgx5" scheme for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	// file source reads .sql files from disk.
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// DefaultTable keeps migration bookkeeping apart from other services sharing the database.
const DefaultTable = "techblog_schema_migrations"

// Options locates the database and the migration files.
type Options struct {
	// DSN is a postgres:// URL or a pgx5:// URL.
	DSN string
	// Path is the filesystem directory holding the .sql files.
	Path string
	// Table overrides [DefaultTable].
	Table string
}

// RunUp applies all pending UP migrations. A dirty database is an error.
func RunUp(opts Options, logger *slog.Logger) error {
	databaseURL, err := databaseURL(opts)
	if err != nil {
		return err
	}

	migrator, err := migrate.New("file://"+opts.Path, databaseURL)
	if err != nil {
		return fmt.Errorf("migration: failed to initialize: %w", err)
	}
	defer func() {
		sourceError, dbError := migrator.Close()
		if sourceError != nil {
			logger.Error("migration_source_close_failed", slog.Any("error", sourceError))
		}
		if dbError != nil {
			logger.Error("migration_db_close_failed", slog.Any("error", dbError))
		}
	}()

	migrator.Log = &migrateLogger{logger: logger}

	currentVersion, isDirty, err := migrator.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("migration: failed to get current version: %w", err)
	}
	if isDirty {
		return fmt.Errorf("migration: database is dirty at version %d", currentVersion)
	}

	if err := migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("migration_up_to_date", slog.Uint64("version", uint64(currentVersion)))
			return nil
		}
		return fmt.Errorf("migration: up failed: %w", err)
	}

	newVersion, _, _ := migrator.Version()
	logger.Info("migration_applied",
		slog.Uint64("from_version", uint64(currentVersion)),
		slog.Uint64("to_version", uint64(newVersion)),
	)
	return nil
}

// databaseURL rewrites the DSN to the pgx5:// scheme and names the
// bookkeeping table. Key/value DSNs are rejected since they carry no scheme.
func databaseURL(opts Options) (string, error) {
	dsn := opts.DSN
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if rest, found := strings.CutPrefix(dsn, prefix); found {
			dsn = "pgx5://" + rest
			break
		}
	}

	parsed, err := url.Parse(dsn)
	if err != nil || parsed.Scheme != "pgx5" {
		return "", fmt.Errorf("migration: DATABASE_URL must be a postgres:// URL")
	}

	table := opts.Table
	if table == "" {
		table = DefaultTable
	}
	query := parsed.Query()
	query.Set("x-migrations-table", table)
	parsed.RawQuery = query.Encode()

	return parsed.String(), nil
}

// migrateLogger adapts golang-migrate's logger interface to slog.
type migrateLogger struct {
	logger  *slog.Logger
	verbose bool
}

// Printf implements migrate.Logger.
func (l *migrateLogger) Printf(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// Verbose implements migrate.Logger.
func (l *migrateLogger) Verbose() bool {
	return l.verbose
}
