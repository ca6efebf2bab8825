// Package sqlite implements the todo repository on an embedded SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"github.com/rezkam/todo/internal/infrastructure/persistence/migrate"
	"github.com/rezkam/todo/internal/infrastructure/persistence/sqlite/migrations"
)

// DBConfig holds SQLite connection configuration.
type DBConfig struct {
	DSN             string        // File path, file: URI or ":memory:"
	ConnMaxLifetime time.Duration // zero keeps connections open, required for ":memory:"
	AutoMigrate     bool          // Apply pending migrations after opening
}

// pragmas applied to every new store.
var pragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA busy_timeout = 5000",
}

// NewStore opens the SQLite database described by cfg.
func NewStore(ctx context.Context, cfg DBConfig) (*Store, error) {
	db, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite serializes writers; a single connection also keeps an
	// in-memory database alive for the lifetime of the store.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	closeOnErr := func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.ErrorContext(ctx, "error closing db", "error", closeErr)
		}
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			closeOnErr()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	if err := db.PingContext(ctx); err != nil {
		closeOnErr()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	if cfg.AutoMigrate {
		migrator, err := NewMigrator(db)
		if err != nil {
			closeOnErr()
			return nil, err
		}
		if err := migrator.Up(ctx); err != nil {
			closeOnErr()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	return &Store{db: db}, nil
}

// NewMemoryStore opens a migrated in-memory database. Data is lost on Close.
func NewMemoryStore(ctx context.Context) (*Store, error) {
	return NewStore(ctx, DBConfig{DSN: ":memory:", AutoMigrate: true})
}

// NewMigrator returns a Migrator over the embedded SQLite migrations.
func NewMigrator(db *sql.DB) (*migrate.Migrator, error) {
	return migrate.New(db, goose.DialectSQLite3, migrations.FS)
}
