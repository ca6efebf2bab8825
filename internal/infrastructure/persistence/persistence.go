// Package persistence selects and opens the configured todo store.
package persistence

import (
	"context"
	"fmt"
	"io"

	"github.com/rezkam/todo/internal/application/todo"
	"github.com/rezkam/todo/internal/config"
	"github.com/rezkam/todo/internal/infrastructure/persistence/migrate"
	"github.com/rezkam/todo/internal/infrastructure/persistence/postgres"
	"github.com/rezkam/todo/internal/infrastructure/persistence/sqlite"
)

// Store is a todo repository that owns database resources.
type Store interface {
	todo.Repository
	io.Closer
}

// Open opens the store selected by cfg.Driver.
func Open(ctx context.Context, cfg config.DatabaseConfig) (Store, error) {
	var (
		store Store
		err   error
	)
	switch cfg.Driver {
	case config.DriverPostgres:
		store, err = postgres.NewStoreWithConfig(ctx, postgres.DBConfig{
			DSN:             cfg.DSN,
			MaxOpenConns:    cfg.MaxOpenConns,
			MaxIdleConns:    cfg.MaxIdleConns,
			ConnMaxLifetime: cfg.ConnMaxLifetime,
			ConnMaxIdleTime: cfg.ConnMaxIdleTime,
			AutoMigrate:     cfg.AutoMigrate,
		})
	case config.DriverSQLite:
		store, err = sqlite.NewStore(ctx, sqlite.DBConfig{
			DSN:             cfg.DSN,
			ConnMaxLifetime: cfg.ConnMaxLifetime,
			AutoMigrate:     cfg.AutoMigrate,
		})
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Driver, err)
	}
	return store, nil
}

// OpenMigrator opens a migration handle for the configured database.
// The returned closer releases the underlying connection.
func OpenMigrator(ctx context.Context, cfg config.DatabaseConfig) (*migrate.Migrator, io.Closer, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := postgres.OpenMigrationDB(ctx, cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		migrator, err := postgres.NewMigrator(db)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return migrator, db, nil
	case config.DriverSQLite:
		store, err := sqlite.NewStore(ctx, sqlite.DBConfig{DSN: cfg.DSN})
		if err != nil {
			return nil, nil, err
		}
		migrator, err := sqlite.NewMigrator(store.DB())
		if err != nil {
			_ = store.Close()
			return nil, nil, err
		}
		return migrator, store, nil
	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
