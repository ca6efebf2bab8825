package persistence_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/todo/internal/config"
	"github.com/rezkam/todo/internal/domain"
	"github.com/rezkam/todo/internal/infrastructure/persistence"
)

func TestOpen_SQLite(t *testing.T) {
	ctx := context.Background()
	cfg := config.DatabaseConfig{
		Driver:      config.DriverSQLite,
		DSN:         filepath.Join(t.TempDir(), "todo.db"),
		AutoMigrate: true,
	}

	store, err := persistence.Open(ctx, cfg)
	require.NoError(t, err)
	defer store.Close()

	created, err := store.Insert(ctx, domain.NewTodo{Title: "from factory"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := persistence.Open(context.Background(), config.DatabaseConfig{Driver: "mysql", DSN: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"mysql"`)
}

func TestOpenMigrator_SQLite(t *testing.T) {
	ctx := context.Background()
	cfg := config.DatabaseConfig{
		Driver: config.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "todo.db"),
	}

	migrator, closer, err := persistence.OpenMigrator(ctx, cfg)
	require.NoError(t, err)

	require.NoError(t, migrator.Up(ctx))
	version, err := migrator.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
	require.NoError(t, closer.Close())

	// Schema is in place for a store opened without auto-migration
	store, err := persistence.Open(ctx, cfg)
	require.NoError(t, err)
	defer store.Close()

	todos, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, todos)
}
