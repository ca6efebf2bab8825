package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rezkam/todo/internal/application/todo"
)

// Store provides the PostgreSQL implementation of todo.Repository.
type Store struct {
	pool *pgxpool.Pool
}

// Compile-time verification that Store implements the repository interface.
var _ todo.Repository = (*Store)(nil)

// NewStore creates a new PostgreSQL store with the given connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Pool returns the underlying connection pool.
func (s *Store) Pool() *pgxpool.Pool {
	return s.pool
}

// Close closes the database connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}
