package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rezkam/todo/internal/application/todo"
	"github.com/rezkam/todo/internal/domain"
)

const (
	listTodosSQL = `SELECT id, title, completed FROM todo ORDER BY id`

	findTodoSQL = `SELECT id, title, completed FROM todo WHERE id = ?`

	insertTodoSQL = `INSERT INTO todo (title, completed) VALUES (?, ?)
		RETURNING id, title, completed`

	updateTodoSQL = `UPDATE todo
		SET title = COALESCE(?, title),
		    completed = COALESCE(?, completed)
		WHERE id = ?
		RETURNING id, title, completed`

	deleteTodoSQL = `DELETE FROM todo WHERE id = ?`
)

// Store provides the SQLite implementation of todo.Repository.
type Store struct {
	db *sql.DB
}

var _ todo.Repository = (*Store)(nil)

// DB returns the underlying database handle.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTodo(row scanner) (domain.Todo, error) {
	var t domain.Todo
	err := row.Scan(&t.ID, &t.Title, &t.Completed)
	return t, err
}

// ListAll returns every todo ordered by id.
func (s *Store) ListAll(ctx context.Context) ([]domain.Todo, error) {
	rows, err := s.db.QueryContext(ctx, listTodosSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	todos := []domain.Todo{}
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan todo: %w", err)
		}
		todos = append(todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate todos: %w", err)
	}

	return todos, nil
}

// FindByID retrieves a todo by id.
func (s *Store) FindByID(ctx context.Context, id int64) (*domain.Todo, error) {
	t, err := scanTodo(s.db.QueryRowContext(ctx, findTodoSQL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: todo %d", domain.ErrTodoNotFound, id)
		}
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}
	return &t, nil
}

// Insert creates a todo and returns it with the generated id.
func (s *Store) Insert(ctx context.Context, newTodo domain.NewTodo) (*domain.Todo, error) {
	t, err := scanTodo(s.db.QueryRowContext(ctx, insertTodoSQL, newTodo.Title, newTodo.Completed))
	if err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}
	return &t, nil
}

// Update applies the non-nil fields of params and returns the updated row.
func (s *Store) Update(ctx context.Context, params domain.UpdateTodoParams) (*domain.Todo, error) {
	var title sql.NullString
	if params.Title != nil {
		title = sql.NullString{String: *params.Title, Valid: true}
	}
	var completed sql.NullBool
	if params.Completed != nil {
		completed = sql.NullBool{Bool: *params.Completed, Valid: true}
	}

	t, err := scanTodo(s.db.QueryRowContext(ctx, updateTodoSQL, title, completed, params.ID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: todo %d", domain.ErrTodoNotFound, params.ID)
		}
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}
	return &t, nil
}

// Delete removes a todo and returns the number of affected rows.
func (s *Store) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, deleteTodoSQL, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete todo: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n, nil
}
