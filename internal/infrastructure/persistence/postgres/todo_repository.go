package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rezkam/todo/internal/domain"
)

const (
	listTodosSQL = `SELECT id, title, completed FROM todo ORDER BY id`

	findTodoSQL = `SELECT id, title, completed FROM todo WHERE id = $1`

	insertTodoSQL = `INSERT INTO todo (title, completed) VALUES ($1, $2)
		RETURNING id, title, completed`

	// COALESCE keeps the stored value for fields left out of the update.
	updateTodoSQL = `UPDATE todo
		SET title = COALESCE($2::text, title),
		    completed = COALESCE($3::boolean, completed)
		WHERE id = $1
		RETURNING id, title, completed`

	deleteTodoSQL = `DELETE FROM todo WHERE id = $1`
)

func scanTodo(row pgx.CollectableRow) (domain.Todo, error) {
	var t domain.Todo
	err := row.Scan(&t.ID, &t.Title, &t.Completed)
	return t, err
}

// ListAll returns every todo ordered by id.
func (s *Store) ListAll(ctx context.Context) ([]domain.Todo, error) {
	rows, err := s.pool.Query(ctx, listTodosSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}

	todos, err := pgx.CollectRows(rows, scanTodo)
	if err != nil {
		return nil, fmt.Errorf("failed to scan todos: %w", err)
	}

	return todos, nil
}

// FindByID retrieves a todo by id.
func (s *Store) FindByID(ctx context.Context, id int64) (*domain.Todo, error) {
	rows, err := s.pool.Query(ctx, findTodoSQL, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}

	todo, err := pgx.CollectExactlyOneRow(rows, scanTodo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: todo %d", domain.ErrTodoNotFound, id)
		}
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}

	return &todo, nil
}

// Insert creates a todo and returns it with the generated id.
func (s *Store) Insert(ctx context.Context, newTodo domain.NewTodo) (*domain.Todo, error) {
	rows, err := s.pool.Query(ctx, insertTodoSQL, newTodo.Title, newTodo.Completed)
	if err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	todo, err := pgx.CollectExactlyOneRow(rows, scanTodo)
	if err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	return &todo, nil
}

// Update applies the non-nil fields of params and returns the updated row.
func (s *Store) Update(ctx context.Context, params domain.UpdateTodoParams) (*domain.Todo, error) {
	rows, err := s.pool.Query(ctx, updateTodoSQL, params.ID, params.Title, params.Completed)
	if err != nil {
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}

	todo, err := pgx.CollectExactlyOneRow(rows, scanTodo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: todo %d", domain.ErrTodoNotFound, params.ID)
		}
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}

	return &todo, nil
}

// Delete removes a todo and returns the number of affected rows.
func (s *Store) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := s.pool.Exec(ctx, deleteTodoSQL, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete todo: %w", err)
	}
	return tag.RowsAffected(), nil
}
