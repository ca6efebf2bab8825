package todo

import (
	"context"

	"github.com/rezkam/todo/internal/domain"
)

// Repository defines storage operations for the todo table.
// Implementations translate driver errors and return domain errors where noted;
// any other error is a store failure and is passed through untouched by Service.
type Repository interface {
	// ListAll returns every todo ordered by id.
	ListAll(ctx context.Context) ([]domain.Todo, error)

	// FindByID retrieves a single todo.
	// Returns domain.ErrTodoNotFound if the todo doesn't exist.
	FindByID(ctx context.Context, id int64) (*domain.Todo, error)

	// Insert persists a new todo and returns it with its generated id.
	Insert(ctx context.Context, todo domain.NewTodo) (*domain.Todo, error)

	// Update applies the non-nil fields of params and returns the row as persisted.
	// Returns domain.ErrTodoNotFound if no row matched.
	Update(ctx context.Context, params domain.UpdateTodoParams) (*domain.Todo, error)

	// Delete removes a todo and reports how many rows were affected.
	Delete(ctx context.Context, id int64) (int64, error)
}
