package todo

import (
	"context"

	"github.com/rezkam/todo/internal/domain"
)

// Service maps todo use cases onto the Repository.
// It performs no validation of its own; request validation happens at the
// transport edge and store errors are returned unmodified.
type Service struct {
	repo Repository
}

// NewService creates a new todo service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetTodos returns all todos ordered by id.
func (s *Service) GetTodos(ctx context.Context) ([]domain.Todo, error) {
	return s.repo.ListAll(ctx)
}

// GetTodoByID returns the todo with the given id or domain.ErrTodoNotFound.
func (s *Service) GetTodoByID(ctx context.Context, id int64) (*domain.Todo, error) {
	return s.repo.FindByID(ctx, id)
}

// InsertTodo creates a todo and returns it with its generated id.
func (s *Service) InsertTodo(ctx context.Context, todo domain.NewTodo) (*domain.Todo, error) {
	return s.repo.Insert(ctx, todo)
}

// UpdateTodo applies a partial update and returns the single affected row.
func (s *Service) UpdateTodo(ctx context.Context, params domain.UpdateTodoParams) (*domain.Todo, error) {
	return s.repo.Update(ctx, params)
}

// DeleteTodo removes a todo and returns the number of rows removed.
func (s *Service) DeleteTodo(ctx context.Context, id int64) (int64, error) {
	return s.repo.Delete(ctx, id)
}
