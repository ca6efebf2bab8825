package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"path"
	"strconv"

	"github.com/rezkam/todo/internal/domain"
	"github.com/rezkam/todo/internal/infrastructure/http/request"
	"github.com/rezkam/todo/internal/infrastructure/http/response"
	"github.com/rezkam/todo/internal/ptr"
)

// ListTodos handles GET /.
func (h *TodoHandler) ListTodos(w http.ResponseWriter, r *http.Request) error {
	todos, err := h.todoService.GetTodos(r.Context())
	if err != nil {
		return err
	}

	response.OK(w, MapTodosToDTO(todos))
	return nil
}

// CreateTodo handles POST /.
func (h *TodoHandler) CreateTodo(w http.ResponseWriter, r *http.Request) error {
	var req request.CreateTodo
	if err := request.Decode(r, request.CreateTodoSchema, &req); err != nil {
		return decodeFailed(w, err)
	}

	title, err := domain.NewTitle(ptr.Deref(req.Title, ""))
	if err != nil {
		response.BadRequest(w, response.MsgMissingTitle)
		return nil
	}

	created, err := h.todoService.InsertTodo(r.Context(), domain.NewTodo{
		Title:     title.String(),
		Completed: ptr.Deref(req.Completed, false),
	})
	if err != nil {
		return err
	}

	slog.InfoContext(r.Context(), "Todo created", "id", created.ID)

	location := path.Join(r.URL.Path, strconv.FormatInt(created.ID, 10))
	response.Created(w, location, MapTodoToDTO(created))
	return nil
}

// GetTodo handles GET /{id}.
func (h *TodoHandler) GetTodo(w http.ResponseWriter, r *http.Request, todo *domain.Todo) error {
	response.OK(w, MapTodoToDTO(todo))
	return nil
}

// UpdateTodo handles PATCH /{id}.
// A field counts as provided when it is present and not null, so
// {"completed":false} is a valid update on its own.
func (h *TodoHandler) UpdateTodo(w http.ResponseWriter, r *http.Request, todo *domain.Todo) error {
	var req request.UpdateTodo
	if err := request.Decode(r, request.UpdateTodoSchema, &req); err != nil {
		return decodeFailed(w, err)
	}

	params := domain.UpdateTodoParams{
		ID:        todo.ID,
		Title:     req.Title,
		Completed: req.Completed,
	}
	if err := params.Validate(); err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyUpdate):
			response.BadRequest(w, response.MsgEmptyUpdate)
		case errors.Is(err, domain.ErrTitleRequired):
			response.BadRequest(w, response.MsgEmptyTitle)
		default:
			return err
		}
		return nil
	}

	updated, err := h.todoService.UpdateTodo(r.Context(), params)
	if err != nil {
		return err
	}

	slog.InfoContext(r.Context(), "Todo updated", "id", updated.ID)
	response.OK(w, MapTodoToDTO(updated))
	return nil
}

// DeleteTodo handles DELETE /{id}.
// The response is 204 whatever the affected row count.
func (h *TodoHandler) DeleteTodo(w http.ResponseWriter, r *http.Request, todo *domain.Todo) error {
	n, err := h.todoService.DeleteTodo(r.Context(), todo.ID)
	if err != nil {
		return err
	}

	slog.InfoContext(r.Context(), "Todo deleted", "id", todo.ID, "rows", n)
	response.NoContent(w)
	return nil
}
