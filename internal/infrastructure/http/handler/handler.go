// Package handler adapts HTTP requests on the todo resource to todo.Service calls.
package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rezkam/todo/internal/application/todo"
	"github.com/rezkam/todo/internal/domain"
	"github.com/rezkam/todo/internal/infrastructure/http/request"
	"github.com/rezkam/todo/internal/infrastructure/http/response"
)

// TodoHandler serves the todo collection and item endpoints.
type TodoHandler struct {
	todoService *todo.Service
}

// NewTodoHandler creates a new todo HTTP handler.
func NewTodoHandler(todoService *todo.Service) *TodoHandler {
	return &TodoHandler{todoService: todoService}
}

// handlerFunc is an HTTP handler that returns unexpected errors instead of writing them.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

// todoHandlerFunc receives the todo addressed by the {id} path parameter.
type todoHandlerFunc func(w http.ResponseWriter, r *http.Request, item *domain.Todo) error

// Routes returns a router for the todo resource, to be mounted under a prefix.
func (h *TodoHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.handle(h.ListTodos))
	r.Post("/", h.handle(h.CreateTodo))
	r.Get("/{id}", h.withTodo(h.GetTodo))
	r.Patch("/{id}", h.withTodo(h.UpdateTodo))
	r.Delete("/{id}", h.withTodo(h.DeleteTodo))

	return r
}

// handle forwards every error returned by fn to response.FromError.
// Handlers write validation and not-found responses themselves and return nil.
func (h *TodoHandler) handle(fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			response.FromError(w, r, err)
		}
	}
}

// withTodo resolves the {id} path parameter before calling fn.
// A malformed id is rejected without touching the store.
func (h *TodoHandler) withTodo(fn todoHandlerFunc) http.HandlerFunc {
	return h.handle(func(w http.ResponseWriter, r *http.Request) error {
		id, err := domain.ParseTodoID(chi.URLParam(r, "id"))
		if err != nil {
			response.NotFound(w, response.MsgInvalidID)
			return nil
		}

		item, err := h.todoService.GetTodoByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, domain.ErrTodoNotFound) {
				response.NotFound(w, response.MsgTodoNotFound)
				return nil
			}
			return err
		}

		return fn(w, r, item)
	})
}

// decodeFailed writes the client error for a body that request.Decode rejected.
// Errors that are not the client's fault are returned to the caller.
func decodeFailed(w http.ResponseWriter, err error) error {
	var ve *request.ValidationError
	switch {
	case errors.Is(err, request.ErrInvalidJSON):
		response.BadRequest(w, response.MsgInvalidJSON)
	case errors.As(err, &ve):
		response.BadRequest(w, fmt.Sprintf("Invalid request body: %s: %s", ve.Field, ve.Issue))
	case errors.Is(err, request.ErrBodyTooLarge):
		response.Error(w, http.StatusRequestEntityTooLarge, "request body exceeds size limit")
	default:
		return err
	}
	return nil
}
