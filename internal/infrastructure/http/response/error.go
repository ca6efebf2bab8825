package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/rezkam/todo/internal/domain"
)

// Client-facing error messages.
const (
	MsgInvalidID    = "Invalid id"
	MsgTodoNotFound = "Todo doesn't exist"
	MsgServerError  = "server error"
	MsgMissingTitle = "Missing 'title' in request body"
	MsgEmptyUpdate  = "Request body must content either 'title' or 'completed'"
	MsgEmptyTitle   = "'title' must not be empty"
	MsgInvalidJSON  = "Invalid JSON in request body"
)

// ErrorResponse is the error envelope returned by every endpoint.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Message string `json:"message"`
}

// Error sends an error response with the given status.
func Error(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Message: message}})
}

// BadRequest sends a 400 Bad Request error.
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, message)
}

// NotFound sends a 404 Not Found error.
func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, message)
}

// InternalError logs err server-side and sends a generic 500 to the client.
func InternalError(w http.ResponseWriter, r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "Internal server error",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err)
	Error(w, http.StatusInternalServerError, MsgServerError)
}

// FromError is the central sink for errors returned by handlers.
func FromError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrTodoNotFound):
		NotFound(w, MsgTodoNotFound)
	case errors.Is(err, domain.ErrInvalidID):
		NotFound(w, MsgInvalidID)
	default:
		InternalError(w, r, err)
	}
}
