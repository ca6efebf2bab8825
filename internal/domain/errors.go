package domain

import "errors"

// Domain errors returned by repository implementations and value objects.
var (
	// ErrTodoNotFound indicates no todo exists with the requested id.
	ErrTodoNotFound = errors.New("todo not found")

	// ErrInvalidID indicates the provided id is not an integer.
	ErrInvalidID = errors.New("invalid id")

	// ErrTitleRequired indicates a missing or empty title.
	ErrTitleRequired = errors.New("title is required")

	// ErrEmptyUpdate indicates an update carrying neither title nor completed.
	ErrEmptyUpdate = errors.New("update must set title or completed")
)
