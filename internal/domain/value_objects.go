package domain

import (
	"fmt"
	"strconv"
)

// Title is a validated, non-empty todo title.
// Surrounding whitespace is significant and kept as given.
type Title struct {
	value string
}

// NewTitle creates a new Title, rejecting the empty string.
func NewTitle(s string) (Title, error) {
	if s == "" {
		return Title{}, ErrTitleRequired
	}
	return Title{value: s}, nil
}

// String returns the title value.
func (t Title) String() string {
	return t.value
}

// ParseTodoID parses a path segment into a todo id.
// Anything that is not a base-10 integer yields ErrInvalidID.
func ParseTodoID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidID, err)
	}
	return id, nil
}
