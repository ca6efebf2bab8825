package domain

// UpdateTodoParams describes a partial update of a todo.
// A nil field is left unchanged.
type UpdateTodoParams struct {
	ID        int64
	Title     *string
	Completed *bool
}

// Validate checks that at least one field is set and that a provided
// title is not empty. An explicit Completed=false counts as set.
func (p UpdateTodoParams) Validate() error {
	if p.Title == nil && p.Completed == nil {
		return ErrEmptyUpdate
	}
	if p.Title != nil {
		if _, err := NewTitle(*p.Title); err != nil {
			return err
		}
	}
	return nil
}
