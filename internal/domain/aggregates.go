package domain

// Todo is a single task persisted in the todo table.
type Todo struct {
	ID        int64
	Title     string
	Completed bool
}

// NewTodo carries the fields accepted when a todo is created.
// ID is assigned by the store.
type NewTodo struct {
	Title     string
	Completed bool
}
