package fixtures_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/todo/internal/application/todo"
	"github.com/rezkam/todo/internal/domain"
	"github.com/rezkam/todo/internal/fixtures"
	"github.com/rezkam/todo/internal/infrastructure/persistence/sqlite"
)

func TestLoad(t *testing.T) {
	todos, err := fixtures.Load(strings.NewReader(`
todos:
  - title: Buy milk
  - title: Walk the dog
    completed: true
`))
	require.NoError(t, err)
	assert.Equal(t, []domain.NewTodo{
		{Title: "Buy milk"},
		{Title: "Walk the dog", Completed: true},
	}, todos)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		wantMsg string
	}{
		{name: "empty document", input: "", wantErr: fixtures.ErrEmptyFixture},
		{name: "empty list", input: "todos: []", wantErr: fixtures.ErrEmptyFixture},
		{name: "missing title", input: "todos:\n  - completed: true\n", wantErr: domain.ErrTitleRequired, wantMsg: "todo #1"},
		{name: "unknown field", input: "todos:\n  - title: a\n    done: true\n", wantMsg: "failed to parse fixture"},
		{name: "wrong type", input: "todos:\n  - title: a\n    completed: maybe\n", wantMsg: "failed to parse fixture"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fixtures.Load(strings.NewReader(tt.input))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	todos, err := fixtures.LoadFile("testdata/todos.yaml")
	require.NoError(t, err)
	require.Len(t, todos, 3)
	assert.Equal(t, "<b>Read</b> the manual", todos[2].Title)

	_, err = fixtures.LoadFile("testdata/missing.yaml")
	assert.Error(t, err)
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	store, err := sqlite.NewMemoryStore(ctx)
	require.NoError(t, err)
	defer store.Close()

	svc := todo.NewService(store)
	todos, err := fixtures.LoadFile("testdata/todos.yaml")
	require.NoError(t, err)

	created, err := fixtures.Seed(ctx, svc, todos)
	require.NoError(t, err)
	require.Len(t, created, 3)
	assert.Equal(t, int64(1), created[0].ID)
	assert.True(t, created[1].Completed)

	all, err := svc.GetTodos(ctx)
	require.NoError(t, err)
	assert.Equal(t, created, all)
}
