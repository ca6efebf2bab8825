// Package compliance holds the behavioural test suite every todo.Repository must pass.
package compliance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/todo/internal/application/todo"
	"github.com/rezkam/todo/internal/domain"
	"github.com/rezkam/todo/internal/ptr"
)

// RunRepositoryComplianceTest runs a standard set of tests against a Repository implementation.
// setup must return an empty repository; it is called once per subtest.
func RunRepositoryComplianceTest(t *testing.T, setup func(t *testing.T) todo.Repository) {
	t.Run("ListAllEmpty", func(t *testing.T) {
		repo := setup(t)

		todos, err := repo.ListAll(context.Background())
		require.NoError(t, err)
		assert.Empty(t, todos)
	})

	t.Run("InsertAndFind", func(t *testing.T) {
		repo := setup(t)
		ctx := context.Background()

		created, err := repo.Insert(ctx, domain.NewTodo{Title: "Buy milk"})
		require.NoError(t, err)
		assert.Positive(t, created.ID)
		assert.Equal(t, "Buy milk", created.Title)
		assert.False(t, created.Completed)

		fetched, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, fetched)
	})

	t.Run("InsertCompleted", func(t *testing.T) {
		repo := setup(t)

		created, err := repo.Insert(context.Background(), domain.NewTodo{Title: "Done already", Completed: true})
		require.NoError(t, err)
		assert.True(t, created.Completed)
	})

	t.Run("InsertAssignsDistinctIDs", func(t *testing.T) {
		repo := setup(t)
		ctx := context.Background()

		first, err := repo.Insert(ctx, domain.NewTodo{Title: "first"})
		require.NoError(t, err)
		second, err := repo.Insert(ctx, domain.NewTodo{Title: "second"})
		require.NoError(t, err)

		assert.NotEqual(t, first.ID, second.ID)
	})

	t.Run("ListAllOrderedByID", func(t *testing.T) {
		repo := setup(t)
		ctx := context.Background()

		for _, title := range []string{"a", "b", "c"} {
			_, err := repo.Insert(ctx, domain.NewTodo{Title: title})
			require.NoError(t, err)
		}

		todos, err := repo.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, todos, 3)
		assert.Equal(t, "a", todos[0].Title)
		assert.Equal(t, "c", todos[2].Title)
		assert.Less(t, todos[0].ID, todos[1].ID)
		assert.Less(t, todos[1].ID, todos[2].ID)
	})

	t.Run("FindMissing", func(t *testing.T) {
		repo := setup(t)

		todo, err := repo.FindByID(context.Background(), 999999)
		assert.Nil(t, todo)
		assert.ErrorIs(t, err, domain.ErrTodoNotFound)
	})

	t.Run("UpdateTitleOnly", func(t *testing.T) {
		repo := setup(t)
		ctx := context.Background()

		created, err := repo.Insert(ctx, domain.NewTodo{Title: "old", Completed: true})
		require.NoError(t, err)

		updated, err := repo.Update(ctx, domain.UpdateTodoParams{ID: created.ID, Title: ptr.To("new")})
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, "new", updated.Title)
		assert.True(t, updated.Completed, "completed must be left untouched")
	})

	t.Run("UpdateCompletedFalse", func(t *testing.T) {
		repo := setup(t)
		ctx := context.Background()

		created, err := repo.Insert(ctx, domain.NewTodo{Title: "keep", Completed: true})
		require.NoError(t, err)

		updated, err := repo.Update(ctx, domain.UpdateTodoParams{ID: created.ID, Completed: ptr.To(false)})
		require.NoError(t, err)
		assert.Equal(t, "keep", updated.Title)
		assert.False(t, updated.Completed)

		fetched, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.False(t, fetched.Completed)
	})

	t.Run("UpdateMissing", func(t *testing.T) {
		repo := setup(t)

		_, err := repo.Update(context.Background(), domain.UpdateTodoParams{ID: 999999, Title: ptr.To("x")})
		assert.ErrorIs(t, err, domain.ErrTodoNotFound)
	})

	t.Run("DeleteReportsAffectedRows", func(t *testing.T) {
		repo := setup(t)
		ctx := context.Background()

		created, err := repo.Insert(ctx, domain.NewTodo{Title: "doomed"})
		require.NoError(t, err)

		n, err := repo.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		_, err = repo.FindByID(ctx, created.ID)
		assert.ErrorIs(t, err, domain.ErrTodoNotFound)

		n, err = repo.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), n)
	})

	t.Run("TitlesAreStoredVerbatim", func(t *testing.T) {
		repo := setup(t)
		ctx := context.Background()

		// Parameterized queries must treat these as data
		titles := []string{
			"'; DROP TABLE todo; --",
			"Robert'); DELETE FROM todo WHERE ('1'='1",
			"<script>alert('x')</script>",
			"  padded  ",
			"emoji \u2705 and unicode \u00e9",
		}
		for _, title := range titles {
			created, err := repo.Insert(ctx, domain.NewTodo{Title: title})
			require.NoError(t, err)

			fetched, err := repo.FindByID(ctx, created.ID)
			require.NoError(t, err)
			assert.Equal(t, title, fetched.Title)
		}

		todos, err := repo.ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, todos, len(titles))
	})

	t.Run("RejectsEmptyTitle", func(t *testing.T) {
		repo := setup(t)

		_, err := repo.Insert(context.Background(), domain.NewTodo{Title: ""})
		assert.Error(t, err, "schema must keep the non-empty title invariant")
	})

	t.Run("CancelledContext", func(t *testing.T) {
		repo := setup(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := repo.ListAll(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
