package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/todo/internal/application/todo"
	"github.com/rezkam/todo/internal/domain"
	"github.com/rezkam/todo/internal/infrastructure/http/handler"
	"github.com/rezkam/todo/internal/infrastructure/persistence/sqlite"
)

const mountPath = "/api/todo"

// countingRepo records how many calls reach the wrapped repository.
type countingRepo struct {
	todo.Repository
	calls atomic.Int64
}

func (c *countingRepo) ListAll(ctx context.Context) ([]domain.Todo, error) {
	c.calls.Add(1)
	return c.Repository.ListAll(ctx)
}

func (c *countingRepo) FindByID(ctx context.Context, id int64) (*domain.Todo, error) {
	c.calls.Add(1)
	return c.Repository.FindByID(ctx, id)
}

// failingRepo fails every call with a store error.
type failingRepo struct{}

var errStoreDown = errors.New("connection refused")

func (failingRepo) ListAll(context.Context) ([]domain.Todo, error) { return nil, errStoreDown }
func (failingRepo) FindByID(context.Context, int64) (*domain.Todo, error) {
	return nil, errStoreDown
}
func (failingRepo) Insert(context.Context, domain.NewTodo) (*domain.Todo, error) {
	return nil, errStoreDown
}
func (failingRepo) Update(context.Context, domain.UpdateTodoParams) (*domain.Todo, error) {
	return nil, errStoreDown
}
func (failingRepo) Delete(context.Context, int64) (int64, error) { return 0, errStoreDown }

type testServer struct {
	router http.Handler
	repo   *countingRepo
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store, err := sqlite.NewMemoryStore(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	repo := &countingRepo{Repository: store}
	return &testServer{router: mount(todo.NewService(repo)), repo: repo}
}

func mount(svc *todo.Service) http.Handler {
	r := chi.NewRouter()
	r.Mount(mountPath, handler.NewTodoHandler(svc).Routes())
	return r
}

func (s *testServer) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeTodo(t *testing.T, w *httptest.ResponseRecorder) handler.TodoDTO {
	t.Helper()

	var dto handler.TodoDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dto), "body: %s", w.Body.String())
	return dto
}

func assertError(t *testing.T, w *httptest.ResponseRecorder, status int, message string) {
	t.Helper()

	assert.Equal(t, status, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "body: %s", w.Body.String())
	assert.Equal(t, message, body.Error.Message)
}

func TestCreateTodo(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, mountPath, `{"title":"Buy milk"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/api/todo/1", w.Header().Get("Location"))
	assert.JSONEq(t, `{"id":1,"title":"Buy milk","completed":false}`, w.Body.String())
}

func TestCreateTodo_LocationWithTrailingSlash(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, mountPath+"/", `{"title":"Buy milk","completed":true}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/api/todo/1", w.Header().Get("Location"))
	assert.True(t, decodeTodo(t, w).Completed)
}

func TestCreateThenGet_RoundTrip(t *testing.T) {
	inputs := []struct {
		title     string
		completed bool
	}{
		{"Buy milk", false},
		{"Walk the dog", true},
		{"  padded  ", false},
		{"Tom's list", false},
		{"Salt & pepper", true},
		{`Say "hi"`, false},
	}

	s := newTestServer(t)
	for _, in := range inputs {
		t.Run(in.title, func(t *testing.T) {
			body, err := json.Marshal(map[string]any{"title": in.title, "completed": in.completed})
			require.NoError(t, err)

			created := s.do(t, http.MethodPost, mountPath, string(body))
			require.Equal(t, http.StatusCreated, created.Code)

			fetched := s.do(t, http.MethodGet, created.Header().Get("Location"), "")
			require.Equal(t, http.StatusOK, fetched.Code)

			dto := decodeTodo(t, fetched)
			assert.Equal(t, decodeTodo(t, created), dto)
			assert.Equal(t, in.title, dto.Title)
			assert.Equal(t, in.completed, dto.Completed)
		})
	}
}

func TestCreateTodo_MissingTitle(t *testing.T) {
	bodies := map[string]string{
		"empty body":   "",
		"empty object": `{}`,
		"null title":   `{"title":null}`,
		"empty title":  `{"title":""}`,
		"only status":  `{"completed":true}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			s := newTestServer(t)

			w := s.do(t, http.MethodPost, mountPath, body)
			assertError(t, w, http.StatusBadRequest, "Missing 'title' in request body")

			list := s.do(t, http.MethodGet, mountPath, "")
			assert.JSONEq(t, `[]`, list.Body.String(), "no record may be created")
		})
	}
}

func TestCreateTodo_InvalidBody(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, mountPath, `{"title":`)
	assertError(t, w, http.StatusBadRequest, "Invalid JSON in request body")

	w = s.do(t, http.MethodPost, mountPath, `{"title":123}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid request body: title: ")
}

func TestListTodos(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, mountPath, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	s.do(t, http.MethodPost, mountPath, `{"title":"first"}`)
	s.do(t, http.MethodPost, mountPath, `{"title":"second","completed":true}`)

	w = s.do(t, http.MethodGet, mountPath, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[
		{"id":1,"title":"first","completed":false},
		{"id":2,"title":"second","completed":true}
	]`, w.Body.String())
}

func TestItemEndpoints_InvalidID(t *testing.T) {
	for _, method := range []string{http.MethodGet, http.MethodPatch, http.MethodDelete} {
		for _, id := range []string{"abc", "1.5", "1e3", "0x10", "12abc"} {
			t.Run(method+" "+id, func(t *testing.T) {
				s := newTestServer(t)

				w := s.do(t, method, mountPath+"/"+id, `{"title":"x"}`)

				assertError(t, w, http.StatusNotFound, "Invalid id")
				assert.Zero(t, s.repo.calls.Load(), "store must not be touched")
			})
		}
	}
}

func TestItemEndpoints_NotFound(t *testing.T) {
	for _, method := range []string{http.MethodGet, http.MethodPatch, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			s := newTestServer(t)

			w := s.do(t, method, mountPath+"/42", `{"title":"x"}`)
			assertError(t, w, http.StatusNotFound, "Todo doesn't exist")
		})
	}
}

func TestUpdateTodo(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantTodo   handler.TodoDTO
		wantMsg    string
	}{
		{
			name:       "title only",
			body:       `{"title":"Buy oat milk"}`,
			wantStatus: http.StatusOK,
			wantTodo:   handler.TodoDTO{ID: 1, Title: "Buy oat milk", Completed: true},
		},
		{
			name:       "completed false alone",
			body:       `{"completed":false}`,
			wantStatus: http.StatusOK,
			wantTodo:   handler.TodoDTO{ID: 1, Title: "Buy milk", Completed: false},
		},
		{
			name:       "both fields",
			body:       `{"title":"Done","completed":false}`,
			wantStatus: http.StatusOK,
			wantTodo:   handler.TodoDTO{ID: 1, Title: "Done", Completed: false},
		},
		{
			name:       "empty object",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Request body must content either 'title' or 'completed'",
		},
		{
			name:       "nulls only",
			body:       `{"title":null,"completed":null}`,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Request body must content either 'title' or 'completed'",
		},
		{
			name:       "empty body",
			body:       "",
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Request body must content either 'title' or 'completed'",
		},
		{
			name:       "empty title",
			body:       `{"title":""}`,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "'title' must not be empty",
		},
		{
			name:       "malformed JSON",
			body:       `{"completed":`,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Invalid JSON in request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			created := s.do(t, http.MethodPost, mountPath, `{"title":"Buy milk","completed":true}`)
			require.Equal(t, http.StatusCreated, created.Code)

			w := s.do(t, http.MethodPatch, mountPath+"/1", tt.body)

			if tt.wantMsg != "" {
				assertError(t, w, tt.wantStatus, tt.wantMsg)

				unchanged := s.do(t, http.MethodGet, mountPath+"/1", "")
				assert.JSONEq(t, created.Body.String(), unchanged.Body.String())
				return
			}

			require.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantTodo, decodeTodo(t, w))

			fetched := s.do(t, http.MethodGet, mountPath+"/1", "")
			assert.Equal(t, tt.wantTodo, decodeTodo(t, fetched))
		})
	}
}

func TestDeleteTodo(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodPost, mountPath, `{"title":"doomed"}`)

	w := s.do(t, http.MethodDelete, mountPath+"/1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = s.do(t, http.MethodGet, mountPath+"/1", "")
	assertError(t, w, http.StatusNotFound, "Todo doesn't exist")
}

func TestTitleIsSanitized(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, mountPath, `{"title":"<script>alert('x')</script>Buy <b onclick=\"evil()\">milk</b>"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	for _, res := range []*httptest.ResponseRecorder{w, s.do(t, http.MethodGet, mountPath+"/1", "")} {
		title := decodeTodo(t, res).Title
		assert.NotContains(t, title, "<script")
		assert.NotContains(t, title, "onclick")
		assert.Contains(t, title, "Buy")
		assert.Contains(t, title, "milk")
	}
}

func TestTitleIsSanitized_PlainPunctuationUnchanged(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, mountPath, `{"title":"Tom's \"salt & pepper\" list"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	want := `Tom's "salt & pepper" list`
	assert.Equal(t, want, decodeTodo(t, w).Title)

	w = s.do(t, http.MethodGet, mountPath, "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []handler.TodoDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, want, list[0].Title)
}

func TestCreateTodo_BodyOverReaderLimit(t *testing.T) {
	store, err := sqlite.NewMemoryStore(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	inner := mount(todo.NewService(store))
	limited := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, 16)
		inner.ServeHTTP(w, r)
	})

	req := httptest.NewRequest(http.MethodPost, mountPath, strings.NewReader(`{"title":"`+strings.Repeat("a", 64)+`"}`))
	w := httptest.NewRecorder()
	limited.ServeHTTP(w, req)

	assertError(t, w, http.StatusRequestEntityTooLarge, "request body exceeds size limit")

	todos, err := store.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, todos)
}

func TestStoreFailure_ReturnsGenericServerError(t *testing.T) {
	router := mount(todo.NewService(failingRepo{}))

	requests := []struct {
		method, target, body string
	}{
		{http.MethodGet, mountPath, ""},
		{http.MethodPost, mountPath, `{"title":"x"}`},
		{http.MethodGet, mountPath + "/1", ""},
		{http.MethodPatch, mountPath + "/1", `{"title":"x"}`},
		{http.MethodDelete, mountPath + "/1", ""},
	}

	for _, tc := range requests {
		t.Run(tc.method+" "+tc.target, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.target, strings.NewReader(tc.body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assertError(t, w, http.StatusInternalServerError, "server error")
			assert.NotContains(t, w.Body.String(), "connection refused")
		})
	}
}

// vanishingRepo finds every todo but reports it gone on update, as if
// another request deleted it in between.
type vanishingRepo struct{ failingRepo }

func (vanishingRepo) FindByID(_ context.Context, id int64) (*domain.Todo, error) {
	return &domain.Todo{ID: id, Title: "ghost"}, nil
}

func (vanishingRepo) Update(_ context.Context, p domain.UpdateTodoParams) (*domain.Todo, error) {
	return nil, domain.ErrTodoNotFound
}

func TestUpdateTodo_DeletedConcurrently(t *testing.T) {
	router := mount(todo.NewService(vanishingRepo{}))

	req := httptest.NewRequest(http.MethodPatch, mountPath+"/7", strings.NewReader(`{"completed":true}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assertError(t, w, http.StatusNotFound, "Todo doesn't exist")
}
