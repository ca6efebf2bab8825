// Package fixtures loads seed todos from YAML files.
//
// The expected document shape is:
//
//	todos:
//	  - title: Buy milk
//	  - title: Walk the dog
//	    completed: true
package fixtures

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rezkam/todo/internal/application/todo"
	"github.com/rezkam/todo/internal/domain"
)

// ErrEmptyFixture is returned when a document contains no todos.
var ErrEmptyFixture = errors.New("fixture contains no todos")

type document struct {
	Todos []entry `yaml:"todos"`
}

type entry struct {
	Title     string `yaml:"title"`
	Completed bool   `yaml:"completed"`
}

// Load parses a fixture document from r.
func Load(r io.Reader) ([]domain.NewTodo, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyFixture
		}
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}
	if len(doc.Todos) == 0 {
		return nil, ErrEmptyFixture
	}

	todos := make([]domain.NewTodo, 0, len(doc.Todos))
	for i, e := range doc.Todos {
		title, err := domain.NewTitle(e.Title)
		if err != nil {
			return nil, fmt.Errorf("todo #%d: %w", i+1, err)
		}
		todos = append(todos, domain.NewTodo{Title: title.String(), Completed: e.Completed})
	}
	return todos, nil
}

// LoadFile reads and parses the fixture file at path.
func LoadFile(path string) ([]domain.NewTodo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixture: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Seed inserts todos in order and returns the created records.
// It stops at the first failure; todos inserted before it are kept.
func Seed(ctx context.Context, svc *todo.Service, todos []domain.NewTodo) ([]domain.Todo, error) {
	created := make([]domain.Todo, 0, len(todos))
	for _, t := range todos {
		c, err := svc.InsertTodo(ctx, t)
		if err != nil {
			return created, fmt.Errorf("failed to seed %q: %w", t.Title, err)
		}
		created = append(created, *c)
	}
	slog.InfoContext(ctx, "fixtures seeded", "count", len(created))
	return created, nil
}
