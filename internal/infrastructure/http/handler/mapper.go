package handler

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/rezkam/todo/internal/domain"
)

// titlePolicy strips scripts, event handlers and other active markup from titles.
// bluemonday policies are safe for concurrent use once built.
var titlePolicy = bluemonday.UGCPolicy()

// textEntities reverts the escaping the policy applies to plain punctuation.
// "<" and ">" stay escaped.
var textEntities = strings.NewReplacer("&#39;", "'", "&#34;", `"`, "&amp;", "&")

// TodoDTO is the wire representation of a todo.
type TodoDTO struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// MapTodoToDTO converts a domain todo to its wire form, sanitizing the title.
func MapTodoToDTO(todo *domain.Todo) TodoDTO {
	return TodoDTO{
		ID:        todo.ID,
		Title:     sanitizeTitle(todo.Title),
		Completed: todo.Completed,
	}
}

// MapTodosToDTO converts a list of todos. The result is never nil.
func MapTodosToDTO(todos []domain.Todo) []TodoDTO {
	dtos := make([]TodoDTO, 0, len(todos))
	for i := range todos {
		dtos = append(dtos, MapTodoToDTO(&todos[i]))
	}
	return dtos
}

func sanitizeTitle(title string) string {
	return unescapeText(titlePolicy.Sanitize(title))
}

// unescapeText applies textEntities to text between tags. Sanitized output
// only carries a literal '<' or '>' as a tag delimiter, so attribute values
// keep their escaping.
func unescapeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for len(s) > 0 {
		start := strings.IndexByte(s, '<')
		if start < 0 {
			b.WriteString(textEntities.Replace(s))
			break
		}
		b.WriteString(textEntities.Replace(s[:start]))

		end := strings.IndexByte(s[start:], '>')
		if end < 0 {
			b.WriteString(s[start:])
			break
		}
		b.WriteString(s[start : start+end+1])
		s = s[start+end+1:]
	}
	return b.String()
}
