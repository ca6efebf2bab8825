// Package request decodes and validates JSON request bodies.
package request

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Request schemas, compiled once at startup.
var (
	CreateTodoSchema = mustCompile("schemas/create_todo.json")
	UpdateTodoSchema = mustCompile("schemas/update_todo.json")
)

var (
	// ErrInvalidJSON is returned when the body is not a single JSON document.
	ErrInvalidJSON = errors.New("invalid JSON")

	// ErrBodyTooLarge is returned when reading the body hits the size limit.
	ErrBodyTooLarge = errors.New("request body too large")
)

// ValidationError reports the first schema violation found in a body.
type ValidationError struct {
	Field string
	Issue string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Issue)
}

// CreateTodo is the body of POST /.
// Pointer fields distinguish an absent or null member from a zero value.
type CreateTodo struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}

// UpdateTodo is the body of PATCH /{id}.
type UpdateTodo struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}

func mustCompile(name string) *jsonschema.Schema {
	data, err := schemaFS.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("read schema %s: %v", name, err))
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
		panic(fmt.Sprintf("add schema %s: %v", name, err))
	}
	return compiler.MustCompile(name)
}

// Decode reads the request body, validates it against schema and unmarshals it into dst.
// An empty body is treated as an empty object.
func Decode(r *http.Request, schema *jsonschema.Schema, dst any) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return ErrBodyTooLarge
		}
		return fmt.Errorf("failed to read request body: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}

	doc, err := parseDocument(body)
	if err != nil {
		return err
	}

	if err := schema.Validate(doc); err != nil {
		return toValidationError(err)
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return nil
}

// parseDocument decodes exactly one JSON value, keeping numbers exact for the validator.
func parseDocument(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after document", ErrInvalidJSON)
	}
	return doc, nil
}

func toValidationError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &ValidationError{Field: "body", Issue: err.Error()}
	}

	leaf := firstLeaf(ve)
	return &ValidationError{
		Field: fieldName(leaf.InstanceLocation),
		Issue: leaf.Message,
	}
}

// firstLeaf walks down to the most specific cause.
func firstLeaf(ve *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return ve
}

// fieldName turns a JSON pointer such as "/title" into "title".
func fieldName(pointer string) string {
	name := strings.TrimPrefix(pointer, "/")
	if name == "" {
		return "body"
	}
	name = strings.ReplaceAll(name, "/", ".")
	name = strings.ReplaceAll(name, "~1", "/")
	return strings.ReplaceAll(name, "~0", "~")
}
