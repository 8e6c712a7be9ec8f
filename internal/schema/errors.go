package schema

import (
	"fmt"
	"strings"
)

// FieldError is one field's validation failure.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError aggregates every field failure found in one request body.
// Handlers report it as a client error.
type ValidationError struct {
	Model  string
	Fields []FieldError
}

func (e *ValidationError) add(field, reason string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Reason: reason})
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Reason)
	}
	return fmt.Sprintf("invalid %s: %s", e.Model, strings.Join(parts, "; "))
}
