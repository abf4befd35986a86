package demorequest

import (
	"fmt"
	"strings"
)

// FieldError is one failed rule. Path is empty for body-level problems.
type FieldError struct {
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

func (f FieldError) String() string {
	if f.Path == "" {
		return f.Message
	}
	return fmt.Sprintf("%s at %q", f.Message, f.Path)
}

// ValidationError aggregates every failed rule of one candidate.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.String())
	}
	return "Validation error: " + strings.Join(parts, "; ")
}

// HasField reports whether path failed at least one rule.
func (e *ValidationError) HasField(path string) bool {
	for _, f := range e.Fields {
		if f.Path == path {
			return true
		}
	}
	return false
}
