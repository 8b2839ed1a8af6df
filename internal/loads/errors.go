package loads

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrNotFound is returned when the referenced load or call does not exist.
	ErrNotFound = errors.New("loads: not found")

	// ErrDuplicateLoadID is returned when a write would produce two records
	// with the same human-facing load_id.
	ErrDuplicateLoadID = errors.New("loads: duplicate load_id")

	// ErrInvalidArgument covers malformed service inputs that are not
	// field-level validation failures.
	ErrInvalidArgument = errors.New("loads: invalid argument")
)

// ValidationError carries field-level messages for a rejected write.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("validation failed: ")
	for i, k := range keys {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(e.Fields[k])
	}
	return b.String()
}

func newValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

func (e *ValidationError) add(field, msg string) {
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
