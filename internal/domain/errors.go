package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicateKey     = errors.New("duplicate entry detected")
	ErrStoreUnavailable = errors.New("database not connected")
)

// ValidationError carries a human-readable message per offending field.
type ValidationError struct {
	fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{fields: make(map[string]string)}
}

// ValidationErrorFrom wraps an existing field map; an empty map yields nil.
func ValidationErrorFrom(fields map[string]string) *ValidationError {
	if len(fields) == 0 {
		return nil
	}
	ve := NewValidationError()
	for k, v := range fields {
		ve.fields[k] = v
	}
	return ve
}

// IsValidationError unwraps err to a *ValidationError, or returns nil.
func IsValidationError(err error) *ValidationError {
	if err == nil {
		return nil
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}

func (e *ValidationError) Add(field, msg string) {
	if _, ok := e.fields[field]; ok {
		return
	}
	e.fields[field] = msg
}

func (e *ValidationError) Fields() map[string]string {
	return e.fields
}

// OrNil returns nil when no field was added, so callers can return it as an error directly.
func (e *ValidationError) OrNil() error {
	if len(e.fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.fields))
	for k := range e.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.fields[k]))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}
