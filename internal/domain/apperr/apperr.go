// Package apperr defines the error kinds surfaced by the core services.
// Handlers translate them to HTTP statuses; services wrap them with context
// using fmt.Errorf and %w so errors.Is keeps working across layers.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks a missing or malformed input. No state was changed.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a lookup of an unknown document or recipe reference.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks an operation rejected because of current state,
	// e.g. logging consumption for an already consumed meal plan.
	ErrConflict = errors.New("conflict")
)

// Invalidf wraps ErrValidation with a formatted detail message.
func Invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFoundf wraps ErrNotFound with a formatted detail message.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Conflictf wraps ErrConflict with a formatted detail message.
func Conflictf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}
