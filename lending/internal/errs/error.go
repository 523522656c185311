package errs

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrOutOfStock   = errors.New("no available copies")
	ErrInvalidState = errors.New("invalid state")
	// ErrAlreadyReturned is also an ErrInvalidState.
	ErrAlreadyReturned = fmt.Errorf("loan already returned: %w", ErrInvalidState)
	ErrValidation      = errors.New("validation failed")
)

type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrValidation, e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Expected reports whether err is a recoverable business outcome rather than caller misuse.
func Expected(err error) bool {
	return errors.Is(err, ErrOutOfStock) || errors.Is(err, ErrInvalidState)
}
