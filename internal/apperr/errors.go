// Package apperr defines the error taxonomy shared by the scoring, engine,
// repository and service layers. Handlers map these onto HTTP status codes.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means a referenced lesson, path or badge does not exist.
	ErrNotFound = errors.New("not found")
	// ErrStateConflict means a concurrent writer changed user state between
	// read and write. It is retried internally and never surfaced to callers.
	ErrStateConflict = errors.New("state conflict")
)

// ValidationError reports malformed caller input, such as a score outside
// [0,100] or an activity with nothing to grade.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func Validationf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
