package store

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound marks an operation that targeted a nonexistent row.
var ErrNotFound = errors.New("not found")

// ErrDuplicateCode marks a unique-constraint breach on the medicine code.
var ErrDuplicateCode = errors.New("duplicate medicine code")

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func validationErr(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// isUniqueViolation matches the driver's unique-constraint failure message.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
