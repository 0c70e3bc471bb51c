package record

import (
	"errors"
	"fmt"
)

// ErrValidation matches every *ValidationError via errors.Is.
var ErrValidation = errors.New("validation error")

// ValidationError reports a missing, mistyped or out of domain field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func outOfRange(field string, min, max float64) error {
	return &ValidationError{
		Field:  field,
		Reason: fmt.Sprintf("must be between %v and %v", min, max),
	}
}
