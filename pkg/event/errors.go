package event

import (
	"errors"
	"fmt"
)

// ErrValidation is matched by every ValidationError.
var ErrValidation = errors.New("invalid event parameter")

// ValidationError reports one out-of-range event field.
// Several of them may be combined with errors.Join when a single call
// has more than one bad field.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v: %s", e.Field, e.Value, e.Reason)
}

// Unwrap makes errors.Is(err, ErrValidation) succeed.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// fieldErrors collects ValidationErrors for a single event.
type fieldErrors []error

func (fe *fieldErrors) add(field string, value any, reason string) {
	*fe = append(*fe, &ValidationError{Field: field, Value: value, Reason: reason})
}

// checkRange records an error unless min <= value <= max.
func (fe *fieldErrors) checkRange(field string, value, min, max int) {
	if value < min || value > max {
		fe.add(field, value, fmt.Sprintf("must be between %d and %d", min, max))
	}
}

func (fe *fieldErrors) checkTick(field string, value int) {
	if value < 0 {
		fe.add(field, value, "must not be negative")
	}
}

func (fe fieldErrors) err() error {
	return errors.Join(fe...)
}
