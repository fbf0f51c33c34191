package analysis

import (
	"errors"
	"fmt"
)

// ErrInvalidOption is the root of every input validation failure.
var ErrInvalidOption = errors.New("invalid option")

// ValidationError names the offending option.
type ValidationError struct {
	Option string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Option, e.Value, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidOption }

// Invalid builds a ValidationError.
func Invalid(option string, value any, reason string) error {
	return &ValidationError{Option: option, Value: value, Reason: reason}
}

// CheckRange validates an integer option against [lo, hi].
func CheckRange(option string, v, lo, hi int) error {
	if v < lo || v > hi {
		return Invalid(option, v, fmt.Sprintf("must be between %d and %d", lo, hi))
	}
	return nil
}
