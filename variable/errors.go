package variable

import (
	"errors"
	"fmt"
)

var (
	// ErrTypeMismatch is returned when a value does not match a descriptor's kind.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrBounds is returned when a bound or value would violate min <= value <= max.
	ErrBounds = errors.New("value out of bounds")
	// ErrBuiltinTier is returned when callers try to modify the builtin constraint tier.
	ErrBuiltinTier = errors.New("builtin constraints cannot be modified")
	// ErrNegativeError is returned when a parameter uncertainty is negative.
	ErrNegativeError = errors.New("standard deviation must be non-negative")
)

// BoundsError describes a rejected bound or value.
type BoundsError struct {
	Parameter string
	Value     float64
	Min       float64
	Max       float64
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("parameter %q: value %g outside [%g, %g]", e.Parameter, e.Value, e.Min, e.Max)
}

// Unwrap allows errors.Is(err, ErrBounds).
func (e *BoundsError) Unwrap() error { return ErrBounds }
