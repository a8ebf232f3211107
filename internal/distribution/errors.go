package distribution

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter matches every *InvalidParameterError via errors.Is.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrDimensionMismatch matches every *DimensionMismatchError via errors.Is.
	ErrDimensionMismatch = errors.New("dimension mismatch")
)

// InvalidParameterError reports a parameter outside its allowed range,
// such as a non-positive standard deviation or multiplier.
type InvalidParameterError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%g: %s", e.Field, e.Value, e.Reason)
}

func (e *InvalidParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}

// DimensionMismatchError reports sequences that were expected to be aligned
// but have different lengths.
type DimensionMismatchError struct {
	Operation string
	Lengths   []int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("%s: mismatched sequence lengths %v", e.Operation, e.Lengths)
}

func (e *DimensionMismatchError) Is(target error) bool {
	return target == ErrDimensionMismatch
}

func mustBePositive(field string, v float64) error {
	// NaN fails this comparison as well.
	if !(v > 0) {
		return &InvalidParameterError{Field: field, Value: v, Reason: "must be greater than zero"}
	}
	return nil
}
