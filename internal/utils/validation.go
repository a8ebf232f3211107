package utils

import (
	"errors"
	"math"
)

// Upper bounds keep request-driven work small.
const (
	MaxPrice      = 1e9
	MaxMultiplier = 100.0
	MaxChartSize  = 2000
	MinChartSize  = 100
	MaxCount      = 1_000_000_000
)

// ValidatePrice validates a mean or standard deviation expressed in dollars.
func ValidatePrice(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return errors.New("must be a finite number")
	}
	if v <= 0 {
		return errors.New("must be greater than zero")
	}
	if v > MaxPrice {
		return errors.New("too large (max 1000000000)")
	}
	return nil
}

// ValidateMultiplier validates a mean or standard deviation multiplier.
func ValidateMultiplier(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return errors.New("must be a finite number")
	}
	if v <= 0 {
		return errors.New("must be greater than zero")
	}
	if v > MaxMultiplier {
		return errors.New("too large (max 100)")
	}
	return nil
}

// ValidateCount validates a population or for-sale count.
func ValidateCount(n int) error {
	if n < 0 {
		return errors.New("must not be negative")
	}
	if n > MaxCount {
		return errors.New("too large (max 1000000000)")
	}
	return nil
}

// ValidateChartSize validates a chart width or height in pixels. Zero selects the default.
func ValidateChartSize(px int) error {
	if px == 0 {
		return nil
	}
	if px < MinChartSize || px > MaxChartSize {
		return errors.New("must be between 100 and 2000 pixels")
	}
	return nil
}

// ValidateFields runs each validator and collects failures keyed by field name.
func ValidateFields(values map[string]float64, validate func(float64) error, fieldErrors map[string][]string) map[string][]string {
	if fieldErrors == nil {
		fieldErrors = make(map[string][]string)
	}
	for field, v := range values {
		if err := validate(v); err != nil {
			fieldErrors[field] = append(fieldErrors[field], err.Error())
		}
	}
	return fieldErrors
}
