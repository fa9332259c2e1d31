package segal

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidWindowSize is returned when WindowSize is below 1.
	ErrInvalidWindowSize = errors.New("window size must be at least 1")

	// ErrInvalidStep is returned when Step is below 1.
	ErrInvalidStep = errors.New("step must be at least 1")
)

// ConfigError describes a construction parameter that was rejected.
// Blocks are never built from a configuration that produced one.
type ConfigError struct {
	// Err is the sentinel describing the violated constraint.
	Err error

	// Field names the offending parameter.
	Field string

	// Value is the rejected value.
	Value int
}

func newConfigError(field string, value int, err error) *ConfigError {
	return &ConfigError{
		Err:   err,
		Field: field,
		Value: value,
	}
}

// Error implements the error interface.
func (ce *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s %d: %v", ce.Field, ce.Value, ce.Err)
}

// Unwrap returns the underlying sentinel error.
func (ce *ConfigError) Unwrap() error {
	return ce.Err
}
