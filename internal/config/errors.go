package config

import (
	"errors"
	"fmt"
)

var (
	// ErrConfigInvalid is returned when the configuration fails validation.
	ErrConfigInvalid = errors.New("invalid configuration")
)

// ValidationError describes a single invalid field.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid config: field %q with value %v: %s", e.Field, e.Value, e.Reason)
}

// ViperError represents an error from Viper.
type ViperError struct {
	Operation string
	Err       error
}

func (e *ViperError) Error() string {
	return fmt.Sprintf("viper error during %s: %v", e.Operation, e.Err)
}

func (e *ViperError) Unwrap() error {
	return e.Err
}
