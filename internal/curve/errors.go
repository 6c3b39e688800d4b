package curve

import (
	"errors"
	"fmt"
)

// Domain errors shared by the curve, tunnel and session packages.
var (
	// ErrInvalidConfiguration indicates a parameter outside its supported range.
	ErrInvalidConfiguration = errors.New("lissatunnel: invalid configuration")

	// ErrDegenerateGeometry indicates a curve sample with no usable tangent.
	// It is handled by frame carry-over and never returned by a public setter.
	ErrDegenerateGeometry = errors.New("lissatunnel: degenerate geometry")
)

// ConfigError wraps ErrInvalidConfiguration with the offending field.
type ConfigError struct {
	Field   string
	Value   float64
	Reason  string
	Wrapped error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s=%g %s", e.Wrapped.Error(), e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return e.Wrapped
}

// Invalid builds a ConfigError for field.
func Invalid(field string, value float64, reason string) error {
	return &ConfigError{Field: field, Value: value, Reason: reason, Wrapped: ErrInvalidConfiguration}
}
