package tunnel

import "github.com/san-kum/lissatunnel/internal/curve"

// Re-exported so callers of this package need not import curve for errors.
var (
	ErrInvalidConfiguration = curve.ErrInvalidConfiguration
	ErrDegenerateGeometry   = curve.ErrDegenerateGeometry
)
