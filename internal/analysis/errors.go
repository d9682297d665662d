package analysis

import "errors"

// Error kinds, usable with errors.Is
var (
	ErrConfiguration      = errors.New("configuration error")
	ErrDegenerateGeometry = errors.New("degenerate geometry")
	ErrNoLoadPath         = errors.New("no load path")
)

// ConfigurationError reports a model that fails a structural precondition.
// It is returned before any matrix work.
type ConfigurationError struct {
	msg string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.msg
}

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// DegenerateGeometryError reports geometry the equilibrium matrix cannot be
// built from (zero-length members, no load nodes)
type DegenerateGeometryError struct {
	msg string
}

func (e *DegenerateGeometryError) Error() string {
	return "degenerate geometry: " + e.msg
}

func (e *DegenerateGeometryError) Is(target error) bool { return target == ErrDegenerateGeometry }

// NoLoadPathError reports a solved force vector that cannot be scaled to the
// member capacity
type NoLoadPathError struct {
	MaxForce float64
}

func (e *NoLoadPathError) Error() string {
	return "no load path: maximum member force is zero or not finite"
}

func (e *NoLoadPathError) Is(target error) bool { return target == ErrNoLoadPath }
