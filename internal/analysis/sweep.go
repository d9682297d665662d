package analysis

import (
	"errors"

	"github.com/alexiusacademia/gotruss/internal/truss"
)

// SweepPoint is the load capacity for one load direction
type SweepPoint struct {
	Angle    float64 // radians
	Load     float64
	Critical []string
}

// SweepLoadAngle solves t once per load direction. A direction the truss has
// no load path for gets a zero capacity; any other failure ends the sweep.
func SweepLoadAngle(t *truss.Truss, opts Options, angles []float64) ([]SweepPoint, error) {
	points := make([]SweepPoint, 0, len(angles))
	for _, a := range angles {
		o := opts
		o.LoadAngle = a
		sol, err := Solve(t, o)
		switch {
		case errors.Is(err, ErrNoLoadPath):
			points = append(points, SweepPoint{Angle: a})
		case err != nil:
			return nil, err
		default:
			points = append(points, SweepPoint{Angle: a, Load: sol.Load, Critical: sol.Critical})
		}
	}
	return points, nil
}
