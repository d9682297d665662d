package analysis

import "math"

// DefaultCapacity is the force at which any member is deemed to fail
const DefaultCapacity = 500000.0

// Tie tolerances for critical members
const (
	DefaultRelTol = 1e-3
	DefaultAbsTol = 1e-3
)

// zeroForce is the magnitude below which a solved force vector is treated as
// carrying no load at all
const zeroForce = 1e-12

// CapacityResult holds the failure analysis of a unit-load force vector
type CapacityResult struct {
	MaxForce      float64   // largest |f| under unit load
	LoadCapacity  float64   // total load at which the governing member reaches capacity
	FailureForces []float64 // forces at LoadCapacity
	Critical      []int     // indices of the governing members
}

// ScaleToCapacity rescales a unit-load force vector so that the most heavily
// loaded member reaches capacity. Members within tolerance of the maximum
// magnitude are all reported as critical.
func ScaleToCapacity(unit []float64, capacity, relTol, absTol float64) (CapacityResult, error) {
	var fmax float64
	for _, f := range unit {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return CapacityResult{}, &NoLoadPathError{MaxForce: f}
		}
		fmax = math.Max(fmax, math.Abs(f))
	}
	if fmax < zeroForce {
		return CapacityResult{}, &NoLoadPathError{MaxForce: fmax}
	}

	res := CapacityResult{
		MaxForce:      fmax,
		LoadCapacity:  capacity / fmax,
		FailureForces: make([]float64, len(unit)),
	}
	for i, f := range unit {
		res.FailureForces[i] = f * res.LoadCapacity
		if isClose(math.Abs(f), fmax, relTol, absTol) {
			res.Critical = append(res.Critical, i)
		}
	}
	return res, nil
}

// Efficiency is load capacity per unit of total member length
func Efficiency(loadCapacity, totalLength float64) float64 {
	if totalLength <= 0 {
		return 0
	}
	return loadCapacity / totalLength
}

func isClose(a, b, relTol, absTol float64) bool {
	return math.Abs(a-b) <= absTol+relTol*math.Abs(b)
}
