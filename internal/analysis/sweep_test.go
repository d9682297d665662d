package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gotruss/internal/truss"
)

func TestSweepLoadAngle(t *testing.T) {
	points, err := SweepLoadAngle(fourNode(t), DefaultOptions(), []float64{-math.Pi / 2, 0, math.Pi / 2})
	require.NoError(t, err)
	require.Len(t, points, 3)

	// Straight down and straight up stress the post equally
	for _, p := range []SweepPoint{points[0], points[2]} {
		assert.InDelta(t, DefaultCapacity, p.Load, 1e-6)
		assert.Equal(t, []string{"BD"}, p.Critical)
	}

	// A horizontal load at B runs through the chord into the pinned support
	assert.Equal(t, 0.0, points[1].Angle)
	assert.InDelta(t, DefaultCapacity, points[1].Load, 1e-6)
	assert.Equal(t, []string{"AB"}, points[1].Critical)
}

func TestSweepLoadAngleNoLoadPath(t *testing.T) {
	tr := build(t,
		[]truss.Node{
			{ID: "A", X: 0, Y: 0, SupportY: true, SupportX: true},
			{ID: "B", X: 5, Y: 0},
			{ID: "C", X: 10, Y: 0, SupportY: true},
		},
		[][3]string{{"AC", "A", "C"}},
	)
	points, err := SweepLoadAngle(tr, DefaultOptions(), []float64{-math.Pi / 2, -math.Pi / 4})
	require.NoError(t, err)
	for _, p := range points {
		assert.Zero(t, p.Load)
		assert.Empty(t, p.Critical)
	}
}

func TestSweepLoadAngleStopsOnConfigurationError(t *testing.T) {
	tr := build(t,
		[]truss.Node{
			{ID: "A", X: 0, Y: 0, SupportY: true},
			{ID: "C", X: 10, Y: 0, SupportY: true},
			{ID: "D", X: 5, Y: 5},
		},
		[][3]string{{"AC", "A", "C"}, {"AD", "A", "D"}, {"DC", "D", "C"}},
	)
	_, err := SweepLoadAngle(tr, DefaultOptions(), []float64{0})
	assert.ErrorIs(t, err, ErrConfiguration)
}
