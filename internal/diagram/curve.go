package diagram

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
)

// DrawCapacityCurve plots load capacity against load direction (degrees).
// The angles are expected in ascending, evenly spaced order.
func DrawCapacityCurve(angles, loads []float64, height int) string {
	if len(loads) == 0 || len(angles) != len(loads) {
		return ""
	}
	if height < 3 {
		height = 12
	}

	caption := fmt.Sprintf("load capacity, load direction %.1f° to %.1f°", angles[0], angles[len(angles)-1])
	return asciigraph.Plot(loads,
		asciigraph.Height(height),
		asciigraph.Offset(3),
		asciigraph.Precision(1),
		asciigraph.Caption(caption),
	) + "\n"
}
