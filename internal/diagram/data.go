// Package diagram draws trusses and their member forces, either as text for
// the terminal or as image files rendered with gonum/plot.
package diagram

import (
	"math"

	"github.com/alexiusacademia/gotruss/internal/truss"
)

// NodeMark is a joint as drawn on a diagram
type NodeMark struct {
	ID        string
	X, Y      float64
	Supported bool
	Loaded    bool
}

// MemberLine is a member as drawn on a diagram
type MemberLine struct {
	ID       string
	X1, Y1   float64
	X2, Y2   float64
	Force    float64 // + tension, - compression
	Critical bool
}

// State classifies the member force as tension, compression or zero
func (m MemberLine) State(zero float64) string {
	switch {
	case math.Abs(m.Force) <= zero:
		return "zero"
	case m.Force > 0:
		return "tension"
	default:
		return "compression"
	}
}

// TrussDiagramData holds everything needed to draw a truss
type TrussDiagramData struct {
	Title   string
	Nodes   []NodeMark
	Members []MemberLine

	// Forces at or below this magnitude are drawn as zero-force members
	ZeroForce float64
}

// NewTrussDiagramData collects the geometry of t and, when s is not nil, the
// member forces under the applied load
func NewTrussDiagramData(t *truss.Truss, s *truss.Solution) TrussDiagramData {
	data := TrussDiagramData{Title: t.Name, ZeroForce: 1e-9}
	if s != nil {
		data.ZeroForce = 1e-9 * math.Max(1, s.AppliedLoad)
	}

	for _, n := range t.Nodes() {
		mark := NodeMark{ID: n.ID, X: n.X, Y: n.Y, Supported: n.Supports() > 0}
		if s != nil {
			_, mark.Loaded = s.NodeLoads[n.ID]
		}
		data.Nodes = append(data.Nodes, mark)
	}

	for _, m := range t.Members() {
		a, _ := t.Node(m.A)
		b, _ := t.Node(m.B)
		line := MemberLine{ID: m.ID, X1: a.X, Y1: a.Y, X2: b.X, Y2: b.Y}
		if s != nil {
			line.Force = s.MemberForces[m.ID]
			line.Critical = s.IsCritical(m.ID)
		}
		data.Members = append(data.Members, line)
	}

	return data
}

// ForceBars returns the member forces in drawing order
func (d TrussDiagramData) ForceBars() []ForceBar {
	bars := make([]ForceBar, 0, len(d.Members))
	for _, m := range d.Members {
		bars = append(bars, ForceBar{ID: m.ID, Force: m.Force, Critical: m.Critical})
	}
	return bars
}

// bounds returns the bounding box of the nodes
func (d TrussDiagramData) bounds() (minX, minY, maxX, maxY float64) {
	if len(d.Nodes) == 0 {
		return 0, 0, 0, 0
	}
	minX, maxX = d.Nodes[0].X, d.Nodes[0].X
	minY, maxY = d.Nodes[0].Y, d.Nodes[0].Y
	for _, n := range d.Nodes[1:] {
		minX = math.Min(minX, n.X)
		maxX = math.Max(maxX, n.X)
		minY = math.Min(minY, n.Y)
		maxY = math.Max(maxY, n.Y)
	}
	return minX, minY, maxX, maxY
}
