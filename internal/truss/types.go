package truss

import "fmt"

// Axis identifies a global direction in the plane of the truss
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// String returns "x" or "y"
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// Node represents a pin joint of the truss
type Node struct {
	ID string `json:"id"`

	// Position in the plane (roadway is at Y = 0)
	X float64 `json:"x"`
	Y float64 `json:"y"`

	// Supports - a reaction exists along each flagged axis
	SupportX bool `json:"support_x,omitempty"`
	SupportY bool `json:"support_y,omitempty"`

	// Load currently assigned to this node. Written only when a solution is
	// attached and cleared on every edit.
	Load float64 `json:"-"`
}

// Supports returns the number of active support axes (0, 1 or 2)
func (n Node) Supports() int {
	count := 0
	if n.SupportX {
		count++
	}
	if n.SupportY {
		count++
	}
	return count
}

// Supported reports whether the node has a reaction along axis
func (n Node) Supported(axis Axis) bool {
	if axis == AxisX {
		return n.SupportX
	}
	return n.SupportY
}

// IsFree reports whether the node has no support at all
func (n Node) IsFree() bool {
	return !n.SupportX && !n.SupportY
}

func (n Node) String() string {
	return fmt.Sprintf("Node %s at (%g, %g)", n.ID, n.X, n.Y)
}

// Member is an axial two-force element between two nodes.
// Endpoints are node ids; geometry is resolved through the owning Truss.
type Member struct {
	ID string `json:"id"`
	A  string `json:"a"`
	B  string `json:"b"`
}

// Connects reports whether the member joins nodes a and b in either order
func (m Member) Connects(a, b string) bool {
	return (m.A == a && m.B == b) || (m.A == b && m.B == a)
}

// Touches reports whether the node is one of the member's endpoints
func (m Member) Touches(node string) bool {
	return m.A == node || m.B == node
}

// Other returns the endpoint opposite to node
func (m Member) Other(node string) string {
	if m.A == node {
		return m.B
	}
	return m.A
}

// Reaction identifies a supported node/axis pair
type Reaction struct {
	Node string
	Axis Axis
}

func (r Reaction) String() string {
	return r.Node + "/" + r.Axis.String()
}

// Solution holds the results of a truss analysis. It is a separate value from
// the model and is only bound to it through Truss.Attach.
type Solution struct {
	// Applied total roadway load used for MemberForces and Reactions
	AppliedLoad float64

	// Member forces under AppliedLoad (+ tension, - compression)
	MemberForces map[string]float64

	// Member forces at the load capacity
	FailureForces map[string]float64

	// Support reactions under AppliedLoad
	Reactions map[Reaction]float64

	// Share of AppliedLoad assigned to each load node
	NodeLoads map[string]float64

	// Capacity
	Load       float64 // Maximum total roadway load before a member reaches capacity
	Efficiency float64 // Load per unit of total member length

	// Governing member ids, in model order
	Critical []string

	// Numerical diagnostics of the unit-load solve
	Rank     int
	Residual float64
}

// IsCritical reports whether the member governs the failure load
func (s *Solution) IsCritical(memberID string) bool {
	for _, id := range s.Critical {
		if id == memberID {
			return true
		}
	}
	return false
}

// VerticalReaction sums the y reactions
func (s *Solution) VerticalReaction() float64 {
	var sum float64
	for r, v := range s.Reactions {
		if r.Axis == AxisY {
			sum += v
		}
	}
	return sum
}

// HorizontalReaction sums the x reactions
func (s *Solution) HorizontalReaction() float64 {
	var sum float64
	for r, v := range s.Reactions {
		if r.Axis == AxisX {
			sum += v
		}
	}
	return sum
}
