package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/alexiusacademia/gotruss/internal/truss"
)

// Row labels one joint equilibrium equation
type Row struct {
	Node string
	Axis truss.Axis
}

// Column labels one unknown: a member force or a support reaction
type Column struct {
	Member   string         // set for member columns
	Reaction truss.Reaction // set for reaction columns
}

// IsMember reports whether the column is a member force
func (c Column) IsMember() bool { return c.Member != "" }

// System is the joint equilibrium system M·f = L.
// Columns hold the member forces first, then the support reactions.
type System struct {
	M *mat.Dense
	L *mat.VecDense

	Rows    []Row
	Columns []Column

	NumMembers   int
	NumReactions int
}

// BuildSystem assembles the equilibrium equations of t with a total load
// split evenly over the load nodes. angle is the load direction in radians
// (-π/2 points straight down).
//
// At every node: Σ member forces + reactions + external load = 0, with
// tension pulling the node towards the far end of the member. The external
// load is moved to the right-hand side.
func BuildSystem(t *truss.Truss, loads LoadNodes, total, angle float64) (*System, error) {
	if loads.Count() == 0 {
		return nil, &DegenerateGeometryError{"no load nodes"}
	}

	nodes := t.Nodes()
	members := t.Members()
	if len(members) == 0 {
		return nil, &DegenerateGeometryError{"truss has no members"}
	}

	index := make(map[string]int, len(nodes))
	sys := &System{NumMembers: len(members)}
	for i, n := range nodes {
		index[n.ID] = i
		sys.Rows = append(sys.Rows, Row{n.ID, truss.AxisX}, Row{n.ID, truss.AxisY})
	}
	for _, m := range members {
		sys.Columns = append(sys.Columns, Column{Member: m.ID})
	}
	for _, n := range nodes {
		for _, axis := range []truss.Axis{truss.AxisX, truss.AxisY} {
			if n.Supported(axis) {
				sys.Columns = append(sys.Columns, Column{Reaction: truss.Reaction{Node: n.ID, Axis: axis}})
				sys.NumReactions++
			}
		}
	}

	sys.M = mat.NewDense(len(sys.Rows), len(sys.Columns), nil)
	sys.L = mat.NewVecDense(len(sys.Rows), nil)

	for j, m := range members {
		length := t.Length(m)
		if length == 0 || math.IsNaN(length) {
			return nil, &DegenerateGeometryError{fmt.Sprintf("member %s (%s-%s) has zero length", m.ID, m.A, m.B)}
		}
		a, _ := t.Node(m.A)
		b, _ := t.Node(m.B)
		cx := (b.X - a.X) / length
		cy := (b.Y - a.Y) / length

		ia, ib := index[m.A], index[m.B]
		sys.M.Set(2*ia, j, cx)
		sys.M.Set(2*ia+1, j, cy)
		sys.M.Set(2*ib, j, -cx)
		sys.M.Set(2*ib+1, j, -cy)
	}

	for j := sys.NumMembers; j < len(sys.Columns); j++ {
		r := sys.Columns[j].Reaction
		sys.M.Set(2*index[r.Node]+int(r.Axis), j, 1)
	}

	share := loads.Share(total)
	dx, dy := direction(angle)
	for _, id := range loads.Nodes {
		i := index[id]
		if dx != 0 {
			sys.L.SetVec(2*i, -share*dx)
		}
		if dy != 0 {
			sys.L.SetVec(2*i+1, -share*dy)
		}
	}

	return sys, nil
}

// Size returns the number of equations and unknowns
func (s *System) Size() (equations, unknowns int) {
	return len(s.Rows), len(s.Columns)
}

// direction returns the unit vector of angle with round-off snapped to zero,
// so a vertical load leaves the x rows exactly empty
func direction(angle float64) (dx, dy float64) {
	dx, dy = math.Cos(angle), math.Sin(angle)
	if math.Abs(dx) < 1e-12 {
		dx = 0
	}
	if math.Abs(dy) < 1e-12 {
		dy = 0
	}
	return dx, dy
}
