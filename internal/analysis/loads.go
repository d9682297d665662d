package analysis

import (
	"fmt"

	"github.com/alexiusacademia/gotruss/internal/truss"
)

// LoadNodes is the result of roadway load distribution
type LoadNodes struct {
	Left  string   // leftmost roadway node (support)
	Right string   // rightmost roadway node (support)
	Nodes []string // interior roadway nodes receiving live load, model order
}

// Count returns the number of load-receiving nodes
func (l LoadNodes) Count() int { return len(l.Nodes) }

// Share returns the part of a total load carried by each load node
func (l LoadNodes) Share(total float64) float64 {
	if len(l.Nodes) == 0 {
		return 0
	}
	return total / float64(len(l.Nodes))
}

// Contains reports whether the node receives load
func (l LoadNodes) Contains(id string) bool {
	for _, n := range l.Nodes {
		if n == id {
			return true
		}
	}
	return false
}

// SelectLoadNodes picks the roadway nodes (Y == 0) that receive the live
// load: every roadway node except the leftmost and rightmost ones, which are
// reported as Left and Right.
func SelectLoadNodes(t *truss.Truss) (LoadNodes, error) {
	var roadway []truss.Node
	for _, n := range t.Nodes() {
		if n.Y == 0 {
			roadway = append(roadway, n)
		}
	}
	if len(roadway) == 0 {
		return LoadNodes{}, &ConfigurationError{"no roadway nodes (y = 0)"}
	}

	left, right := roadway[0], roadway[0]
	for _, n := range roadway[1:] {
		if n.X < left.X {
			left = n
		}
		if n.X > right.X {
			right = n
		}
	}

	result := LoadNodes{Left: left.ID, Right: right.ID}
	for _, n := range roadway {
		if n.ID != left.ID && n.ID != right.ID {
			result.Nodes = append(result.Nodes, n.ID)
		}
	}
	if len(result.Nodes) == 0 {
		return result, &ConfigurationError{
			fmt.Sprintf("at least one interior roadway node is required between %s and %s", left.ID, right.ID),
		}
	}
	return result, nil
}

// ValidateSupports checks the support layout against the selected roadway ends
func ValidateSupports(t *truss.Truss, loads LoadNodes) error {
	for _, id := range []string{loads.Left, loads.Right} {
		n, ok := t.Node(id)
		if !ok || !n.SupportY {
			return &ConfigurationError{fmt.Sprintf("unpinned support: roadway end node %s must be supported vertically", id)}
		}
	}

	for _, n := range t.Nodes() {
		if n.ID == loads.Left || n.ID == loads.Right {
			continue
		}
		if n.Y > 0 && !n.IsFree() {
			return &ConfigurationError{fmt.Sprintf("only support nodes may be pinned: node %s at (%g, %g) has a support", n.ID, n.X, n.Y)}
		}
	}
	return nil
}
