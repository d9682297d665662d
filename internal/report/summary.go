// Package report turns a solved truss into tables for the terminal,
// spreadsheets and PDF files.
package report

import (
	"math"

	"github.com/alexiusacademia/gotruss/internal/truss"
)

// Member states
const (
	Tension     = "tension"
	Compression = "compression"
	ZeroForce   = "zero"
)

// MemberRow is one member of the force table
type MemberRow struct {
	ID           string  `json:"id"`
	A            string  `json:"a"`
	B            string  `json:"b"`
	Length       float64 `json:"length"`
	Angle        float64 `json:"angle_deg"`
	Force        float64 `json:"force"`         // under the applied load
	FailureForce float64 `json:"failure_force"` // at the load capacity
	State        string  `json:"state"`
	Critical     bool    `json:"critical"`
}

// ReactionRow is one support reaction
type ReactionRow struct {
	Node  string  `json:"node"`
	Axis  string  `json:"axis"`
	Force float64 `json:"force"`
}

// Summary collects everything a report shows
type Summary struct {
	Name          string `json:"name"`
	Nodes         int    `json:"node_count"`
	Members       int    `json:"member_count"`
	Displacements int    `json:"displacements"`

	AppliedLoad  float64 `json:"applied_load"`
	LoadCapacity float64 `json:"load_capacity"`
	Efficiency   float64 `json:"efficiency"`
	TotalLength  float64 `json:"total_length"`

	Rank     int     `json:"rank"`
	Residual float64 `json:"residual"`

	LoadNodes    []string      `json:"load_nodes"`
	MemberRows   []MemberRow   `json:"members"`
	ReactionRows []ReactionRow `json:"reactions"`
}

// NewSummary builds the report tables in model order
func NewSummary(t *truss.Truss, s *truss.Solution) *Summary {
	sum := &Summary{
		Name:          t.Name,
		Nodes:         t.NumNodes(),
		Members:       t.NumMembers(),
		Displacements: t.NumDisplacements(),
		AppliedLoad:   s.AppliedLoad,
		LoadCapacity:  s.Load,
		Efficiency:    s.Efficiency,
		TotalLength:   t.TotalLength(),
		Rank:          s.Rank,
		Residual:      s.Residual,
	}

	// Forces below this magnitude are reported as zero-force members
	zero := 1e-9 * math.Max(1, s.AppliedLoad)

	for _, m := range t.Members() {
		f := s.MemberForces[m.ID]
		row := MemberRow{
			ID:           m.ID,
			A:            m.A,
			B:            m.B,
			Length:       t.Length(m),
			Angle:        t.Angle(m) * 180 / math.Pi,
			Force:        f,
			FailureForce: s.FailureForces[m.ID],
			Critical:     s.IsCritical(m.ID),
		}
		switch {
		case math.Abs(f) < zero:
			row.State = ZeroForce
		case f > 0:
			row.State = Tension
		default:
			row.State = Compression
		}
		sum.MemberRows = append(sum.MemberRows, row)
	}

	for _, n := range t.Nodes() {
		if _, ok := s.NodeLoads[n.ID]; ok {
			sum.LoadNodes = append(sum.LoadNodes, n.ID)
		}
		for _, axis := range []truss.Axis{truss.AxisX, truss.AxisY} {
			r := truss.Reaction{Node: n.ID, Axis: axis}
			if v, ok := s.Reactions[r]; ok {
				sum.ReactionRows = append(sum.ReactionRows, ReactionRow{Node: n.ID, Axis: axis.String(), Force: v})
			}
		}
	}

	return sum
}

// CriticalMembers returns the ids of the governing members
func (s *Summary) CriticalMembers() []string {
	var ids []string
	for _, r := range s.MemberRows {
		if r.Critical {
			ids = append(ids, r.ID)
		}
	}
	return ids
}
