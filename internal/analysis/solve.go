package analysis

import (
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/alexiusacademia/gotruss/internal/truss"
)

// DefaultLoadAngle points the roadway load straight down
const DefaultLoadAngle = -math.Pi / 2

// Options configures a truss analysis
type Options struct {
	AppliedLoad float64 // total roadway load for member forces and reactions
	Capacity    float64 // member force capacity
	LoadAngle   float64 // load direction (radians)

	RelTol float64 // critical member tolerances
	AbsTol float64
	Rcond  float64 // rank cut-off of the least squares solve

	Logger *slog.Logger
}

// DefaultOptions returns a unit reference load, straight down, with the
// standard capacity and tolerances
func DefaultOptions() Options {
	return Options{
		AppliedLoad: 1,
		Capacity:    DefaultCapacity,
		LoadAngle:   DefaultLoadAngle,
		RelTol:      DefaultRelTol,
		AbsTol:      DefaultAbsTol,
		Rcond:       DefaultRcond,
	}
}

func (o Options) validate() error {
	if !(o.AppliedLoad > 0) || math.IsInf(o.AppliedLoad, 0) {
		return fmt.Errorf("applied load must be positive and finite: %g", o.AppliedLoad)
	}
	if !(o.Capacity > 0) || math.IsInf(o.Capacity, 0) {
		return fmt.Errorf("member capacity must be positive and finite: %g", o.Capacity)
	}
	if o.RelTol < 0 || o.AbsTol < 0 || o.Rcond < 0 {
		return fmt.Errorf("tolerances must not be negative")
	}
	return nil
}

// Solve runs the full analysis of t: load distribution, validation,
// equilibrium assembly, least squares solve under unit load, capacity
// scaling and efficiency. The model is only read; the returned Solution can
// be bound to it with Truss.Attach.
func Solve(t *truss.Truss, opts Options) (*truss.Solution, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	loads, err := SelectLoadNodes(t)
	if err != nil {
		return nil, err
	}
	if err := ValidateSupports(t, loads); err != nil {
		return nil, err
	}

	// Unit load: the solution is linear in the load, everything else is a rescale
	sys, err := BuildSystem(t, loads, 1, opts.LoadAngle)
	if err != nil {
		return nil, err
	}
	eqs, unknowns := sys.Size()
	log.Debug("equilibrium system assembled",
		"truss", t.Name,
		"equations", eqs,
		"unknowns", unknowns,
		"members", sys.NumMembers,
		"reactions", sys.NumReactions,
		"load_nodes", loads.Nodes,
		"left", loads.Left,
		"right", loads.Right)

	ls := LeastSquares(sys.M, sys.L, opts.Rcond)
	unit := ls.X[:sys.NumMembers]

	capacity, err := ScaleToCapacity(unit, opts.Capacity, opts.RelTol, opts.AbsTol)
	if err != nil {
		return nil, err
	}

	sol := &truss.Solution{
		AppliedLoad:   opts.AppliedLoad,
		MemberForces:  make(map[string]float64, sys.NumMembers),
		FailureForces: make(map[string]float64, sys.NumMembers),
		Reactions:     make(map[truss.Reaction]float64, sys.NumReactions),
		NodeLoads:     make(map[string]float64, loads.Count()),
		Load:          capacity.LoadCapacity,
		Efficiency:    Efficiency(capacity.LoadCapacity, t.TotalLength()),
		Rank:          ls.Rank,
		Residual:      ls.Residual,
	}
	for j := 0; j < sys.NumMembers; j++ {
		id := sys.Columns[j].Member
		sol.MemberForces[id] = unit[j] * opts.AppliedLoad
		sol.FailureForces[id] = capacity.FailureForces[j]
	}
	for j := sys.NumMembers; j < len(sys.Columns); j++ {
		sol.Reactions[sys.Columns[j].Reaction] = ls.X[j] * opts.AppliedLoad
	}
	for _, id := range loads.Nodes {
		sol.NodeLoads[id] = loads.Share(opts.AppliedLoad)
	}
	for _, j := range capacity.Critical {
		sol.Critical = append(sol.Critical, sys.Columns[j].Member)
	}

	log.Debug("truss solved",
		"truss", t.Name,
		"rank", ls.Rank,
		"residual", ls.Residual,
		"load_capacity", sol.Load,
		"efficiency", sol.Efficiency,
		"critical", sol.Critical)
	if ls.Rank < unknowns {
		log.Debug("equilibrium system is rank deficient", "rank", ls.Rank, "unknowns", unknowns)
	}

	return sol, nil
}
