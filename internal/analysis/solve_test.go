package analysis

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gotruss/internal/truss"
)

func build(t *testing.T, nodes []truss.Node, members [][3]string) *truss.Truss {
	t.Helper()
	tr := truss.New(t.Name())
	for _, n := range nodes {
		_, err := tr.AddNode(n)
		require.NoError(t, err)
	}
	for _, m := range members {
		_, err := tr.AddMember(m[0], m[1], m[2])
		require.NoError(t, err)
	}
	return tr
}

// fourNode: A(0,0) pinned, B(5,0) loaded, C(10,0) roller, D(5,5) apex
func fourNode(t *testing.T) *truss.Truss {
	return build(t,
		[]truss.Node{
			{ID: "A", X: 0, Y: 0, SupportX: true, SupportY: true},
			{ID: "B", X: 5, Y: 0},
			{ID: "C", X: 10, Y: 0, SupportY: true},
			{ID: "D", X: 5, Y: 5},
		},
		[][3]string{{"AB", "A", "B"}, {"BC", "B", "C"}, {"AD", "A", "D"}, {"DC", "D", "C"}, {"BD", "B", "D"}},
	)
}

// pratt builds a statically determinate Pratt truss with the given number of
// panels of width w and height h
func pratt(t *testing.T, panels int, w, h float64) *truss.Truss {
	var nodes []truss.Node
	var members [][3]string
	bottom := func(i int) string { return fmt.Sprintf("b%d", i) }
	top := func(i int) string { return fmt.Sprintf("t%d", i) }

	for i := 0; i <= panels; i++ {
		n := truss.Node{ID: bottom(i), X: float64(i) * w}
		if i == 0 {
			n.SupportX, n.SupportY = true, true
		}
		if i == panels {
			n.SupportY = true
		}
		nodes = append(nodes, n)
	}
	for i := 1; i < panels; i++ {
		nodes = append(nodes, truss.Node{ID: top(i), X: float64(i) * w, Y: h})
	}

	add := func(a, b string) {
		members = append(members, [3]string{a + "-" + b, a, b})
	}
	for i := 0; i < panels; i++ {
		add(bottom(i), bottom(i+1))
	}
	for i := 1; i < panels-1; i++ {
		add(top(i), top(i+1))
	}
	for i := 1; i < panels; i++ {
		add(bottom(i), top(i))
	}
	add(bottom(0), top(1))
	add(top(panels-1), bottom(panels))
	for i := 1; i < panels-1; i++ {
		if i < panels/2 {
			add(top(i), bottom(i+1))
		} else {
			add(bottom(i), top(i+1))
		}
	}
	return build(t, nodes, members)
}

func opts(load float64) Options {
	o := DefaultOptions()
	o.AppliedLoad = load
	return o
}

func TestSolveFourNode(t *testing.T) {
	tr := fourNode(t)

	sol, err := Solve(tr, opts(100))
	require.NoError(t, err)

	want := map[string]float64{
		"AB": 50,
		"BC": 50,
		"AD": -50 * math.Sqrt2,
		"DC": -50 * math.Sqrt2,
		"BD": 100,
	}
	for id, f := range want {
		assert.InDelta(t, f, sol.MemberForces[id], 1e-9, "member %s", id)
	}

	assert.InDelta(t, 100, sol.VerticalReaction(), 1e-9)
	assert.InDelta(t, 50, sol.Reactions[truss.Reaction{Node: "A", Axis: truss.AxisY}], 1e-9)
	assert.InDelta(t, 50, sol.Reactions[truss.Reaction{Node: "C", Axis: truss.AxisY}], 1e-9)
	assert.InDelta(t, 0, sol.Reactions[truss.Reaction{Node: "A", Axis: truss.AxisX}], 1e-9)
	assert.Len(t, sol.Reactions, 3)

	assert.Equal(t, []string{"BD"}, sol.Critical)
	assert.True(t, sol.IsCritical("BD"))
	assert.InDelta(t, DefaultCapacity, sol.Load, 1e-6)
	assert.InDelta(t, DefaultCapacity, sol.FailureForces["BD"], 1e-6)
	assert.InDelta(t, -DefaultCapacity/math.Sqrt2, sol.FailureForces["AD"], 1e-6)
	assert.Equal(t, map[string]float64{"B": 100}, sol.NodeLoads)
	assert.Equal(t, 8, sol.Rank)
	assert.InDelta(t, 0, sol.Residual, 1e-9)

	assert.Equal(t, sol.Load/tr.TotalLength(), sol.Efficiency)
	assert.InDelta(t, 500000/(15+10*math.Sqrt2), sol.Efficiency, 1e-6)

	// Solving never edits the model
	assert.Equal(t, truss.Unsolved, tr.State())
	b, _ := tr.Node("B")
	assert.Zero(t, b.Load)
}

func TestSolveTriangleHasNoLoadNode(t *testing.T) {
	tr := build(t,
		[]truss.Node{
			{ID: "A", X: 0, Y: 0, SupportY: true},
			{ID: "B", X: 10, Y: 0, SupportY: true},
			{ID: "C", X: 5, Y: 5},
		},
		[][3]string{{"1", "A", "B"}, {"2", "A", "C"}, {"3", "B", "C"}},
	)

	_, err := Solve(tr, DefaultOptions())
	require.Error(t, err)

	var cfg *ConfigurationError
	assert.True(t, errors.As(err, &cfg))
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestSolveEquilibrium(t *testing.T) {
	for _, panels := range []int{2, 4, 6, 9} {
		t.Run(fmt.Sprintf("pratt %d panels", panels), func(t *testing.T) {
			tr := pratt(t, panels, 4, 3)
			sol, err := Solve(tr, opts(240))
			require.NoError(t, err)

			assert.InDelta(t, 240, sol.VerticalReaction(), 1e-8)
			assert.InDelta(t, 0, sol.HorizontalReaction(), 1e-8)
			assert.InDelta(t, 0, sol.Residual, 1e-9)
			assert.NotEmpty(t, sol.Critical)
			assert.Greater(t, sol.Load, 0.0)
			assert.Greater(t, sol.Efficiency, 0.0)
			assert.Equal(t, sol.Load/tr.TotalLength(), sol.Efficiency)
		})
	}
}

func TestSolveIsLinearInLoad(t *testing.T) {
	tr := pratt(t, 6, 4, 3)

	unit, err := Solve(tr, opts(1))
	require.NoError(t, err)

	for _, k := range []float64{0.5, 3, 125000} {
		scaled, err := Solve(tr, opts(k))
		require.NoError(t, err)

		for id, f := range unit.MemberForces {
			assert.Equal(t, f*k, scaled.MemberForces[id], "member %s at k=%g", id, k)
		}
		for r, v := range unit.Reactions {
			assert.Equal(t, v*k, scaled.Reactions[r], "reaction %s at k=%g", r, k)
		}
		// Capacity does not depend on the reference load
		assert.Equal(t, unit.Load, scaled.Load)
		assert.Equal(t, unit.Critical, scaled.Critical)
	}
}

func TestSolveIdempotent(t *testing.T) {
	tr := pratt(t, 5, 3, 2)

	first, err := Solve(tr, opts(10))
	require.NoError(t, err)
	second, err := Solve(tr, opts(10))
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second solve differs (-first +second):\n%s", diff)
	}
}

func TestSolveToleratesIsolatedFreeNode(t *testing.T) {
	tr := fourNode(t)
	_, err := tr.AddNode(truss.Node{ID: "E", X: 20, Y: -3})
	require.NoError(t, err)

	sol, err := Solve(tr, opts(100))
	require.NoError(t, err)

	assert.Less(t, sol.Rank, 10)
	assert.InDelta(t, 100, sol.VerticalReaction(), 1e-9)
	assert.InDelta(t, 100, sol.MemberForces["BD"], 1e-9)
}

func TestSolveMechanismDoesNotFail(t *testing.T) {
	// Without the vertical B-D the loaded joint can only hang on the chords
	tr := fourNode(t)
	require.NoError(t, tr.RemoveMember("BD"))

	sol, err := Solve(tr, opts(1))
	if err != nil {
		assert.ErrorIs(t, err, ErrNoLoadPath)
		return
	}
	assert.Greater(t, sol.Residual, 0.0)
}

func TestSolveValidation(t *testing.T) {
	t.Run("unpinned right end", func(t *testing.T) {
		tr := fourNode(t)
		require.NoError(t, tr.SetSupport("C", truss.AxisY, false))
		_, err := Solve(tr, DefaultOptions())
		assert.ErrorIs(t, err, ErrConfiguration)
		assert.Contains(t, err.Error(), "unpinned support")
	})

	t.Run("pinned apex", func(t *testing.T) {
		tr := fourNode(t)
		require.NoError(t, tr.SetSupport("D", truss.AxisX, true))
		_, err := Solve(tr, DefaultOptions())
		assert.ErrorIs(t, err, ErrConfiguration)
		assert.Contains(t, err.Error(), "only support nodes may be pinned")
	})

	t.Run("interior roadway support allowed", func(t *testing.T) {
		tr := fourNode(t)
		require.NoError(t, tr.SetSupport("B", truss.AxisY, true))
		_, err := Solve(tr, DefaultOptions())
		assert.NoError(t, err)
	})

	t.Run("zero length member", func(t *testing.T) {
		tr := fourNode(t)
		_, err := tr.AddNode(truss.Node{ID: "E", X: 5, Y: 5})
		require.NoError(t, err)
		_, err = tr.AddMember("DE", "D", "E")
		require.NoError(t, err)

		_, err = Solve(tr, DefaultOptions())
		var geo *DegenerateGeometryError
		require.True(t, errors.As(err, &geo))
		assert.Contains(t, err.Error(), "DE")
	})

	t.Run("unconnected load node", func(t *testing.T) {
		tr := build(t,
			[]truss.Node{
				{ID: "A", X: 0, Y: 0, SupportY: true, SupportX: true},
				{ID: "B", X: 5, Y: 0},
				{ID: "C", X: 10, Y: 0, SupportY: true},
			},
			[][3]string{{"AC", "A", "C"}},
		)
		_, err := Solve(tr, DefaultOptions())
		var nlp *NoLoadPathError
		assert.True(t, errors.As(err, &nlp))
		assert.ErrorIs(t, err, ErrNoLoadPath)
	})

	t.Run("bad options", func(t *testing.T) {
		tr := fourNode(t)
		for _, o := range []Options{
			{Capacity: 1},
			{AppliedLoad: 1},
			{AppliedLoad: math.Inf(1), Capacity: 1},
			{AppliedLoad: 1, Capacity: 1, RelTol: -1},
		} {
			_, err := Solve(tr, o)
			assert.Error(t, err)
		}
	})
}

func TestSolveCustomCapacityAndAngle(t *testing.T) {
	tr := fourNode(t)

	o := opts(1)
	o.Capacity = 1000
	sol, err := Solve(tr, o)
	require.NoError(t, err)
	assert.InDelta(t, 1000, sol.Load, 1e-9)

	// Load pointing straight up reverses every force
	o.LoadAngle = math.Pi / 2
	up, err := Solve(tr, o)
	require.NoError(t, err)
	for id, f := range sol.MemberForces {
		assert.InDelta(t, -f, up.MemberForces[id], 1e-9, "member %s", id)
	}
}

func TestSolveThenAttach(t *testing.T) {
	tr := fourNode(t)
	sol, err := Solve(tr, opts(30))
	require.NoError(t, err)

	tr.Attach(sol)
	assert.Equal(t, truss.Solved, tr.State())
	b, _ := tr.Node("B")
	assert.Equal(t, 30.0, b.Load)

	require.NoError(t, tr.MoveNode("D", 5, 6))
	assert.Equal(t, truss.Unsolved, tr.State())
}
