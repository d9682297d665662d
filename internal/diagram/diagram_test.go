package diagram

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gotruss/internal/analysis"
	"github.com/alexiusacademia/gotruss/internal/truss"
)

func fourNode(t *testing.T) *truss.Truss {
	t.Helper()
	tr := truss.New("four")
	for _, n := range []truss.Node{
		{ID: "A", X: 0, Y: 0, SupportX: true, SupportY: true},
		{ID: "B", X: 5, Y: 0},
		{ID: "C", X: 10, Y: 0, SupportY: true},
		{ID: "D", X: 5, Y: 5},
	} {
		_, err := tr.AddNode(n)
		require.NoError(t, err)
	}
	for _, m := range [][3]string{{"AB", "A", "B"}, {"BC", "B", "C"}, {"AD", "A", "D"}, {"DC", "D", "C"}, {"BD", "B", "D"}} {
		_, err := tr.AddMember(m[0], m[1], m[2])
		require.NoError(t, err)
	}
	return tr
}

func solvedData(t *testing.T) TrussDiagramData {
	t.Helper()
	tr := fourNode(t)
	sol, err := analysis.Solve(tr, analysis.DefaultOptions())
	require.NoError(t, err)
	return NewTrussDiagramData(tr, sol)
}

func TestNewTrussDiagramData(t *testing.T) {
	data := solvedData(t)

	require.Len(t, data.Nodes, 4)
	assert.Equal(t, NodeMark{ID: "A", X: 0, Y: 0, Supported: true}, data.Nodes[0])
	assert.True(t, data.Nodes[1].Loaded)
	assert.False(t, data.Nodes[3].Supported)

	require.Len(t, data.Members, 5)
	bd := data.Members[4]
	assert.Equal(t, "BD", bd.ID)
	assert.Equal(t, [4]float64{5, 0, 5, 5}, [4]float64{bd.X1, bd.Y1, bd.X2, bd.Y2})
	assert.InDelta(t, 1, bd.Force, 1e-9)
	assert.True(t, bd.Critical)
	assert.Equal(t, "tension", bd.State(data.ZeroForce))
	assert.Equal(t, "compression", data.Members[2].State(data.ZeroForce))
}

func TestNewTrussDiagramDataUnsolved(t *testing.T) {
	data := NewTrussDiagramData(fourNode(t), nil)
	for _, m := range data.Members {
		assert.Zero(t, m.Force)
		assert.Equal(t, "zero", m.State(data.ZeroForce))
	}
	for _, n := range data.Nodes {
		assert.False(t, n.Loaded)
	}
}

func TestDrawForceChart(t *testing.T) {
	out := DrawForceChart([]ForceBar{
		{ID: "T", Force: 2},
		{ID: "C", Force: -1},
		{ID: "Z", Force: 0},
		{ID: "G", Force: 2, Critical: true},
	})
	lines := strings.Split(out, "\n")

	row := func(id string) string {
		for _, l := range lines {
			if strings.HasPrefix(strings.TrimSpace(l), id+" ") {
				return l
			}
		}
		t.Fatalf("no row for %s in\n%s", id, out)
		return ""
	}

	left, right, ok := strings.Cut(row("T"), "│")
	require.True(t, ok)
	assert.NotContains(t, left, "█")
	assert.Equal(t, halfBar, strings.Count(right, "█"))

	left, right, _ = strings.Cut(row("C"), "│")
	assert.Equal(t, halfBar/2, strings.Count(left, "█"))
	assert.NotContains(t, right, "█")

	assert.NotContains(t, row("Z"), "█")
	assert.True(t, strings.HasSuffix(row("G"), " *"))
	assert.Contains(t, out, "governs the load capacity")
}

func TestDrawASCIITruss(t *testing.T) {
	out := DrawASCIITruss(solvedData(t), 41)
	lines := strings.Split(strings.Trim(out, "\n"), "\n")

	// 11 grid rows, a blank line and the legend
	require.Len(t, lines, 13)
	top, bottom := lines[0], lines[10]

	assert.Equal(t, "  "+strings.Repeat(" ", 20)+"o", top)
	assert.Equal(t, "  ^"+strings.Repeat("-", 19)+"*"+strings.Repeat("-", 19)+"^", bottom)
	assert.Equal(t, "|", string([]rune(lines[5])[22]))
	assert.Contains(t, lines[12], "^ support")
}

func TestDrawASCIITrussEmpty(t *testing.T) {
	assert.Empty(t, DrawASCIITruss(TrussDiagramData{}, 0))
}

func TestDrawSummaryBox(t *testing.T) {
	out := DrawSummaryBox("RESULTS", []string{"Load = 500000", "Ψ"})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// top border, title, separator, two body lines, bottom border
	require.Len(t, lines, 6)

	width := len([]rune(lines[0]))
	for _, l := range lines {
		assert.Equal(t, width, len([]rune(l)), l)
	}
	assert.Contains(t, lines[1], "RESULTS")
	assert.Contains(t, lines[3], "Load = 500000")
	assert.Contains(t, lines[4], "Ψ")
}

func TestExportTrussDiagram(t *testing.T) {
	data := solvedData(t)
	dir := t.TempDir()

	for _, name := range []string{"truss.png", "truss.svg", filepath.Join("nested", "truss.pdf")} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			written, err := ExportTrussDiagram(data, path)
			require.NoError(t, err)
			assert.Equal(t, path, written)

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.NotZero(t, info.Size())
		})
	}

	t.Run("no extension", func(t *testing.T) {
		written, err := ExportTrussDiagram(NewTrussDiagramData(fourNode(t), nil), filepath.Join(dir, "plain"))
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "plain.png"), written)
		assert.FileExists(t, written)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := ExportTrussDiagram(TrussDiagramData{}, filepath.Join(dir, "empty.png"))
		assert.Error(t, err)
	})
}

func TestDrawCapacityCurve(t *testing.T) {
	out := DrawCapacityCurve([]float64{-180, -90, 0}, []float64{400, 500, 400}, 5)
	// axis labels above 100 are printed without decimals
	assert.Regexp(t, `(?m)^ *500 [┤┼]`, out)
	assert.Regexp(t, `(?m)^ *400 [┤┼]`, out)
	assert.NotContains(t, out, "500.0")
	assert.Contains(t, out, "load direction -180.0° to 0.0°")

	assert.Empty(t, DrawCapacityCurve(nil, nil, 5))
	assert.Empty(t, DrawCapacityCurve([]float64{1}, []float64{1, 2}, 5))
}
