package report

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/alexiusacademia/gotruss/internal/analysis"
	"github.com/alexiusacademia/gotruss/internal/truss"
)

func solvedFourNode(t *testing.T) (*truss.Truss, *truss.Solution) {
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

	opts := analysis.DefaultOptions()
	opts.AppliedLoad = 100
	sol, err := analysis.Solve(tr, opts)
	require.NoError(t, err)
	return tr, sol
}

func TestNewSummary(t *testing.T) {
	tr, sol := solvedFourNode(t)
	sum := NewSummary(tr, sol)

	assert.Equal(t, "four", sum.Name)
	assert.Equal(t, 4, sum.Nodes)
	assert.Equal(t, 5, sum.Members)
	assert.Equal(t, 3, sum.Displacements)
	assert.Equal(t, []string{"B"}, sum.LoadNodes)
	assert.Equal(t, []string{"BD"}, sum.CriticalMembers())

	require.Len(t, sum.MemberRows, 5)
	states := map[string]string{}
	for _, r := range sum.MemberRows {
		states[r.ID] = r.State
	}
	assert.Equal(t, map[string]string{
		"AB": Tension, "BC": Tension, "AD": Compression, "DC": Compression, "BD": Tension,
	}, states)
	assert.InDelta(t, 45, sum.MemberRows[2].Angle, 1e-12)

	require.Len(t, sum.ReactionRows, 3)
	assert.Equal(t, ReactionRow{Node: "A", Axis: "x", Force: sum.ReactionRows[0].Force}, sum.ReactionRows[0])
	assert.InDelta(t, 0, sum.ReactionRows[0].Force, 1e-9)
	assert.Equal(t, "C", sum.ReactionRows[2].Node)
	assert.InDelta(t, 50, sum.ReactionRows[2].Force, 1e-9)
}

func TestWriteXLSX(t *testing.T) {
	tr, sol := solvedFourNode(t)
	path := filepath.Join(t.TempDir(), "reports", "four.xlsx")
	require.NoError(t, WriteXLSX(NewSummary(tr, sol), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetSummary, SheetMembers, SheetReactions}, f.GetSheetList())

	v, err := f.GetCellValue(SheetSummary, "B1")
	require.NoError(t, err)
	assert.Equal(t, "four", v)

	v, err = f.GetCellValue(SheetSummary, "B10")
	require.NoError(t, err)
	assert.Equal(t, "BD", v)

	rows, err := f.GetRows(SheetMembers)
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, "Member", rows[0][0])
	assert.Equal(t, "BD", rows[5][0])
	assert.Equal(t, Tension, rows[5][7])

	force, err := strconv.ParseFloat(rows[3][5], 64)
	require.NoError(t, err)
	assert.InDelta(t, -50*math.Sqrt2, force, 1e-6)

	rows, err = f.GetRows(SheetReactions)
	require.NoError(t, err)
	assert.Len(t, rows, 4)
}

func TestWritePDF(t *testing.T) {
	tr, sol := solvedFourNode(t)
	path := filepath.Join(t.TempDir(), "four.pdf")
	require.NoError(t, WritePDF(NewSummary(tr, sol), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}
