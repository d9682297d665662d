package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"
)

// WritePDF renders a one-page analysis report
func WritePDF(sum *Summary, filename string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Truss Analysis Report")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	lines := []string{
		fmt.Sprintf("Truss: %s", sum.Name),
		fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02")),
		fmt.Sprintf("Nodes: %d   Members: %d   Support reactions: %d", sum.Nodes, sum.Members, sum.Displacements),
		fmt.Sprintf("Load nodes: %s", strings.Join(sum.LoadNodes, ", ")),
		fmt.Sprintf("Applied load: %.4g", sum.AppliedLoad),
		fmt.Sprintf("Load capacity: %.6g", sum.LoadCapacity),
		fmt.Sprintf("Total member length: %.6g", sum.TotalLength),
		fmt.Sprintf("Efficiency: %.6g", sum.Efficiency),
		fmt.Sprintf("Critical members: %s", strings.Join(sum.CriticalMembers(), ", ")),
	}
	for _, l := range lines {
		pdf.Cell(0, 6, l)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	// Member force table
	widths := []float64{22, 18, 18, 24, 34, 38, 30}
	header := []string{"Member", "Node A", "Node B", "Length", "Force", "Force at capacity", "State"}
	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range header {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, r := range sum.MemberRows {
		state := r.State
		if r.Critical {
			state += " *"
		}
		cells := []string{
			r.ID, r.A, r.B,
			fmt.Sprintf("%.4g", r.Length),
			fmt.Sprintf("%.4f", r.Force),
			fmt.Sprintf("%.1f", r.FailureForce),
			state,
		}
		for i, c := range cells {
			align := "R"
			if i == 0 || i == 1 || i == 2 || i == 6 {
				align = "L"
			}
			pdf.CellFormat(widths[i], 6, c, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(0, 6, "Support reactions")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 10)
	for _, r := range sum.ReactionRows {
		pdf.Cell(0, 6, fmt.Sprintf("Node %s (%s): %.4f", r.Node, r.Axis, r.Force))
		pdf.Ln(6)
	}
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, "Forces: + tension, - compression. * marks members governing the load capacity.", "", "L", false)

	// Create directory if needed
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return pdf.OutputFileAndClose(filename)
}
