package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Workbook sheet names
const (
	SheetSummary   = "Summary"
	SheetMembers   = "Members"
	SheetReactions = "Reactions"
)

// WriteXLSX saves the summary as a workbook with a summary sheet, the member
// force table and the support reactions
func WriteXLSX(sum *Summary, filename string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return err
	}
	for _, name := range []string{SheetMembers, SheetReactions} {
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	summaryRows := [][]interface{}{
		{"Truss", sum.Name},
		{"Nodes", sum.Nodes},
		{"Members", sum.Members},
		{"Support reactions", sum.Displacements},
		{"Load nodes", strings.Join(sum.LoadNodes, ", ")},
		{"Applied load", sum.AppliedLoad},
		{"Load capacity", sum.LoadCapacity},
		{"Total member length", sum.TotalLength},
		{"Efficiency", sum.Efficiency},
		{"Critical members", strings.Join(sum.CriticalMembers(), ", ")},
		{"Matrix rank", sum.Rank},
		{"Residual", sum.Residual},
	}
	for i, row := range summaryRows {
		if err := setRow(f, SheetSummary, i+1, row); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(SheetSummary, "A1", fmt.Sprintf("A%d", len(summaryRows)), bold); err != nil {
		return err
	}

	header := []interface{}{"Member", "Node A", "Node B", "Length", "Angle (deg)", "Force", "Force at capacity", "State", "Critical"}
	if err := setRow(f, SheetMembers, 1, header); err != nil {
		return err
	}
	for i, r := range sum.MemberRows {
		row := []interface{}{r.ID, r.A, r.B, r.Length, r.Angle, r.Force, r.FailureForce, r.State, r.Critical}
		if err := setRow(f, SheetMembers, i+2, row); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(SheetMembers, "A1", "I1", bold); err != nil {
		return err
	}

	if err := setRow(f, SheetReactions, 1, []interface{}{"Node", "Axis", "Reaction"}); err != nil {
		return err
	}
	for i, r := range sum.ReactionRows {
		if err := setRow(f, SheetReactions, i+2, []interface{}{r.Node, r.Axis, r.Force}); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(SheetReactions, "A1", "C1", bold); err != nil {
		return err
	}

	// Create directory if needed
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return f.SaveAs(filename)
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
