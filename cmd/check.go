package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gotruss/internal/analysis"
	"github.com/alexiusacademia/gotruss/internal/trussfile"
)

var checkFile string

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate a truss file without solving it",
	Long: `Check that a truss can be solved: roadway nodes, end supports,
support placement and member geometry (no zero-length members). The load
nodes and the count of unknowns against equilibrium equations are reported.
The command fails whenever 'gotruss solve' would reject the model before
solving the equations.

Examples:
  gotruss check -f bridge.txt`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkFile, "file", "f", "", "Truss file (.json or text) [required]")
	checkCmd.MarkFlagRequired("file")
}

func runCheck(cmd *cobra.Command, args []string) error {
	t, err := trussfile.Load(checkFile)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	fmt.Fprintln(out)
	fmt.Fprintln(out, banner)
	fmt.Fprintf(out, "     TRUSS CHECK - %s\n", t.Name)
	fmt.Fprintln(out, banner)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "MODEL:")
	fmt.Fprintln(out, rule)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Nodes:\t%d\n", t.NumNodes())
	fmt.Fprintf(w, "  Members:\t%d\n", t.NumMembers())
	fmt.Fprintf(w, "  Support reactions:\t%d\n", t.NumDisplacements())
	fmt.Fprintf(w, "  Total member length:\t%.6g\n", t.TotalLength())

	// Members plus reactions against two equations per joint
	unknowns := t.NumMembers() + t.NumDisplacements()
	equations := 2 * t.NumNodes()
	switch {
	case unknowns == equations:
		fmt.Fprintf(w, "  Determinacy:\tstatically determinate (%d unknowns, %d equations)\n", unknowns, equations)
	case unknowns > equations:
		fmt.Fprintf(w, "  Determinacy:\tindeterminate to degree %d\n", unknowns-equations)
	default:
		fmt.Fprintf(w, "  Determinacy:\tunstable, %d unknowns short\n", equations-unknowns)
	}
	w.Flush()
	fmt.Fprintln(out)

	var weak []string
	for _, n := range t.Nodes() {
		if d := t.Degree(n.ID); d < 2 && n.Supports() < 2-d {
			weak = append(weak, fmt.Sprintf("%s (%d members)", n.ID, d))
		}
	}
	if len(weak) > 0 {
		fmt.Fprintf(out, "  ⚠ Poorly connected joints: %s\n\n", strings.Join(weak, ", "))
	}

	loads, err := analysis.SelectLoadNodes(t)
	if err == nil {
		err = analysis.ValidateSupports(t, loads)
	}
	if err == nil {
		_, err = analysis.BuildSystem(t, loads, 1, radians(cfg.LoadAngle))
	}

	fmt.Fprintln(out, "ROADWAY:")
	fmt.Fprintln(out, rule)
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Left support:\t%s\n", orNone(loads.Left))
	fmt.Fprintf(w, "  Right support:\t%s\n", orNone(loads.Right))
	fmt.Fprintf(w, "  Load nodes:\t%s\n", orNone(strings.Join(loads.Nodes, ", ")))
	w.Flush()
	fmt.Fprintln(out)

	if err != nil {
		fmt.Fprintf(out, "  ✗ %v\n\n", err)
		return fmt.Errorf("%s: %w", checkFile, err)
	}
	fmt.Fprintln(out, "  ✓ Ready to solve")
	fmt.Fprintln(out)
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
