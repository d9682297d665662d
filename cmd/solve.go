package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gotruss/internal/analysis"
	"github.com/alexiusacademia/gotruss/internal/diagram"
	"github.com/alexiusacademia/gotruss/internal/nscp"
	"github.com/alexiusacademia/gotruss/internal/report"
	"github.com/alexiusacademia/gotruss/internal/truss"
	"github.com/alexiusacademia/gotruss/internal/trussfile"
)

var (
	solveFile     string
	solveLoad     float64
	solveInput    loadFlags
	solveCapacity float64
	solveAngle    float64

	// Member capacity from a steel section
	solveArea  float64
	solveFy    float64
	solveSteel string

	// Output
	solveJSON    bool
	solveDiagram bool
	solvePlot    string
	solveXLSX    string
	solvePDF     string
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve member forces, reactions and load capacity of a truss",
	Long: `Solve a truss bridge by joint equilibrium.

The total roadway load is shared equally by the interior roadway nodes
(y = 0, between the two end supports). Member forces (+ tension,
- compression) and support reactions are reported for the applied load.
The load is then scaled until the largest member force reaches the member
capacity; that load is the load capacity and the members reaching the
capacity are critical. Efficiency is load capacity per total member length.

The applied load is, in order of precedence:
  - the governing NSCP combination of --dead, --live, ... when given
  - --load
  - a unit reference load

Capacity and load direction default to GOTRUSS_CAPACITY and
GOTRUSS_LOAD_ANGLE (degrees, -90 is straight down).

Examples:
  # Unit load, text report
  gotruss solve -f bridge.txt

  # Factored traffic load with an ASCII sketch and a force plot
  gotruss solve -f bridge.txt --dead 120 --live 80 --diagram -o bridge.png

  # Capacity from A36 steel members of 2000 mm² (φt·Fy·Ag)
  gotruss solve -f bridge.txt --area 2000 --steel a36

  # Machine readable result and reports
  gotruss solve -f bridge.json --load 1000 --json --xlsx out/bridge.xlsx --pdf out/bridge.pdf`,
	RunE: runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)

	solveCmd.Flags().StringVarP(&solveFile, "file", "f", "", "Truss file (.json or text) [required]")

	// Loading
	solveCmd.Flags().Float64Var(&solveLoad, "load", 1, "Total roadway load")
	solveInput.bind(solveCmd)
	solveCmd.Flags().Float64Var(&solveCapacity, "capacity", analysis.DefaultCapacity, "Member force capacity (default from GOTRUSS_CAPACITY)")
	solveCmd.Flags().Float64Var(&solveArea, "area", 0, "Member gross area Ag (mm²); sets the capacity to φt·Fy·Ag (N)")
	solveCmd.Flags().Float64Var(&solveFy, "fy", 0, "Steel yield strength Fy (MPa), overrides --steel")
	solveCmd.Flags().StringVar(&solveSteel, "steel", "a36", "Steel grade for --area")
	solveCmd.Flags().Float64Var(&solveAngle, "angle", -90, "Load direction in degrees (default from GOTRUSS_LOAD_ANGLE)")

	// Output
	solveCmd.Flags().BoolVar(&solveJSON, "json", false, "Print the result as JSON")
	solveCmd.Flags().BoolVar(&solveDiagram, "diagram", false, "Print an ASCII sketch and force chart")
	solveCmd.Flags().StringVarP(&solvePlot, "output", "o", "", "Save a force diagram image (.png, .svg, .pdf)")
	solveCmd.Flags().StringVar(&solveXLSX, "xlsx", "", "Save the result as an Excel workbook")
	solveCmd.Flags().StringVar(&solvePDF, "pdf", "", "Save a PDF report")

	solveCmd.MarkFlagRequired("file")
}

// solveOptions resolves the analysis options from configuration and flags.
// The returned text describes where the applied load came from.
func solveOptions(cmd *cobra.Command) (analysis.Options, string, error) {
	opts := analysis.DefaultOptions()
	opts.Capacity = cfg.Capacity
	opts.LoadAngle = radians(cfg.LoadAngle)
	opts.Logger = logger

	switch {
	case cmd.Flags().Changed("area"):
		if cmd.Flags().Changed("capacity") {
			return opts, "", errors.New("--capacity cannot be combined with --area")
		}
		fy := solveFy
		if !cmd.Flags().Changed("fy") {
			grade, err := nscp.LookupSteel(solveSteel)
			if err != nil {
				return opts, "", err
			}
			fy = grade.Fy
		}
		c, err := nscp.MemberCapacity(fy, solveArea)
		if err != nil {
			return opts, "", err
		}
		opts.Capacity = c
	case cmd.Flags().Changed("capacity"):
		opts.Capacity = solveCapacity
	}
	if cmd.Flags().Changed("angle") {
		opts.LoadAngle = radians(solveAngle)
	}

	loadGiven := cmd.Flags().Changed("load")
	switch {
	case !solveInput.cases.IsZero():
		if loadGiven {
			return opts, "", errors.New("--load cannot be combined with load case flags")
		}
		wu, combo, err := solveInput.governing()
		if err != nil {
			return opts, "", err
		}
		opts.AppliedLoad = wu
		return opts, fmt.Sprintf("NSCP combination %s: %s", combo.ID, combo.Description), nil
	case loadGiven:
		opts.AppliedLoad = solveLoad
		return opts, "given", nil
	}
	return opts, "unit reference load", nil
}

func radians(deg float64) float64 {
	if deg == -90 {
		return analysis.DefaultLoadAngle
	}
	return deg * math.Pi / 180
}

func runSolve(cmd *cobra.Command, args []string) error {
	t, err := trussfile.Load(solveFile)
	if err != nil {
		return err
	}
	opts, loadSource, err := solveOptions(cmd)
	if err != nil {
		return err
	}

	sol, err := analysis.Solve(t, opts)
	if err != nil {
		return fmt.Errorf("%s: %w", solveFile, err)
	}
	t.Attach(sol)
	logger.Info("truss solved", "file", solveFile, "load_capacity", sol.Load, "critical", sol.Critical)

	sum := report.NewSummary(t, sol)
	out := cmd.OutOrStdout()

	if solveJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(sum); err != nil {
			return err
		}
	} else {
		printSolution(out, t, sol, sum, opts, loadSource)
		if solveDiagram {
			data := diagram.NewTrussDiagramData(t, sol)
			fmt.Fprint(out, diagram.DrawASCIITruss(data, diagram.DefaultSketchWidth))
			fmt.Fprint(out, diagram.DrawForceChart(data.ForceBars()))
			fmt.Fprintln(out)
		}
	}

	if solvePlot != "" {
		name, err := diagram.ExportTrussDiagram(diagram.NewTrussDiagramData(t, sol), solvePlot)
		if err != nil {
			return fmt.Errorf("saving diagram: %w", err)
		}
		logger.Info("diagram saved", "file", name)
	}
	if solveXLSX != "" {
		if err := report.WriteXLSX(sum, solveXLSX); err != nil {
			return fmt.Errorf("saving workbook: %w", err)
		}
		logger.Info("workbook saved", "file", solveXLSX)
	}
	if solvePDF != "" {
		if err := report.WritePDF(sum, solvePDF); err != nil {
			return fmt.Errorf("saving report: %w", err)
		}
		logger.Info("report saved", "file", solvePDF)
	}
	return nil
}

func printSolution(out io.Writer, t *truss.Truss, sol *truss.Solution, sum *report.Summary, opts analysis.Options, loadSource string) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, banner)
	fmt.Fprintf(out, "     TRUSS ANALYSIS - %s\n", t.Name)
	fmt.Fprintln(out, banner)
	fmt.Fprintln(out)

	loads, _ := analysis.SelectLoadNodes(t)

	fmt.Fprintln(out, "MODEL:")
	fmt.Fprintln(out, rule)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Nodes:\t%d\n", sum.Nodes)
	fmt.Fprintf(w, "  Members:\t%d\n", sum.Members)
	fmt.Fprintf(w, "  Support reactions:\t%d\n", sum.Displacements)
	fmt.Fprintf(w, "  Roadway supports:\t%s (left), %s (right)\n", loads.Left, loads.Right)
	fmt.Fprintf(w, "  Load nodes:\t%s\n", strings.Join(sum.LoadNodes, ", "))
	fmt.Fprintf(w, "  Applied load:\t%.4g (%s)\n", sol.AppliedLoad, loadSource)
	fmt.Fprintf(w, "  Load per node:\t%.4g\n", loads.Share(sol.AppliedLoad))
	fmt.Fprintf(w, "  Load direction:\t%.1f°\n", opts.LoadAngle*180/math.Pi)
	fmt.Fprintf(w, "  Member capacity:\t%.6g\n", opts.Capacity)
	w.Flush()
	fmt.Fprintln(out)

	fmt.Fprintln(out, "MEMBER FORCES (+ tension, - compression):")
	fmt.Fprintln(out, rule)
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "  Member\tNodes\tLength\tForce\tAt capacity\tState\t\n")
	for _, r := range sum.MemberRows {
		state := r.State
		if r.Critical {
			state += " *"
		}
		fmt.Fprintf(w, "  %s\t%s-%s\t%.4f\t%.4f\t%.1f\t%s\t\n", r.ID, r.A, r.B, r.Length, r.Force, r.FailureForce, state)
	}
	w.Flush()
	fmt.Fprintln(out, "  * governs the load capacity")
	fmt.Fprintln(out)

	fmt.Fprintln(out, "SUPPORT REACTIONS:")
	fmt.Fprintln(out, rule)
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "  Node\tAxis\tReaction\t\n")
	for _, r := range sum.ReactionRows {
		fmt.Fprintf(w, "  %s\t%s\t%.4f\t\n", r.Node, r.Axis, r.Force)
	}
	w.Flush()
	fmt.Fprintln(out)

	unknowns := sum.Members + sum.Displacements
	if sol.Rank < unknowns {
		fmt.Fprintf(out, "  ⚠ Equilibrium matrix rank %d is below the %d unknowns; the minimum norm solution is shown.\n", sol.Rank, unknowns)
	}
	if sol.Residual > 1e-9 {
		fmt.Fprintf(out, "  ⚠ Equilibrium is not satisfied exactly (residual %.3g per unit load); the truss may be a mechanism.\n", sol.Residual)
	}

	fmt.Fprintln(out, "RESULT:")
	fmt.Fprintln(out, rule)
	fmt.Fprint(out, diagram.DrawSummaryBox("LOAD CAPACITY", []string{
		fmt.Sprintf("Load capacity = %.6g", sol.Load),
		fmt.Sprintf("Total member length = %.6g", sum.TotalLength),
		fmt.Sprintf("Efficiency = %.6g", sol.Efficiency),
		fmt.Sprintf("Critical members: %s", strings.Join(sol.Critical, ", ")),
	}))
	fmt.Fprintln(out)
}
