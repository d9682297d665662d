package cmd

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gotruss/internal/analysis"
	"github.com/alexiusacademia/gotruss/internal/diagram"
	"github.com/alexiusacademia/gotruss/internal/trussfile"
)

var (
	sweepFile     string
	sweepFrom     float64
	sweepTo       float64
	sweepStep     float64
	sweepCapacity float64
	sweepHeight   int
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Tabulate the load capacity over a range of load directions",
	Long: `Solve a truss once for every load direction between --from and --to
(degrees, -90 is straight down) and report the load capacity and critical
members of each, with an ASCII graph of the capacity curve. Directions the
truss has no load path for are reported with a zero capacity.

Examples:
  # Every 5° around straight down
  gotruss sweep -f bridge.txt --from -135 --to -45 --step 5`,
	RunE: runSweep,
}

func init() {
	rootCmd.AddCommand(sweepCmd)

	sweepCmd.Flags().StringVarP(&sweepFile, "file", "f", "", "Truss file (.json or text) [required]")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", -180, "First load direction (degrees)")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 0, "Last load direction (degrees)")
	sweepCmd.Flags().Float64Var(&sweepStep, "step", 10, "Direction increment (degrees)")
	sweepCmd.Flags().Float64Var(&sweepCapacity, "capacity", analysis.DefaultCapacity, "Member force capacity (default from GOTRUSS_CAPACITY)")
	sweepCmd.Flags().IntVar(&sweepHeight, "height", 12, "Graph height in lines")

	sweepCmd.MarkFlagRequired("file")
}

const maxSweepAngles = 3601

// sweepAngles lists from..to inclusive in degrees
func sweepAngles(from, to, step float64) ([]float64, error) {
	for i, v := range []float64{from, to, step} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%s must be a finite number", []string{"--from", "--to", "--step"}[i])
		}
	}
	if !(step > 0) || to < from {
		return nil, errors.New("--step must be positive and --to not below --from")
	}
	count := math.Floor((to-from)/step+1e-9) + 1
	if count > maxSweepAngles {
		return nil, fmt.Errorf("%.4g directions requested, at most %d allowed", count, maxSweepAngles)
	}
	angles := make([]float64, int(count))
	for i := range angles {
		angles[i] = from + float64(i)*step
	}
	return angles, nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	degrees, err := sweepAngles(sweepFrom, sweepTo, sweepStep)
	if err != nil {
		return err
	}
	t, err := trussfile.Load(sweepFile)
	if err != nil {
		return err
	}

	opts := analysis.DefaultOptions()
	opts.Capacity = cfg.Capacity
	if cmd.Flags().Changed("capacity") {
		opts.Capacity = sweepCapacity
	}

	angles := make([]float64, len(degrees))
	for i, d := range degrees {
		angles[i] = radians(d)
	}
	points, err := analysis.SweepLoadAngle(t, opts, angles)
	if err != nil {
		return fmt.Errorf("%s: %w", sweepFile, err)
	}
	logger.Debug("sweep finished", "file", sweepFile, "directions", len(points))

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, banner)
	fmt.Fprintf(out, "     LOAD DIRECTION SWEEP - %s\n", t.Name)
	fmt.Fprintln(out, banner)
	fmt.Fprintln(out)

	loads := make([]float64, len(points))
	best, worst := 0, 0
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "  Direction\tLoad capacity\tCritical members\t\n")
	for i, p := range points {
		loads[i] = p.Load
		if p.Load > points[best].Load {
			best = i
		}
		if p.Load < points[worst].Load {
			worst = i
		}
		critical := strings.Join(p.Critical, ", ")
		if p.Load == 0 {
			critical = "no load path"
		}
		fmt.Fprintf(w, "  %.1f°\t%.6g\t%s\t\n", degrees[i], p.Load, critical)
	}
	w.Flush()
	fmt.Fprintln(out)

	fmt.Fprint(out, diagram.DrawCapacityCurve(degrees, loads, sweepHeight))
	fmt.Fprintln(out)
	fmt.Fprint(out, diagram.DrawSummaryBox("SWEEP RESULT", []string{
		fmt.Sprintf("Weakest direction = %.1f° (load capacity %.6g)", degrees[worst], points[worst].Load),
		fmt.Sprintf("Strongest direction = %.1f° (load capacity %.6g)", degrees[best], points[best].Load),
	}))
	fmt.Fprintln(out)
	return nil
}
