package cmd

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gotruss/internal/diagram"
	"github.com/alexiusacademia/gotruss/internal/nscp"
)

// loadFlags holds the unfactored roadway load cases of a command
type loadFlags struct {
	cases      nscp.LoadCases
	simplified bool
}

func (l *loadFlags) bind(c *cobra.Command) {
	c.Flags().Float64Var(&l.cases.Dead, "dead", 0, "Total roadway dead load D")
	c.Flags().Float64Var(&l.cases.Live, "live", 0, "Total roadway live load L")
	c.Flags().Float64Var(&l.cases.Roof, "roof", 0, "Total roof live load Lr")
	c.Flags().Float64Var(&l.cases.Wind, "wind", 0, "Total wind load W")
	c.Flags().Float64Var(&l.cases.Earthquake, "earthquake", 0, "Total earthquake load E")
	c.Flags().Float64Var(&l.cases.Rain, "rain", 0, "Total rain load R")
	c.Flags().BoolVarP(&l.simplified, "simplified", "s", false, "Use simplified combinations (gravity only: 1.4D and 1.2D+1.6L)")
}

func (l *loadFlags) combinations() []nscp.LoadCombination {
	if l.simplified {
		return nscp.SimplifiedCombinations
	}
	return nscp.LoadCombinations
}

// governing returns the largest factored load and its combination
func (l *loadFlags) governing() (float64, nscp.LoadCombination, error) {
	if l.cases.IsZero() {
		return 0, nscp.LoadCombination{}, errors.New("provide at least one unfactored load")
	}
	if err := l.cases.Validate(); err != nil {
		return 0, nscp.LoadCombination{}, err
	}
	w, combo := nscp.GoverningLoad(l.cases, l.combinations())
	if !(w > 0) {
		return 0, combo, errors.New("every load combination gives a zero factored load")
	}
	return w, combo, nil
}

// printCases lists the load cases that were given
func (l *loadFlags) printCases(out io.Writer) {
	fmt.Fprintln(out, "UNFACTORED LOADS:")
	fmt.Fprintln(out, rule)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, c := range []struct {
		name string
		v    float64
	}{
		{"Dead Load (D)", l.cases.Dead},
		{"Live Load (L)", l.cases.Live},
		{"Roof Live Load (Lr)", l.cases.Roof},
		{"Wind Load (W)", l.cases.Wind},
		{"Earthquake Load (E)", l.cases.Earthquake},
		{"Rain Load (R)", l.cases.Rain},
	} {
		if c.v != 0 {
			fmt.Fprintf(w, "  %s:\t%.2f\n", c.name, c.v)
		}
	}
	w.Flush()
	fmt.Fprintln(out)
}

const (
	rule   = "───────────────────────────────────────────────────────────────"
	banner = "═══════════════════════════════════════════════════════════════"
)

var (
	loadInput   loadFlags
	loadShowAll bool
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Calculate the factored roadway load using NSCP load combinations",
	Long: `Calculate the factored total roadway load based on NSCP 2015 load
combinations.

Provide the unfactored total loads carried by the roadway and this command
computes the factored load of every applicable combination. The governing
value can be passed to 'gotruss solve --load', or give the same load flags
to 'gotruss solve' directly.

Load Types:
  D  - Dead load
  L  - Live load
  Lr - Roof live load
  W  - Wind load
  E  - Earthquake load
  R  - Rain load

Examples:
  # Deck self weight and traffic
  gotruss load --dead 120 --live 80

  # Show all combinations
  gotruss load --dead 120 --live 80 --wind 30 --all`,
	RunE: runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)

	loadInput.bind(loadCmd)
	loadCmd.Flags().BoolVarP(&loadShowAll, "all", "a", false, "Show all load combination results")
}

func runLoad(cmd *cobra.Command, args []string) error {
	wu, governingCombo, err := loadInput.governing()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	fmt.Fprintln(out)
	fmt.Fprintln(out, banner)
	fmt.Fprintln(out, "          NSCP 2015 FACTORED ROADWAY LOAD")
	fmt.Fprintln(out, banner)
	fmt.Fprintln(out)

	loadInput.printCases(out)

	if loadShowAll {
		fmt.Fprintln(out, "LOAD COMBINATIONS (NSCP 2015 Section 203.3):")
		fmt.Fprintln(out, rule)
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  #\tCombination\tWu\n")
		fmt.Fprintf(w, "  ─\t───────────\t──\n")
		for _, combo := range loadInput.combinations() {
			marker := ""
			if combo.ID == governingCombo.ID {
				marker = " ← GOVERNS"
			}
			fmt.Fprintf(w, "  %s\t%s\t%.2f%s\n", combo.ID, combo.Description, combo.FactoredLoad(loadInput.cases), marker)
		}
		w.Flush()
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, "RESULT:")
	fmt.Fprintln(out, rule)
	fmt.Fprintf(out, "  Governing Combination: %s (%s)\n", governingCombo.ID, governingCombo.Description)
	fmt.Fprintln(out)
	fmt.Fprint(out, diagram.DrawSummaryBox("FACTORED ROADWAY LOAD", []string{fmt.Sprintf("Wu = %.2f", wu)}))
	fmt.Fprintln(out)
	return nil
}
