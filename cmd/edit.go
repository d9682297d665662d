package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gotruss/internal/truss"
	"github.com/alexiusacademia/gotruss/internal/trussfile"
)

// Shared by the node and member edit commands
var (
	editFile   string
	editOutput string
)

// bindEditFlags adds the file flags to a parent edit command
func bindEditFlags(c *cobra.Command) {
	c.PersistentFlags().StringVarP(&editFile, "file", "f", "", "Truss file to edit (.json or text) [required]")
	c.PersistentFlags().StringVarP(&editOutput, "output", "o", "", "Write the edited truss here instead of back to --file")
	c.MarkPersistentFlagRequired("file")
}

// editTruss loads the edit file, applies fn and saves the result. The
// message returned by fn is printed after a successful save.
func editTruss(cmd *cobra.Command, fn func(t *truss.Truss) (string, error)) error {
	t, err := trussfile.Load(editFile)
	if err != nil {
		return err
	}
	t.Duplicates = cfg.Duplicates

	msg, err := fn(t)
	if err != nil {
		return err
	}

	target := editFile
	if editOutput != "" {
		target = editOutput
	}
	if err := trussfile.Save(target, t); err != nil {
		return err
	}
	logger.Debug("truss saved", "file", target, "nodes", t.NumNodes(), "members", t.NumMembers())

	fmt.Fprintf(cmd.OutOrStdout(), "%s (%s: %d nodes, %d members)\n", msg, target, t.NumNodes(), t.NumMembers())
	return nil
}

func parseFloat(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, s)
	}
	return v, nil
}

func parseCoords(xs, ys string) (float64, float64, error) {
	x, err := parseFloat("x coordinate", xs)
	if err != nil {
		return 0, 0, err
	}
	y, err := parseFloat("y coordinate", ys)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

// parseAxes accepts x, y or xy
func parseAxes(s string) ([]truss.Axis, error) {
	switch s {
	case "x":
		return []truss.Axis{truss.AxisX}, nil
	case "y":
		return []truss.Axis{truss.AxisY}, nil
	case "xy", "yx", "both":
		return []truss.Axis{truss.AxisX, truss.AxisY}, nil
	}
	return nil, fmt.Errorf("invalid axis %q (want x, y or xy)", s)
}
