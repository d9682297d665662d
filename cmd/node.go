package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gotruss/internal/truss"
)

var (
	nodeID      string
	nodeSupport string
	nodeOff     bool
)

var nodeCmd = &cobra.Command{
	Use:   "node",
	Short: "Add, remove, move or support nodes of a truss file",
	Long: `Edit the joints of a truss file.

A node placed exactly on an existing node is stored, rejected or merged into
the existing node according to GOTRUSS_DUPLICATES (allow, reject or merge).
Removing a node removes every member attached to it.

Examples:
  gotruss node add -f bridge.txt 15 0 --id E
  gotruss node add -f bridge.txt 20 0 --support y
  gotruss node move -f bridge.txt D 5 6
  gotruss node support -f bridge.txt C x
  gotruss node support -f bridge.txt C x --off
  gotruss node rm -f bridge.txt E`,
}

var nodeAddCmd = &cobra.Command{
	Use:   "add X Y",
	Short: "Add a node at (X, Y)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		x, y, err := parseCoords(args[0], args[1])
		if err != nil {
			return err
		}
		var axes []truss.Axis
		if nodeSupport != "" {
			if axes, err = parseAxes(nodeSupport); err != nil {
				return err
			}
		}

		return editTruss(cmd, func(t *truss.Truss) (string, error) {
			n := truss.Node{ID: nodeID, X: x, Y: y}
			if n.ID == "" {
				n.ID = t.NextNodeID()
			}
			for _, a := range axes {
				if a == truss.AxisX {
					n.SupportX = true
				} else {
					n.SupportY = true
				}
			}
			id, err := t.AddNode(n)
			if err != nil {
				return "", err
			}
			if id != n.ID {
				return fmt.Sprintf("Merged into node %s at (%g, %g)", id, x, y), nil
			}
			return fmt.Sprintf("Added node %s at (%g, %g)", id, x, y), nil
		})
	},
}

var nodeRemoveCmd = &cobra.Command{
	Use:     "rm ID",
	Aliases: []string{"remove"},
	Short:   "Remove a node and its members",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editTruss(cmd, func(t *truss.Truss) (string, error) {
			attached := t.Degree(args[0])
			if err := t.RemoveNode(args[0]); err != nil {
				return "", err
			}
			return fmt.Sprintf("Removed node %s and %d members", args[0], attached), nil
		})
	},
}

var nodeMoveCmd = &cobra.Command{
	Use:   "move ID X Y",
	Short: "Move a node to (X, Y)",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		x, y, err := parseCoords(args[1], args[2])
		if err != nil {
			return err
		}
		return editTruss(cmd, func(t *truss.Truss) (string, error) {
			if err := t.MoveNode(args[0], x, y); err != nil {
				return "", err
			}
			return fmt.Sprintf("Moved node %s to (%g, %g)", args[0], x, y), nil
		})
	},
}

var nodeSupportCmd = &cobra.Command{
	Use:   "support ID AXIS",
	Short: "Add or remove a support along x, y or xy",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		axes, err := parseAxes(args[1])
		if err != nil {
			return err
		}
		return editTruss(cmd, func(t *truss.Truss) (string, error) {
			for _, a := range axes {
				if err := t.SetSupport(args[0], a, !nodeOff); err != nil {
					return "", err
				}
			}
			verb := "Supported"
			if nodeOff {
				verb = "Released"
			}
			return fmt.Sprintf("%s node %s along %s", verb, args[0], args[1]), nil
		})
	},
}

func init() {
	rootCmd.AddCommand(nodeCmd)
	bindEditFlags(nodeCmd)

	nodeCmd.AddCommand(nodeAddCmd, nodeRemoveCmd, nodeMoveCmd, nodeSupportCmd)

	nodeAddCmd.Flags().StringVar(&nodeID, "id", "", "Node id (default: next free integer)")
	nodeAddCmd.Flags().StringVar(&nodeSupport, "support", "", "Support axes of the new node: x, y or xy")
	nodeSupportCmd.Flags().BoolVar(&nodeOff, "off", false, "Remove the support instead of adding it")
}
