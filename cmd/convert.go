package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gotruss/internal/trussfile"
)

var convertCmd = &cobra.Command{
	Use:   "convert IN OUT",
	Short: "Convert a truss file between the text and JSON formats",
	Long: `Read a truss file and write it in the format chosen by the output
extension: .json for JSON, anything else for the tab delimited text format.

Examples:
  gotruss convert bridge.txt bridge.json
  gotruss convert bridge.json bridge.txt`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := trussfile.Load(args[0])
		if err != nil {
			return err
		}
		if err := trussfile.Save(args[1], t); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Converted %s to %s (%d nodes, %d members, %d support reactions)\n",
			args[0], args[1], t.NumNodes(), t.NumMembers(), t.NumDisplacements())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
}
