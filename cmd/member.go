package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gotruss/internal/truss"
)

var memberID string

var memberCmd = &cobra.Command{
	Use:   "member",
	Short: "Add or remove members of a truss file",
	Long: `Edit the members of a truss file.

Examples:
  gotruss member add -f bridge.txt B E
  gotruss member add -f bridge.txt B E --id BE
  gotruss member rm -f bridge.txt BE
  gotruss member rm -f bridge.txt B E`,
}

var memberAddCmd = &cobra.Command{
	Use:   "add A B",
	Short: "Connect nodes A and B with a member",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editTruss(cmd, func(t *truss.Truss) (string, error) {
			m, err := t.AddMember(memberID, args[0], args[1])
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Added member %s (%s-%s), length %.4g", m.ID, m.A, m.B, t.Length(m)), nil
		})
	},
}

var memberRemoveCmd = &cobra.Command{
	Use:     "rm ID | rm A B",
	Aliases: []string{"remove"},
	Short:   "Remove a member by id or by its end nodes",
	Args:    cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editTruss(cmd, func(t *truss.Truss) (string, error) {
			id := args[0]
			if len(args) == 2 {
				m, ok := t.MemberBetween(args[0], args[1])
				if !ok {
					return "", fmt.Errorf("member %s-%s: %w", args[0], args[1], truss.ErrMemberMissing)
				}
				id = m.ID
			}
			if err := t.RemoveMember(id); err != nil {
				return "", err
			}
			return fmt.Sprintf("Removed member %s", id), nil
		})
	},
}

func init() {
	rootCmd.AddCommand(memberCmd)
	bindEditFlags(memberCmd)

	memberCmd.AddCommand(memberAddCmd, memberRemoveCmd)

	memberAddCmd.Flags().StringVar(&memberID, "id", "", "Member id (default: next free integer)")
}
