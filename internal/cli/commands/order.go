package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adeccscholar/adecc-DataDictionary-sub000/internal/cli/ui"
)

// NewOrderCommand creates the order command
func NewOrderCommand() *cobra.Command {
	var report bool

	cmd := &cobra.Command{
		Use:   "order",
		Short: "Print the tables in dependency order",
		Long: `Print the tables of the dictionary in topological order: every table
appears after the tables it generalizes or is composed into.

A cycle between generalization or composition references aborts with an
error naming the tables involved.

Examples:
  datadict order
  datadict order --report
  datadict order --seed schema/hr.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			out := cmd.OutOrStdout()

			if report {
				fmt.Fprint(out, s.dict.AnalyzeDependencies().String())
				return nil
			}

			order, err := s.dict.TopologicalSequence()
			if err != nil {
				return s.fail(err)
			}

			ui.Header(out, fmt.Sprintf("Dependency order of %s (%d tables)", s.dict.Name(), len(order)), s.noColor)
			ui.NumberedList(out, order, s.noColor)
			return nil
		},
	}

	cmd.Flags().BoolVar(&report, "report", false, "print direct dependencies and cycles per table")

	return cmd
}
