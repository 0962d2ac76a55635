package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/samuelfneumann/flappyq/agent/tabular/qtable"
	"github.com/samuelfneumann/flappyq/state"
	"github.com/samuelfneumann/flappyq/utils/matutils"
)

// InspectCommand returns the command which summarizes a value table
func InspectCommand() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "inspect TABLE",
		Short: "Summarize a value table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadTable(args[0])
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			summarize(w, table)
			if all {
				fmt.Fprintln(w)
				fmt.Fprintln(w, "code\tvalues\tgreedy")
				table.Range(func(c state.Code, values mat.Vector) bool {
					fmt.Fprintf(w, "%v\t%v\t%v\n", c, matutils.Format(values),
						table.Actions().At(matutils.MaxVec(values)))
					return true
				})
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false,
		"Print the values of every code")
	return cmd
}

// loadTable loads the table at path for the --actions action set
func loadTable(path string) (*qtable.Table, error) {
	actions, err := actionSet()
	if err != nil {
		return nil, err
	}

	table, err := qtable.Load(path, actions)
	if err != nil {
		return nil, errors.Wrapf(err, "could not load value table %v", path)
	}
	return table, nil
}

// summarize writes the number of codes, the number of codes each action
// is greedy in, and statistics of all action values
func summarize(w *tabwriter.Writer, table *qtable.Table) {
	fmt.Fprintf(w, "states:\t%v of %v\n", table.Len(), state.NumCodes())
	if table.Len() == 0 {
		return
	}

	greedy := make([]int, table.Width())
	values := make([]float64, 0, table.Len()*table.Width())
	table.Range(func(c state.Code, v mat.Vector) bool {
		greedy[matutils.MaxVec(v)]++
		values = append(values, mat.Col(nil, 0, v)...)
		return true
	})

	for i, count := range greedy {
		fmt.Fprintf(w, "greedy %v:\t%v\n", table.Actions().At(i), count)
	}
	fmt.Fprintf(w, "mean value:\t%.6g\n", stat.Mean(values, nil))
	fmt.Fprintf(w, "min value:\t%.6g\n", floats.Min(values))
	fmt.Fprintf(w, "max value:\t%.6g\n", floats.Max(values))
}
