package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/flappyq/agent/linear/approx"
	"github.com/samuelfneumann/flappyq/game"
	"github.com/samuelfneumann/flappyq/state"
	"github.com/samuelfneumann/flappyq/utils/matutils"
)

// ActCommand returns the command which prints the greedy action of a
// value table or approximator for a single observation
func ActCommand() *cobra.Command {
	var tablePath, weightsPath string

	cmd := &cobra.Command{
		Use:   "act [OBSERVATION]",
		Short: "Print the greedy action for an observation",
		Long: "Discretize a JSON observation and print its code together " +
			"with the greedy action of a value table (--table) or fitted " +
			"approximator (--weights). The observation is read from " +
			"standard input if not given.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (tablePath == "") == (weightsPath == "") {
				return errors.New("act: exactly one of --table and " +
					"--weights is required")
			}

			var in io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				in = strings.NewReader(args[0])
			}
			var obs game.Observation
			if err := json.NewDecoder(in).Decode(&obs); err != nil {
				return errors.Wrap(err, "act: could not decode observation")
			}
			c := state.Discretize(obs)

			var (
				actions game.ActionSet
				values  mat.Vector
			)
			if tablePath != "" {
				table, err := loadTable(tablePath)
				if err != nil {
					return err
				}
				actions = table.Actions()
				if v, ok := table.Lookup(c); ok {
					values = v
				} else {
					values = mat.NewVecDense(table.Width(), nil)
				}
			} else {
				a, err := approx.Load(weightsPath)
				if err != nil {
					return err
				}
				actions = a.Actions()
				values = a.Values(c)
			}

			action := actions.At(matutils.MaxVec(values))
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "code: %v\n", c)
			fmt.Fprintf(out, "values: %v\n", matutils.Format(values))
			fmt.Fprintf(out, "action: %v (%d)\n", action, int(action))
			return nil
		},
	}

	cmd.Flags().StringVar(&tablePath, "table", "", "Value table to act with")
	cmd.Flags().StringVar(&weightsPath, "weights", "",
		"Approximator to act with")
	return cmd
}
