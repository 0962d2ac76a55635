package cli

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/samuelfneumann/flappyq/agent/linear/approx"
)

// FitCommand returns the command which fits a linear approximator to a
// value table
func FitCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "fit TABLE",
		Short: "Fit a linear approximator to a value table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadTable(args[0])
			if err != nil {
				return err
			}

			a, err := approx.Fit(table)
			if err != nil {
				return errors.Wrap(err, "fit")
			}
			mse, err := a.MeanSquaredError(table)
			if err != nil {
				return errors.Wrap(err, "fit")
			}

			if err := a.Save(out); err != nil {
				return errors.Wrap(err, "fit")
			}
			log.WithFields(logrus.Fields{
				"states": table.Len(),
				"mse":    mse,
				"path":   out,
			}).Info("approximator fit")
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "weights.gob",
		"File to save the approximator to")
	return cmd
}
