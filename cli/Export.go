package cli

import (
	"bufio"
	"io"

	"github.com/spf13/cobra"

	"github.com/samuelfneumann/flappyq/utils/fileutils"
)

// ExportCommand returns the command which exports a value table as JSON
// lines for use by external tools
func ExportCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export TABLE",
		Short: "Export a value table as JSON lines",
		Long: "Export every code of a value table and its action values, " +
			"one JSON object per line, in lexicographic code order.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadTable(args[0])
			if err != nil {
				return err
			}

			if out == "" || out == "-" {
				return table.Export(cmd.OutOrStdout())
			}
			err = fileutils.WriteAtomic(out, func(w io.Writer) error {
				buf := bufio.NewWriter(w)
				if err := table.Export(buf); err != nil {
					return err
				}
				return buf.Flush()
			})
			if err != nil {
				return err
			}
			log.WithField("path", out).Info("table exported")
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "-",
		"File to export to, - for standard output")
	return cmd
}
