// Package cli implements the flappyq command line interface
package cli

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/samuelfneumann/flappyq/agent/tabular/qlearning"
	"github.com/samuelfneumann/flappyq/experiment"
	"github.com/samuelfneumann/flappyq/game"
)

var (
	logLevel  string
	logFormat string
	actions   []int

	log = logrus.New()
)

// RootCommand returns the flappyq command with all subcommands added
func RootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flappyq",
		Short: "Tabular Q-learning for the flappy bird game",
		Long: "flappyq learns, inspects and exports value tables over " +
			"discretized flappy bird states.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"Log level (trace, debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"Log format (text or json)")
	cmd.PersistentFlags().IntSliceVar(&actions, "actions",
		[]int{int(game.Flap), int(game.Noop)},
		"Ordered key codes of the legal actions")

	cmd.AddCommand(
		LearnCommand(),
		InspectCommand(),
		ExportCommand(),
		FitCommand(),
		ActCommand(),
	)

	return cmd
}

// setupLogging configures the logger from the persistent flags and
// hands it to the library packages
func setupLogging(cmd *cobra.Command) error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return errors.Wrap(err, "log-level")
	}

	switch logFormat {
	case "text":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		return errors.Errorf("log-format: unknown format %q", logFormat)
	}

	log.SetOutput(cmd.ErrOrStderr())
	log.SetLevel(level)

	qlearning.SetLogger(log)
	experiment.SetLogger(log)
	return nil
}

// actionSet returns the action set given by the --actions flag
func actionSet() (game.ActionSet, error) {
	set := make([]game.Action, len(actions))
	for i, a := range actions {
		set[i] = game.Action(a)
	}

	s, err := game.NewActionSet(set...)
	if err != nil {
		return nil, errors.Wrap(err, "actions")
	}
	return s, nil
}

// Execute runs the root command and exits with a non-zero status on
// failure
func Execute() {
	if err := RootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
