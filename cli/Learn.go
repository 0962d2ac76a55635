package cli

import (
	"bufio"
	"os"

	"github.com/gosuri/uilive"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/samuelfneumann/flappyq/environment/replay"
	"github.com/samuelfneumann/flappyq/experiment"
	"github.com/samuelfneumann/flappyq/experiment/trackers"
	"github.com/samuelfneumann/flappyq/utils/progressbar"
)

// LearnCommand returns the command which learns a value table offline
// from recorded transitions
func LearnCommand() *cobra.Command {
	config := experiment.DefaultConfig()
	var (
		configPath  string
		out         string
		returnsPath string
		lengthsPath string
		noProgress  bool
	)

	cmd := &cobra.Command{
		Use:   "learn TRANSITIONS",
		Short: "Learn a value table from recorded transitions",
		Long: "Learn a value table with Q-learning by replaying recorded " +
			"transitions, one JSON object per line. Exploration decays " +
			"once for each recorded episode.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := LoadConfigWithFlags(cmd.Flags(), configPath, &config)
			if err != nil {
				return err
			}
			if config.Agent.Actions, err = actionSet(); err != nil {
				return err
			}
			if out == "" {
				out = config.Agent.TablePath
			}
			if out == "" {
				out = "q_table.gob"
			}

			file, err := os.Open(args[0])
			if err != nil {
				return errors.Wrap(err, "learn")
			}
			defer file.Close()

			q, err := config.CreateAgent()
			if err != nil {
				return errors.Wrap(err, "learn")
			}

			var tracked []trackers.Tracker
			if returnsPath != "" {
				tracked = append(tracked, trackers.NewReturn(returnsPath, log))
			}
			if lengthsPath != "" {
				tracked = append(tracked,
					trackers.NewEpisodeLength(lengthsPath))
			}

			exp, err := config.CreateOffline(
				replay.NewReader(bufio.NewReader(file)), q, tracked...)
			if err != nil {
				return errors.Wrap(err, "learn")
			}

			var (
				writer *uilive.Writer
				bar    *progressbar.ManualProgressBar
			)
			if !noProgress {
				writer = uilive.New()
				writer.Out = cmd.ErrOrStderr()
				writer.Start()
				bar = progressbar.NewManualProgressBar(writer, 40,
					config.MaxEpisodes)
			}

			for finished := false; !finished; {
				episodes := exp.Episodes()
				finished, err = exp.RunEpisode()
				if bar != nil {
					if exp.Episodes() > episodes {
						bar.Increment()
					}
					bar.Describe("transitions: %v | epsilon: %.4f",
						exp.Transitions(), q.Epsilon())
					bar.Display()
				}
				if err != nil {
					break
				}
			}
			if writer != nil {
				writer.Stop()
			}
			if err != nil {
				return errors.Wrap(err, "learn")
			}

			if err := q.Save(out); err != nil {
				return errors.Wrap(err, "learn")
			}
			if err := exp.Save(); err != nil {
				return errors.Wrap(err, "learn")
			}

			log.WithFields(logrus.Fields{
				"episodes":    exp.Episodes(),
				"transitions": exp.Transitions(),
				"skipped":     exp.Skipped(),
				"states":      q.Table().Len(),
				"epsilon":     q.Epsilon(),
				"path":        out,
			}).Info("learning finished")
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&configPath, "config", "", "JSON experiment configuration")
	fs.StringVarP(&out, "out", "o", "",
		"File to save the value table to (default --table or q_table.gob)")
	fs.StringVar(&returnsPath, "returns", "",
		"File to save episodic returns to")
	fs.StringVar(&lengthsPath, "lengths", "",
		"File to save episode lengths to")
	fs.BoolVar(&noProgress, "no-progress", false, "Hide the progress bar")
	AddExperimentFlags(fs, &config)

	return cmd
}
