package cli

import (
	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/samuelfneumann/flappyq/agent/tabular/qlearning"
	"github.com/samuelfneumann/flappyq/experiment"
)

// configAnnotation marks flags which mirror a field of an experiment
// configuration
const configAnnotation = "flappyq_config"

// AddAgentFlags adds flags for each field of a Q-Learning configuration
// to fs, defaulting to and writing into c
func AddAgentFlags(fs *pflag.FlagSet, c *qlearning.Config) {
	fs.Float64Var(&c.LearningRate, "learning-rate", c.LearningRate,
		"Step size of the value update")
	fs.Float64Var(&c.Discount, "discount", c.Discount,
		"Discount factor of future values")
	fs.Float64Var(&c.Epsilon, "epsilon", c.Epsilon,
		"Initial probability of a random action")
	fs.Float64Var(&c.EpsilonDecay, "epsilon-decay", c.EpsilonDecay,
		"Factor epsilon is multiplied by after each episode")
	fs.Float64Var(&c.MinEpsilon, "min-epsilon", c.MinEpsilon,
		"Lower bound on epsilon")
	fs.StringVar(&c.TablePath, "table", c.TablePath,
		"Value table to continue learning from")
}

// AddExperimentFlags adds flags for an experiment configuration to fs,
// defaulting to and writing into c
func AddExperimentFlags(fs *pflag.FlagSet, c *experiment.Config) {
	config := pflag.NewFlagSet("config", pflag.ContinueOnError)
	AddAgentFlags(config, &c.Agent)

	config.Uint64Var(&c.Seed, "seed", c.Seed,
		"Seed for random action selection")
	config.IntVar(&c.MaxEpisodes, "episodes", c.MaxEpisodes,
		"Maximum number of episodes, 0 for no limit")
	config.IntVar(&c.MaxSteps, "steps", c.MaxSteps,
		"Maximum number of steps, 0 for no limit")
	config.IntVar(&c.CheckpointEvery, "checkpoint-every", c.CheckpointEvery,
		"Episodes between checkpoints, 0 to disable")
	config.StringVar(&c.CheckpointPath, "checkpoint-path", c.CheckpointPath,
		"File to save checkpoints to")
	config.BoolVar(&c.KeepCheckpoints, "keep-checkpoints", c.KeepCheckpoints,
		"Keep every checkpoint in its own file")
	config.BoolVar(&c.SkipInvalid, "skip-invalid", c.SkipInvalid,
		"Skip recorded transitions with unknown actions")

	config.VisitAll(func(f *pflag.Flag) {
		config.SetAnnotation(f.Name, configAnnotation, []string{"true"})
	})
	fs.AddFlagSet(config)
}

// LoadConfigWithFlags fills c from the JSON file at path, then reapplies
// every configuration flag set explicitly on fs so that flags take
// precedence over the file. The flags of fs must have been added with
// AddExperimentFlags on c. If path is empty, c is only validated.
func LoadConfigWithFlags(fs *pflag.FlagSet, path string,
	c *experiment.Config) error {
	if path != "" {
		changed := make(map[string]string)
		fs.Visit(func(f *pflag.Flag) {
			if _, ok := f.Annotations[configAnnotation]; ok {
				changed[f.Name] = f.Value.String()
			}
		})

		loaded, err := experiment.LoadConfig(path)
		if err != nil {
			return err
		}
		*c = loaded

		for name, value := range changed {
			if err := fs.Set(name, value); err != nil {
				return errors.Wrapf(err, "loadConfigWithFlags: --%v", name)
			}
		}
	}

	return c.Validate()
}
