// Package experiment implements functionality for running an experiment
package experiment

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/flappyq/agent/tabular/qlearning"
	"github.com/samuelfneumann/flappyq/experiment/checkpointer"
	"github.com/samuelfneumann/flappyq/experiment/trackers"
	"github.com/samuelfneumann/flappyq/timestep"
)

var logger logrus.FieldLogger = logrus.StandardLogger()

// SetLogger sets the logger used by experiments
func SetLogger(l logrus.FieldLogger) {
	logger = l
}

// Experiment outlines structs that can run experiments. The Run()
// method will run all episodes until the episode or step limit is
// reached, or the source of experience is exhausted. The RunEpisode()
// method will run a single episode and report whether the experiment
// has finished.
//
// Experiments send each TimeStep to registered Trackers, which determine
// which data generated during the experiment is saved. The Save() method
// saves all tracked data, and is usually called after an experiment has
// been run. At the end of each episode, the experiment calls each of its
// Checkpointers with the number of episodes completed.
type Experiment interface {
	Run() error
	RunEpisode() (bool, error) // Returns whether the experiment finished

	// Adds a new Tracker to the (possibly already running) experiment.
	// Useful if you want to track data only after a specified event.
	Register(t trackers.Tracker)

	// Save all tracked data to disk
	Save() error

	Episodes() int
}

// hooks holds the trackers and checkpointers shared by all experiment
// types
type hooks struct {
	trackers      []trackers.Tracker
	checkpointers []checkpointer.Checkpointer
}

// Register registers a Tracker so that data generated during the
// experiment can be tracked and saved
func (h *hooks) Register(t trackers.Tracker) {
	h.trackers = append(h.trackers, t)
}

// track sends the timestep to each Tracker
func (h *hooks) track(t timestep.TimeStep) {
	for _, tracker := range h.trackers {
		tracker.Track(t)
	}
}

// checkpoint calls each Checkpointer with the number of finished
// episodes
func (h *hooks) checkpoint(episode int) error {
	for _, c := range h.checkpointers {
		if err := c.Checkpoint(episode); err != nil {
			return err
		}
	}
	return nil
}

// Save saves all the data cached by the Trackers to disk
func (h *hooks) Save() error {
	for _, tracker := range h.trackers {
		if err := tracker.Save(); err != nil {
			return errors.Wrap(err, "save")
		}
	}
	return nil
}

// Config represents a configuration of an experiment
type Config struct {
	Agent qlearning.Config `json:"agent"`
	Seed  uint64           `json:"seed"`

	// MaxEpisodes and MaxSteps limit the length of the experiment. A
	// limit of 0 means no limit.
	MaxEpisodes int `json:"max_episodes"`
	MaxSteps    int `json:"max_steps"`

	// CheckpointEvery is the number of episodes between checkpoints of
	// the agent's value table, or 0 to disable checkpointing. If
	// KeepCheckpoints is set, each checkpoint is kept in its own file
	// named by episode, otherwise each replaces CheckpointPath.
	CheckpointEvery int    `json:"checkpoint_every"`
	CheckpointPath  string `json:"checkpoint_path"`
	KeepCheckpoints bool   `json:"keep_checkpoints"`

	// SkipInvalid makes offline experiments log and skip recorded
	// transitions the agent cannot learn from, instead of failing
	SkipInvalid bool `json:"skip_invalid"`
}

// DefaultConfig returns the default experiment configuration
func DefaultConfig() Config {
	return Config{
		Agent:          qlearning.DefaultConfig(),
		CheckpointPath: "q_table.gob",
	}
}

// LoadConfig reads a JSON configuration from the file at path. Fields
// missing from the file keep their default values.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()

	file, err := os.Open(path)
	if err != nil {
		return c, errors.Wrap(err, "loadConfig")
	}
	defer file.Close()

	dec := json.NewDecoder(file)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return c, errors.Wrapf(err, "loadConfig: could not decode %v", path)
	}
	return c, c.Validate()
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if err := c.Agent.Validate(); err != nil {
		return errors.Wrap(err, "validate: agent")
	}
	if c.MaxEpisodes < 0 || c.MaxSteps < 0 {
		return errors.Errorf("validate: limits must be non-negative, got "+
			"%v episodes and %v steps", c.MaxEpisodes, c.MaxSteps)
	}
	if c.CheckpointEvery < 0 {
		return errors.Errorf("validate: checkpoint interval must be "+
			"non-negative, got %v", c.CheckpointEvery)
	}
	if c.CheckpointEvery > 0 && c.CheckpointPath == "" {
		return errors.New("validate: checkpointing requires a path")
	}
	return nil
}

// CreateAgent creates the Q-Learning agent described by the Config,
// seeded with the Config's seed
func (c Config) CreateAgent() (*qlearning.QLearning, error) {
	return qlearning.New(c.Agent, rand.NewSource(c.Seed))
}

// Checkpointers returns the checkpointers described by the Config, which
// save object
func (c Config) Checkpointers(object checkpointer.Saver) (
	[]checkpointer.Checkpointer, error) {
	if c.CheckpointEvery == 0 {
		return nil, nil
	}

	namer := checkpointer.Fixed(c.CheckpointPath)
	if c.KeepCheckpoints {
		ext := filepath.Ext(c.CheckpointPath)
		namer = checkpointer.EpisodeNamer(
			strings.TrimSuffix(c.CheckpointPath, ext), ext)
	}

	check, err := checkpointer.NewNStep(c.CheckpointEvery, object, namer,
		logger)
	if err != nil {
		return nil, errors.Wrap(err, "checkpointers")
	}
	return []checkpointer.Checkpointer{check}, nil
}
