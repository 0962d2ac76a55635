package qlearning

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/flappyq/agent"
	"github.com/samuelfneumann/flappyq/game"
)

// Config represents a configuration for the QLearning agent
type Config struct {
	LearningRate float64 `json:"learning_rate"`
	Discount     float64 `json:"discount"`

	// Epsilon is the initial probability of taking a random action. It
	// is multiplied by EpsilonDecay at the end of each episode but never
	// drops below MinEpsilon.
	Epsilon      float64 `json:"epsilon"`
	EpsilonDecay float64 `json:"epsilon_decay"`
	MinEpsilon   float64 `json:"min_epsilon"`

	// Actions is the ordered action set. If empty, the game's default
	// action set is used.
	Actions game.ActionSet `json:"actions,omitempty"`

	// TablePath, if set, is the file the agent's value table is loaded
	// from on construction
	TablePath string `json:"table_path,omitempty"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		LearningRate: 0.1,
		Discount:     0.99,
		Epsilon:      1.0,
		EpsilonDecay: 0.995,
		MinEpsilon:   0.01,
	}
}

// ActionSet returns the action set described by the Config
func (c Config) ActionSet() game.ActionSet {
	if len(c.Actions) == 0 {
		return game.DefaultActions()
	}
	return c.Actions
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.LearningRate <= 0 || c.LearningRate > 1 {
		return errors.Errorf("validate: learning rate must be in (0, 1], "+
			"got %v", c.LearningRate)
	}
	if c.Discount < 0 || c.Discount > 1 {
		return errors.Errorf("validate: discount must be in [0, 1], got %v",
			c.Discount)
	}
	if c.Epsilon < 0 || c.Epsilon > 1 {
		return errors.Errorf("validate: epsilon must be in [0, 1], got %v",
			c.Epsilon)
	}
	if c.EpsilonDecay <= 0 || c.EpsilonDecay > 1 {
		return errors.Errorf("validate: epsilon decay must be in (0, 1], "+
			"got %v", c.EpsilonDecay)
	}
	if c.MinEpsilon < 0 || c.MinEpsilon > c.Epsilon {
		return errors.Errorf("validate: minimum epsilon must be in "+
			"[0, epsilon=%v], got %v", c.Epsilon, c.MinEpsilon)
	}
	if len(c.Actions) > 0 {
		if _, err := game.NewActionSet(c.Actions...); err != nil {
			return errors.Wrap(err, "validate")
		}
	}
	return nil
}

// CreateAgent creates the agent from the Config
func (c Config) CreateAgent(source rand.Source) (agent.Agent, error) {
	q, err := New(c, source)
	if err != nil {
		return nil, err
	}
	return q, nil
}
