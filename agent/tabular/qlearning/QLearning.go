// Package qlearning implements the tabular Q-Learning algorithm over
// discretized game states
package qlearning

import (
	"io"
	"math"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/flappyq/agent/tabular/policy"
	"github.com/samuelfneumann/flappyq/agent/tabular/qtable"
	"github.com/samuelfneumann/flappyq/game"
)

var logger logrus.FieldLogger = logrus.StandardLogger()

// SetLogger sets the logger used by all QLearning agents
func SetLogger(l logrus.FieldLogger) {
	logger = l
}

// QLearning implements the Q-Learning algorithm. Actions are selected
// with an ε-greedy behaviour policy over the same value table that the
// learner updates.
type QLearning struct {
	learner   *QLearner
	behaviour *policy.EGreedy

	actions      game.ActionSet
	epsilonDecay float64
	minEpsilon   float64
}

// New creates a new QLearning agent from a Config. All random action
// selection draws from source.
//
// If c.TablePath is set, the value table is loaded from that file. A
// missing or unreadable file is logged and the agent starts with an
// empty table.
func New(c Config, source rand.Source) (*QLearning, error) {
	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(err, "new")
	}

	actions := c.ActionSet()
	table := qtable.New(actions)
	behaviour, err := policy.NewEGreedy(c.Epsilon, source, table)
	if err != nil {
		return nil, errors.Wrap(err, "new")
	}

	q := &QLearning{
		learner:      NewQLearner(table, c.LearningRate, c.Discount),
		behaviour:    behaviour,
		actions:      actions,
		epsilonDecay: c.EpsilonDecay,
		minEpsilon:   c.MinEpsilon,
	}

	if c.TablePath != "" {
		// Failure is logged and leaves the agent with an empty table
		_ = q.Load(c.TablePath)
	}

	return q, nil
}

// Act selects an action for the observation with the ε-greedy
// behaviour policy
func (q *QLearning) Act(obs game.Observation) game.Action {
	return q.behaviour.SelectAction(obs)
}

// Update updates the agent's value table from a single transition
func (q *QLearning) Update(obs game.Observation, action game.Action,
	reward float64, next game.Observation, done bool) error {
	return q.learner.Update(obs, action, reward, next, done)
}

// DecayEpsilon multiplies epsilon by the decay rate, never letting it
// drop below the minimum epsilon
func (q *QLearning) DecayEpsilon() {
	q.behaviour.SetEpsilon(math.Max(q.minEpsilon,
		q.behaviour.Epsilon()*q.epsilonDecay))
}

// Epsilon returns the current exploration rate
func (q *QLearning) Epsilon() float64 {
	return q.behaviour.Epsilon()
}

// SetEpsilon sets the exploration rate, clipped to [0, 1]
func (q *QLearning) SetEpsilon(e float64) {
	q.behaviour.SetEpsilon(e)
}

// Eval sets the agent to act greedily
func (q *QLearning) Eval() {
	q.behaviour.Eval()
}

// Train sets the agent to act ε-greedily
func (q *QLearning) Train() {
	q.behaviour.Train()
}

// Table returns the agent's value table
func (q *QLearning) Table() *qtable.Table {
	return q.learner.Table()
}

// Actions returns the agent's action set
func (q *QLearning) Actions() game.ActionSet {
	return q.actions
}

// Persist writes a snapshot of the value table to w
func (q *QLearning) Persist(w io.Writer) error {
	return errors.Wrap(q.Table().Write(w), "persist")
}

// Restore replaces the value table with the snapshot read from r. If the
// snapshot cannot be read, the agent continues with an empty table and
// the returned error wraps qtable.ErrSnapshotUnavailable.
func (q *QLearning) Restore(r io.Reader) error {
	table, err := qtable.Read(r, q.actions)
	if err != nil {
		return q.fallback(errors.Wrap(err, "restore"), "reader")
	}
	q.setTable(table)
	return nil
}

// Save saves a snapshot of the value table to the file at path
func (q *QLearning) Save(path string) error {
	if err := q.Table().Save(path); err != nil {
		return errors.Wrap(err, "save")
	}
	logger.WithFields(logrus.Fields{
		"path":   path,
		"states": q.Table().Len(),
	}).Debug("value table saved")
	return nil
}

// Load replaces the value table with the snapshot in the file at path.
// If the file cannot be read, the agent continues with an empty table
// and the returned error wraps qtable.ErrSnapshotUnavailable.
func (q *QLearning) Load(path string) error {
	table, err := qtable.Load(path, q.actions)
	if err != nil {
		return q.fallback(errors.Wrap(err, "load"), path)
	}

	q.setTable(table)
	logger.WithFields(logrus.Fields{
		"path":   path,
		"states": table.Len(),
	}).Info("value table loaded")
	return nil
}

// fallback resets the agent to an empty value table after a failed
// restore
func (q *QLearning) fallback(err error, source string) error {
	logger.WithError(err).WithField("source", source).Warn(
		"could not restore value table, starting from an empty table")
	q.setTable(qtable.New(q.actions))
	return err
}

func (q *QLearning) setTable(table *qtable.Table) {
	q.learner.SetTable(table)
	if err := q.behaviour.SetTable(table); err != nil {
		// Tables are always built from q.actions
		panic(err)
	}
}
