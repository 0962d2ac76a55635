// Package policy implements policies over tabular action-value functions
package policy

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/flappyq/agent/tabular/qtable"
	"github.com/samuelfneumann/flappyq/game"
	"github.com/samuelfneumann/flappyq/state"
	"gonum.org/v1/gonum/stat/distuv"
)

// EGreedy implements an ε-greedy policy over a value table. With
// probability ε an action is selected uniformly at random, otherwise the
// action with the largest value is selected, breaking ties in favour of
// the action listed first in the table's action set.
//
// All randomness is drawn from the rand.Source the policy is created
// with, so that a seeded source makes action selection reproducible.
type EGreedy struct {
	table   *qtable.Table
	epsilon float64
	eval    bool

	source  rand.Source
	uniform distuv.Categorical // Uniform over action indices
}

// NewEGreedy constructs a new EGreedy policy, where e=epislon is the
// probability with which a random action is selected. Action values are
// read from table.
func NewEGreedy(e float64, source rand.Source,
	table *qtable.Table) (*EGreedy, error) {
	if e < 0 || e > 1 {
		return nil, errors.Errorf("newEGreedy: epsilon must be in [0, 1], "+
			"got %v", e)
	}
	if source == nil {
		return nil, errors.New("newEGreedy: nil random source")
	}

	weights := make([]float64, table.Width())
	for i := range weights {
		weights[i] = 1.0
	}

	return &EGreedy{
		table:   table,
		epsilon: e,
		source:  source,
		uniform: distuv.NewCategorical(weights, source),
	}, nil
}

// SelectAction selects an action in the state described by obs. The
// code of obs is inserted into the table if it is not yet present.
func (p *EGreedy) SelectAction(obs game.Observation) game.Action {
	return p.table.Actions().At(p.SelectIndex(state.Discretize(obs)))
}

// SelectIndex selects the index of an action in the state with code c
func (p *EGreedy) SelectIndex(c state.Code) int {
	if p.explore() {
		return int(p.uniform.Rand())
	}
	return p.table.Greedy(c)
}

// explore returns whether a random action should be taken
func (p *EGreedy) explore() bool {
	if p.eval || p.epsilon == 0 {
		return false
	}
	coin := distuv.Bernoulli{P: p.epsilon, Src: p.source}
	return coin.Rand() == 1
}

// Epsilon returns the probability of selecting a random action
func (p *EGreedy) Epsilon() float64 {
	return p.epsilon
}

// SetEpsilon sets the probability of selecting a random action. Values
// outside [0, 1] are clipped.
func (p *EGreedy) SetEpsilon(e float64) {
	if e < 0 {
		e = 0
	} else if e > 1 {
		e = 1
	}
	p.epsilon = e
}

// Table returns the table the policy reads action values from
func (p *EGreedy) Table() *qtable.Table {
	return p.table
}

// SetTable points the policy at a new table. The table must be indexed
// by an action set of the same size.
func (p *EGreedy) SetTable(table *qtable.Table) error {
	if table.Width() != p.table.Width() {
		return errors.Errorf("setTable: table has %v actions, want %v",
			table.Width(), p.table.Width())
	}
	p.table = table
	return nil
}

// Eval sets the policy to evaluation mode, in which it always acts
// greedily. Epsilon is left unchanged.
func (p *EGreedy) Eval() {
	p.eval = true
}

// Train sets the policy to training mode
func (p *EGreedy) Train() {
	p.eval = false
}

// IsEval returns whether the policy is in evaluation mode
func (p *EGreedy) IsEval() bool {
	return p.eval
}
