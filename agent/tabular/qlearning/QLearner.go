package qlearning

import (
	"github.com/pkg/errors"

	"github.com/samuelfneumann/flappyq/agent/tabular/qtable"
	"github.com/samuelfneumann/flappyq/game"
	"github.com/samuelfneumann/flappyq/state"
)

// QLearner implements the update functionality for the Q-Learning
// algorithm on a value table.
type QLearner struct {
	table        *qtable.Table
	learningRate float64
	discount     float64
}

// NewQLearner creates a new QLearner struct
//
// table is the value table of the policy to learn
func NewQLearner(table *qtable.Table, learningRate,
	discount float64) *QLearner {
	return &QLearner{table, learningRate, discount}
}

// Update updates the value of taking action in the state described by
// obs, given the reward and next observation that followed. If done,
// next is terminal and contributes no future value.
//
// If action is not in the table's action set, an error wrapping
// game.ErrUnknownAction is returned and the table is not modified.
func (q *QLearner) Update(obs game.Observation, action game.Action,
	reward float64, next game.Observation, done bool) error {
	index, err := q.table.Actions().IndexOf(action)
	if err != nil {
		return errors.Wrap(err, "update")
	}

	q.UpdateCode(state.Discretize(obs), index, reward,
		state.Discretize(next), done)
	return nil
}

// UpdateCode performs the Q-Learning update on the value of action index
// in the state with code c, given the reward and the code of the next
// state. Exactly one value in the table is modified.
func (q *QLearner) UpdateCode(c state.Code, index int, reward float64,
	next state.Code, done bool) {
	values := q.table.GetOrInsert(c)
	q.table.GetOrInsert(next)

	current := values.AtVec(index)
	values.SetVec(index, current+q.learningRate*q.TdError(c, index, reward,
		next, done))
}

// TdError returns the TD error of the transition from code c with
// action index to code next. Both codes are inserted into the table if
// needed.
func (q *QLearner) TdError(c state.Code, index int, reward float64,
	next state.Code, done bool) float64 {
	future := 0.0
	if !done {
		future = q.table.Max(next)
	}

	target := reward + q.discount*future
	return target - q.table.GetOrInsert(c).AtVec(index)
}

// Table returns the table the learner updates
func (q *QLearner) Table() *qtable.Table {
	return q.table
}

// SetTable points the learner at a new table
func (q *QLearner) SetTable(table *qtable.Table) {
	q.table = table
}
