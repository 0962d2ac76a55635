// Package approx implements a greedy agent whose action values are a
// linear function of the discretized state, fit to a learned value table
package approx

import (
	"fmt"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/flappyq/agent/tabular/qtable"
	"github.com/samuelfneumann/flappyq/game"
	"github.com/samuelfneumann/flappyq/state"
	"github.com/samuelfneumann/flappyq/utils/matutils"
)

// Features is the number of features the linear model uses: each
// feature of a state code plus a bias unit
const Features = state.Features + 1

// ErrTooFewCodes is returned when a table has too few codes to
// determine the linear model
var ErrTooFewCodes = errors.New("too few codes to fit")

// Approximator approximates the action values of a state code as
//
//	Q(c, a) = W[a] · [c..., 1]
//
// and acts greedily with respect to them. An Approximator does not
// learn online. Its weights are fit once from a value table.
type Approximator struct {
	actions game.ActionSet
	weights *mat.Dense // len(actions) × Features
}

// New returns an Approximator with zero weights
func New(actions game.ActionSet) *Approximator {
	if actions.Len() == 0 {
		panic("new: approximator needs at least one action")
	}
	return &Approximator{
		actions: actions,
		weights: mat.NewDense(actions.Len(), Features, nil),
	}
}

// Fit fits an Approximator to every code and action value vector in the
// table by least squares
func Fit(table *qtable.Table) (*Approximator, error) {
	n := table.Len()
	if n < Features {
		return nil, errors.Wrapf(ErrTooFewCodes, "fit: table has %v codes, "+
			"need at least %v", n, Features)
	}

	// Design matrix of state features and targets of action values
	x := mat.NewDense(n, Features, nil)
	y := mat.NewDense(n, table.Width(), nil)
	row := 0
	table.Range(func(c state.Code, values mat.Vector) bool {
		x.SetRow(row, features(c))
		y.SetRow(row, mat.Col(nil, 0, values))
		row++
		return true
	})

	var solution mat.Dense
	if err := solution.Solve(x, y); err != nil {
		return nil, errors.Wrap(err, "fit: could not solve least squares")
	}

	a := New(table.Actions())
	a.weights.Copy(solution.T())
	return a, nil
}

// features returns the feature vector of a code
func features(c state.Code) []float64 {
	return append(c.Floats(), 1.0)
}

// Values returns the approximate action values of the code
func (a *Approximator) Values(c state.Code) *mat.VecDense {
	values := mat.NewVecDense(a.actions.Len(), nil)
	values.MulVec(a.weights, mat.NewVecDense(Features, features(c)))
	return values
}

// Act returns the action with the largest approximate value in the
// state described by obs, breaking ties in favour of the action listed
// first
func (a *Approximator) Act(obs game.Observation) game.Action {
	return a.actions.At(matutils.MaxVec(a.Values(state.Discretize(obs))))
}

// MeanSquaredError returns the mean squared difference between the
// approximate and tabulated action values over all codes in the table
func (a *Approximator) MeanSquaredError(table *qtable.Table) (float64,
	error) {
	if !a.actions.Equal(table.Actions()) {
		return 0, errors.Errorf("meanSquaredError: table actions %v do not "+
			"match %v", table.Actions(), a.actions)
	}
	if table.Len() == 0 {
		return 0, nil
	}

	total := 0.0
	table.Range(func(c state.Code, values mat.Vector) bool {
		diff := mat.Col(nil, 0, values)
		floats.Sub(diff, a.Values(c).RawVector().Data)
		total += floats.Dot(diff, diff)
		return true
	})
	return total / float64(table.Len()*table.Width()), nil
}

// Actions returns the action set the approximator chooses from
func (a *Approximator) Actions() game.ActionSet {
	return a.actions
}

// Weights returns the weights of the linear model, one row per action
func (a *Approximator) Weights() mat.Matrix {
	return a.weights
}

func (a *Approximator) String() string {
	return fmt.Sprintf("Approximator | actions: %v\n%v", a.actions,
		matutils.Format(a.weights))
}
