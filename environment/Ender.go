package environment

import (
	"gonum.org/v1/gonum/spatial/r1"

	"github.com/samuelfneumann/flappyq/game"
	"github.com/samuelfneumann/flappyq/timestep"
)

// Ender determines when episodes should end. If an episode should end,
// End() modifies the TimeStep so that its StepType is timestep.Last and
// its EndType tells why the episode ended.
type Ender interface {
	End(t *timestep.TimeStep) bool
}

// StepLimit implements the Ender interface to end episodes at specific
// timestep limits. Episodes ended by a StepLimit end with a
// timestep.Timeout.
type StepLimit struct {
	episodeSteps int
}

// NewStepLimit creates and returns a new step limit
func NewStepLimit(episodeSteps int) StepLimit {
	return StepLimit{episodeSteps}
}

// End ends the episode if the TimeStep number has reached the limit
func (s StepLimit) End(t *timestep.TimeStep) bool {
	if t.Number >= s.episodeSteps {
		t.StepType = timestep.Last
		t.SetEnd(timestep.Timeout)
		return true
	}
	return false
}

// PlayerBounds implements the Ender interface to end episodes whenever
// the player's height leaves an interval, e.g. the bird hits the ground
// or flies off the top of the screen. Episodes ended by PlayerBounds end
// in a terminal state.
type PlayerBounds struct {
	bounds r1.Interval
}

// NewPlayerBounds creates and returns a new PlayerBounds ender
func NewPlayerBounds(bounds r1.Interval) *PlayerBounds {
	if bounds.Min > bounds.Max {
		panic("newPlayerBounds: bounds minimum greater than maximum")
	}
	return &PlayerBounds{bounds}
}

// End ends the episode if the player's height is out of bounds
func (p *PlayerBounds) End(t *timestep.TimeStep) bool {
	y := t.Observation.PlayerY
	if y < p.bounds.Min || y > p.bounds.Max {
		t.StepType = timestep.Last
		t.SetEnd(timestep.TerminalStateReached)
		return true
	}
	return false
}

// FunctionEnder ends an episode whenever a function of the observation
// returns true
type FunctionEnder struct {
	end     func(game.Observation) bool
	endType timestep.EndType
}

// NewFunctionEnder returns a new FunctionEnder which ends episodes with
// end type endType when f returns true
func NewFunctionEnder(f func(game.Observation) bool,
	endType timestep.EndType) *FunctionEnder {
	return &FunctionEnder{f, endType}
}

// End ends the episode if the FunctionEnder's function returns true for
// the TimeStep's observation
func (f *FunctionEnder) End(t *timestep.TimeStep) bool {
	if f.end(t.Observation) {
		t.StepType = timestep.Last
		t.SetEnd(f.endType)
		return true
	}
	return false
}

// Ended wraps an environment and ends its episodes early whenever any of
// its Enders says so. Ended itself implements the Environment interface.
type Ended struct {
	Environment
	enders []Ender
}

// NewEnded returns a new Ended environment
func NewEnded(env Environment, enders ...Ender) *Ended {
	return &Ended{env, enders}
}

// Step takes an action in the wrapped environment, then checks each
// Ender in order if the wrapped environment did not end the episode
func (e *Ended) Step(action game.Action) (timestep.TimeStep, bool, error) {
	step, done, err := e.Environment.Step(action)
	if err != nil || done {
		return step, done, err
	}

	for _, ender := range e.enders {
		if ender.End(&step) {
			return step, true, nil
		}
	}
	return step, false, nil
}
