// Package timestep implements timesteps of the agent-environment interaction
package timestep

import (
	"fmt"

	"github.com/samuelfneumann/flappyq/game"
)

// StepType denotes the type of step that a TimeStep can be, either  first
// environmental step, a middle step, or a last step
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

func (s StepType) String() string {
	switch s {
	case First:
		return "First"
	case Last:
		return "Last"
	default:
		return "Mid"
	}
}

// EndType denotes why an episode ended. Only the EndType of the Last
// TimeStep in an episode is meaningful.
type EndType int

const (
	// TerminalStateReached means the game itself ended, e.g. the bird
	// crashed. The last observation has no future value.
	TerminalStateReached EndType = iota

	// Timeout means the episode was cut off externally, e.g. by a step
	// limit. The game could have continued from the last observation.
	Timeout
)

func (e EndType) String() string {
	if e == Timeout {
		return "Timeout"
	}
	return "TerminalStateReached"
}

// TimeStep packages together a single timestep in an environment. The
// Reward is the reward received on the transition into this timestep.
type TimeStep struct {
	StepType
	Reward      float64
	Observation game.Observation
	Number      int
	end         EndType
}

// New returns a new TimeStep
func New(t StepType, r float64, o game.Observation, n int) TimeStep {
	return TimeStep{StepType: t, Reward: r, Observation: o, Number: n}
}

// First returns whether a TimeStep is the first in an episode
func (t TimeStep) First() bool {
	return t.StepType == First
}

// Mid returns whether a TimeStep is a middle step in an episode
func (t TimeStep) Mid() bool {
	return t.StepType == Mid
}

// Last returns whether a TimeStep is the last step in an episode
func (t TimeStep) Last() bool {
	return t.StepType == Last
}

// End returns why the episode ended
func (t TimeStep) End() EndType {
	return t.end
}

// SetEnd sets why the episode ended
func (t *TimeStep) SetEnd(e EndType) {
	t.end = e
}

// Terminal returns whether the TimeStep is the last of an episode which
// ended in a terminal state
func (t TimeStep) Terminal() bool {
	return t.Last() && t.end == TerminalStateReached
}

func (t TimeStep) String() string {
	str := "TimeStep | Type: %v  |  Reward:  %.2f  |  Step Number:  %v"

	return fmt.Sprintf(str, t.StepType, t.Reward, t.Number)
}
