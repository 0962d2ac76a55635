// Package environment outlines the contract between agents and the game
// they play: an Environment executes one action per frame and reports the
// resulting TimeStep.
package environment

import (
	"github.com/samuelfneumann/flappyq/game"
	"github.com/samuelfneumann/flappyq/timestep"
)

// Environment implements a simulated game. The environment produces a
// TimeStep holding the Observation for each frame and accepts a single
// action per step.
//
// Agents place no constraints on environment internals beyond this
// contract.
type Environment interface {
	// Reset starts a new episode and returns its first TimeStep
	Reset() (timestep.TimeStep, error)

	// Step executes a single action and returns the resulting TimeStep
	// together with whether the episode has ended
	Step(action game.Action) (timestep.TimeStep, bool, error)

	// Actions returns the ordered set of legal actions
	Actions() game.ActionSet
}
