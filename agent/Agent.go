// Package agent defines agent interfaces
package agent

import (
	"io"

	"github.com/samuelfneumann/flappyq/game"
)

// Actor is the capability shared by every agent that plays the game: it
// chooses an action for an observation.
type Actor interface {
	Act(obs game.Observation) game.Action
}

// Learner implements a learning algorithm that defines how action
// values are updated from observed transitions.
type Learner interface {
	// Update performs a single update from the transition
	// (obs, action, reward, next), where done indicates that next is the
	// last observation of the episode
	Update(obs game.Observation, action game.Action, reward float64,
		next game.Observation, done bool) error

	// DecayEpsilon decays the exploration rate. It should be called once
	// at the end of each episode.
	DecayEpsilon()
}

// Persister is an agent whose learned values can be saved and restored
type Persister interface {
	Persist(w io.Writer) error
	Restore(r io.Reader) error
}

// Saver is an agent whose learned values can be saved to and loaded from
// files
type Saver interface {
	Save(path string) error
	Load(path string) error
}

// Agent determines the implementation details of a learning agent.
//
// An Agent is composed of an Actor, which chooses actions, and a Learner
// which learns from the transitions the chosen actions lead to. The
// Actor and Learner share the same action values so that any changes the
// Learner makes are reflected in the actions the Actor chooses.
type Agent interface {
	Actor
	Learner
	Persister
	Saver
}

// EGreedy is an Agent with an ε-greedy behaviour policy whose epsilon
// can be set and retrieved
type EGreedy interface {
	Agent
	Epsilon() float64
	SetEpsilon(float64)
}
