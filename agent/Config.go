package agent

import "golang.org/x/exp/rand"

// Config represents a configuration for creating an agent
type Config interface {
	// CreateAgent creates the agent that the config describes, drawing
	// all randomness from source
	CreateAgent(source rand.Source) (Agent, error)

	// Validate returns an error describing whether or not the
	// configuration is valid or not.
	Validate() error
}
