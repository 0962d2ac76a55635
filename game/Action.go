// Package game defines the vocabulary shared by agents and the game
// they play: the per-frame Observation and the ordered set of legal
// actions.
package game

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrUnknownAction is returned whenever an action is used that is not
// a member of the ActionSet in use
var ErrUnknownAction = errors.New("action not in action set")

// Action is a single legal input to the game. Actions are identified by
// the key code the game binds to them.
type Action int

const (
	// Noop lets the bird fall for one frame
	Noop Action = 0

	// Flap makes the bird flap its wings. The value is the key code the
	// game engine binds to flapping.
	Flap Action = 119
)

func (a Action) String() string {
	switch a {
	case Flap:
		return "Flap"
	case Noop:
		return "Noop"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// ActionSet is the ordered, fixed list of legal actions. The position
// of an action in the set is the index used to address the action's
// value in a value vector, so the order must never change during the
// lifetime of an agent.
type ActionSet []Action

// DefaultActions returns the action set of the game: flap first, then
// do nothing.
func DefaultActions() ActionSet {
	return ActionSet{Flap, Noop}
}

// NewActionSet returns a new ActionSet over the argument actions. An
// error is returned if actions is empty or contains duplicates.
func NewActionSet(actions ...Action) (ActionSet, error) {
	if len(actions) == 0 {
		return nil, errors.New("newActionSet: at least one action required")
	}

	seen := make(map[Action]struct{}, len(actions))
	for _, a := range actions {
		if _, ok := seen[a]; ok {
			return nil, errors.Errorf("newActionSet: duplicate action %v", a)
		}
		seen[a] = struct{}{}
	}

	set := make(ActionSet, len(actions))
	copy(set, actions)
	return set, nil
}

// Len returns the number of actions in the set
func (s ActionSet) Len() int {
	return len(s)
}

// At returns the action at index i
func (s ActionSet) At(i int) Action {
	return s[i]
}

// IndexOf returns the index of action a in the set. If a is not in the
// set, an error wrapping ErrUnknownAction is returned.
func (s ActionSet) IndexOf(a Action) (int, error) {
	for i, action := range s {
		if action == a {
			return i, nil
		}
	}
	return -1, errors.Wrapf(ErrUnknownAction, "indexOf: %v", a)
}

// Equal returns whether two action sets hold the same actions in the
// same order
func (s ActionSet) Equal(other ActionSet) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}
