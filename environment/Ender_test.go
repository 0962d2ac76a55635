package environment

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r1"

	"github.com/samuelfneumann/flappyq/game"
	"github.com/samuelfneumann/flappyq/timestep"
)

// falling is an environment which never ends, in which the player
// falls by 10 units each step unless flapping
type falling struct {
	step int
	y    float64
}

func (f *falling) Reset() (timestep.TimeStep, error) {
	f.step, f.y = 0, 100
	return timestep.New(timestep.First, 0, game.Observation{PlayerY: f.y},
		0), nil
}

func (f *falling) Step(a game.Action) (timestep.TimeStep, bool, error) {
	f.step++
	if a != game.Flap {
		f.y += 10
	}
	return timestep.New(timestep.Mid, 1, game.Observation{PlayerY: f.y},
		f.step), false, nil
}

func (f *falling) Actions() game.ActionSet {
	return game.DefaultActions()
}

// runEpisode steps env with action until the episode ends, returning the
// last TimeStep and the number of steps
func runEpisode(t *testing.T, env Environment,
	action game.Action) (timestep.TimeStep, int) {
	step, err := env.Reset()
	if err != nil {
		t.Fatal(err)
	}
	for n := 1; n <= 1000; n++ {
		var done bool
		step, done, err = env.Step(action)
		if err != nil {
			t.Fatal(err)
		}
		if done {
			return step, n
		}
	}
	t.Fatal("episode did not end")
	return step, 0
}

func TestStepLimit(t *testing.T) {
	env := NewEnded(&falling{}, NewStepLimit(5))

	last, n := runEpisode(t, env, game.Flap)
	if n != 5 {
		t.Errorf("stepLimit: expected 5 steps, got %v", n)
	}
	if !last.Last() || last.End() != timestep.Timeout || last.Terminal() {
		t.Errorf("stepLimit: expected last timeout step, got %v (%v)", last,
			last.End())
	}
}

func TestPlayerBounds(t *testing.T) {
	env := NewEnded(&falling{}, NewStepLimit(50),
		NewPlayerBounds(r1.Interval{Min: 0, Max: 150}))

	// Falling from 100 leaves the bounds on the sixth step
	last, n := runEpisode(t, env, game.Noop)
	if n != 6 {
		t.Errorf("playerBounds: expected 6 steps, got %v", n)
	}
	if !last.Terminal() {
		t.Errorf("playerBounds: expected terminal step, got %v", last)
	}

	// Flapping stays in bounds until the step limit
	if _, n := runEpisode(t, env, game.Flap); n != 50 {
		t.Errorf("playerBounds: expected step limit of 50, got %v", n)
	}
}

func TestFunctionEnder(t *testing.T) {
	above := func(o game.Observation) bool { return o.PlayerY >= 130 }
	env := NewEnded(&falling{}, NewFunctionEnder(above,
		timestep.TerminalStateReached))

	last, n := runEpisode(t, env, game.Noop)
	if n != 3 || !last.Terminal() {
		t.Errorf("functionEnder: expected terminal step 3, got step %v: %v",
			n, last)
	}
}
