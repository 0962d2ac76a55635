package replay

import (
	"github.com/pkg/errors"

	"github.com/samuelfneumann/flappyq/environment"
	"github.com/samuelfneumann/flappyq/game"
	"github.com/samuelfneumann/flappyq/timestep"
)

// Recorder wraps an environment and writes every transition taken in it
// to a Writer. Recorder itself implements the environment.Environment
// interface, so agents act in a Recorder exactly as they would in the
// wrapped environment.
type Recorder struct {
	environment.Environment
	writer *Writer

	// lastStep holds the observation the next action is taken in
	lastStep timestep.TimeStep
}

// NewRecorder returns a Recorder wrapping env and writing to w
func NewRecorder(env environment.Environment, w *Writer) *Recorder {
	return &Recorder{Environment: env, writer: w}
}

// Reset resets the wrapped environment and starts a new episode
func (r *Recorder) Reset() (timestep.TimeStep, error) {
	step, err := r.Environment.Reset()
	if err != nil {
		return step, err
	}
	r.lastStep = step
	return step, nil
}

// Step takes an action in the wrapped environment and records the
// resulting transition. A transition ending the episode is recorded as
// terminal unless the episode ended with a timestep.Timeout.
func (r *Recorder) Step(action game.Action) (timestep.TimeStep, bool,
	error) {
	step, done, err := r.Environment.Step(action)
	if err != nil {
		return step, done, err
	}

	if done {
		step.StepType = timestep.Last
	}
	t := Transition{
		Observation: r.lastStep.Observation,
		Action:      action,
		Reward:      step.Reward,
		Next:        step.Observation,
		Done:        done,
		Terminal:    step.Terminal(),
	}
	if err := r.writer.Write(t); err != nil {
		return step, done, errors.Wrap(err, "step: could not record")
	}

	r.lastStep = step
	return step, done, nil
}
