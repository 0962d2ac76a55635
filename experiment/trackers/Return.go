package trackers

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/samuelfneumann/flappyq/timestep"
)

// Return tracks and saves the episodic return in an experiment. When
// an environment returns a TimeStep, this Tracker will extract the
// reward and accumulate the return for each episode in the experiment.
//
// Note: An episode must finish for this Tracker to save its data.
// If the last episode in an experiment does not finish, that episode's
// return will not be saved.
type Return struct {
	lastTimeStep   int
	currentReturn  float64
	episodeReturns []float64
	filename       string
	logger         logrus.FieldLogger
}

// NewReturn creates and returns a new *Return Tracker which saves its
// data to filename
func NewReturn(filename string, logger logrus.FieldLogger) *Return {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Return{lastTimeStep: -1, filename: filename, logger: logger}
}

// Track tracks the rewards seen on a timestep. By calling this method
// on every timestep, the Tracker will store all rewards seen in the
// episode, and save the cumulative reward for that episode as the
// episodic return. A First TimeStep starts a new episode, discarding
// the return of any unfinished episode.
func (r *Return) Track(step timestep.TimeStep) {
	if step.First() {
		r.currentReturn = 0
	} else if r.lastTimeStep+1 != step.Number {
		r.logger.WithFields(logrus.Fields{
			"last":    r.lastTimeStep,
			"current": step.Number,
		}).Warn("tracked timesteps are not sequential")
	}
	r.lastTimeStep = step.Number

	// The reward of a First TimeStep belongs to no transition
	if !step.First() {
		r.currentReturn += step.Reward
	}

	if step.Last() {
		r.episodeReturns = append(r.episodeReturns, r.currentReturn)
		r.currentReturn = 0.0
		r.lastTimeStep = -1
	}
}

// Data returns the returns of all finished episodes
func (r *Return) Data() []float64 {
	return r.episodeReturns
}

// Save saves the data tracked by the Return Tracker to disk
func (r *Return) Save() error {
	return errors.Wrap(save(r.filename, r.episodeReturns), "save")
}
