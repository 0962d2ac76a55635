package experiment

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/samuelfneumann/flappyq/agent"
	"github.com/samuelfneumann/flappyq/environment"
	"github.com/samuelfneumann/flappyq/experiment/checkpointer"
	"github.com/samuelfneumann/flappyq/experiment/trackers"
	"github.com/samuelfneumann/flappyq/timestep"
)

// Online is an Experiment that runs an agent online in an environment.
// The agent learns from each transition as it happens and decays its
// exploration rate at the end of each episode. Episodes which end in a
// timestep.Timeout are learned from as if they had continued.
type Online struct {
	hooks
	env   environment.Environment
	agent agent.Agent

	maxEpisodes, maxSteps int
	episodes, steps       int
}

// NewOnline creates and returns a new online experiment on a given
// environment with a given agent. The experiment ends after maxEpisodes
// episodes or maxSteps steps, whichever comes first. A limit of 0 means
// no limit, but at least one limit must be set.
func NewOnline(env environment.Environment, a agent.Agent, maxEpisodes,
	maxSteps int, t []trackers.Tracker,
	c []checkpointer.Checkpointer) (*Online, error) {
	if maxEpisodes <= 0 && maxSteps <= 0 {
		return nil, errors.New("newOnline: an episode or step limit is " +
			"required")
	}

	return &Online{
		hooks:       hooks{trackers: t, checkpointers: c},
		env:         env,
		agent:       a,
		maxEpisodes: maxEpisodes,
		maxSteps:    maxSteps,
	}, nil
}

// CreateOnline creates an online experiment from the Config, using the
// argument agent and environment
func (c Config) CreateOnline(env environment.Environment, a agent.Agent,
	t ...trackers.Tracker) (*Online, error) {
	check, err := c.Checkpointers(a)
	if err != nil {
		return nil, errors.Wrap(err, "createOnline")
	}
	return NewOnline(env, a, c.MaxEpisodes, c.MaxSteps, t, check)
}

// finished returns whether an experiment limit has been reached
func (o *Online) finished() bool {
	return (o.maxEpisodes > 0 && o.episodes >= o.maxEpisodes) ||
		(o.maxSteps > 0 && o.steps >= o.maxSteps)
}

// RunEpisode runs a single episode of the experiment. An episode cut
// short by the step limit does not count as finished and does not decay
// the agent's exploration rate.
func (o *Online) RunEpisode() (bool, error) {
	if o.finished() {
		return true, nil
	}

	step, err := o.env.Reset()
	if err != nil {
		return true, errors.Wrap(err, "runEpisode: could not reset")
	}
	o.track(step)

	for done := false; !done; {
		if o.maxSteps > 0 && o.steps >= o.maxSteps {
			return true, nil
		}

		// Select action, step in environment
		action := o.agent.Act(step.Observation)
		next, end, err := o.env.Step(action)
		if err != nil {
			return true, errors.Wrapf(err, "runEpisode: step %v", o.steps)
		}
		o.steps++
		done = end
		if done {
			next.StepType = timestep.Last
		}

		// Episodes cut off by a timeout still bootstrap from the last
		// observation
		err = o.agent.Update(step.Observation, action, next.Reward,
			next.Observation, next.Terminal())
		if err != nil {
			return true, errors.Wrapf(err, "runEpisode: step %v", o.steps)
		}

		o.track(next)
		step = next
	}

	o.agent.DecayEpsilon()
	o.episodes++
	logger.WithFields(logrus.Fields{
		"episode": o.episodes,
		"steps":   step.Number,
	}).Debug("episode finished")

	if err := o.checkpoint(o.episodes); err != nil {
		return true, errors.Wrap(err, "runEpisode")
	}
	return o.finished(), nil
}

// Run runs the entire experiment
func (o *Online) Run() error {
	for {
		finished, err := o.RunEpisode()
		if err != nil || finished {
			return err
		}
	}
}

// Episodes returns the number of finished episodes
func (o *Online) Episodes() int {
	return o.episodes
}

// Steps returns the number of steps taken
func (o *Online) Steps() int {
	return o.steps
}
