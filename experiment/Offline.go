package experiment

import (
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/samuelfneumann/flappyq/agent"
	"github.com/samuelfneumann/flappyq/environment/replay"
	"github.com/samuelfneumann/flappyq/experiment/checkpointer"
	"github.com/samuelfneumann/flappyq/experiment/trackers"
	"github.com/samuelfneumann/flappyq/timestep"
)

// Offline is an Experiment in which an agent learns from recorded
// transitions rather than by acting. The agent is updated once per
// transition and decays its exploration rate after each transition that
// ends an episode, exactly as it would have online. Transitions which
// are done but not terminal were cut off by a timeout and bootstrap from
// their next observation.
//
// Trackers receive TimeSteps rebuilt from the recorded transitions.
type Offline struct {
	hooks
	source      *replay.Reader
	agent       agent.Learner
	skipInvalid bool

	maxEpisodes int
	episodes    int
	transitions int
	skipped     int
	exhausted   bool
}

// NewOffline creates an offline experiment replaying transitions from
// source. The experiment ends after maxEpisodes episodes, or when source
// is exhausted if maxEpisodes is 0. If skipInvalid is set, transitions
// the agent rejects are logged and skipped instead of ending the
// experiment with an error. A skipped transition which is done still
// ends its episode.
func NewOffline(source *replay.Reader, a agent.Learner, maxEpisodes int,
	skipInvalid bool, t []trackers.Tracker,
	c []checkpointer.Checkpointer) *Offline {
	return &Offline{
		hooks:       hooks{trackers: t, checkpointers: c},
		source:      source,
		agent:       a,
		skipInvalid: skipInvalid,
		maxEpisodes: maxEpisodes,
	}
}

// CreateOffline creates an offline experiment from the Config, using the
// argument agent and transition source
func (c Config) CreateOffline(source *replay.Reader, a agent.Agent,
	t ...trackers.Tracker) (*Offline, error) {
	check, err := c.Checkpointers(a)
	if err != nil {
		return nil, errors.Wrap(err, "createOffline")
	}
	return NewOffline(source, a, c.MaxEpisodes, c.SkipInvalid, t, check), nil
}

// finished returns whether the experiment has finished
func (o *Offline) finished() bool {
	return o.exhausted || (o.maxEpisodes > 0 && o.episodes >= o.maxEpisodes)
}

// RunEpisode replays transitions until one ends an episode
func (o *Offline) RunEpisode() (bool, error) {
	if o.finished() {
		return true, nil
	}

	step := 0
	for {
		t, err := o.source.Read()
		if err == io.EOF {
			o.exhausted = true
			if step > 0 {
				logger.WithField("transitions", step).Warn(
					"recorded transitions end mid-episode")
			}
			return true, nil
		} else if err != nil {
			return true, errors.Wrap(err, "runEpisode")
		}

		// Timeouts end the episode but still bootstrap
		err = o.agent.Update(t.Observation, t.Action, t.Reward, t.Next,
			t.Done && t.Terminal)
		if err != nil {
			if !o.skipInvalid {
				return true, errors.Wrapf(err, "runEpisode: line %v",
					o.source.Line())
			}
			o.skipped++
			logger.WithError(err).WithField("line", o.source.Line()).Warn(
				"skipping transition")

			// A skipped transition still ends its episode
			if !t.Done {
				continue
			}
		} else {
			o.transitions++
		}

		if step == 0 {
			o.track(timestep.New(timestep.First, 0, t.Observation, 0))
		}
		step++

		next := timestep.New(timestep.Mid, t.Reward, t.Next, step)
		if t.Done {
			next.StepType = timestep.Last
			if !t.Terminal {
				next.SetEnd(timestep.Timeout)
			}
		}
		o.track(next)

		if t.Done {
			break
		}
	}

	o.agent.DecayEpsilon()
	o.episodes++
	logger.WithFields(logrus.Fields{
		"episode":     o.episodes,
		"transitions": step,
	}).Debug("episode finished")

	if err := o.checkpoint(o.episodes); err != nil {
		return true, errors.Wrap(err, "runEpisode")
	}
	return o.finished(), nil
}

// Run replays transitions until the experiment finishes
func (o *Offline) Run() error {
	for {
		finished, err := o.RunEpisode()
		if err != nil || finished {
			return err
		}
	}
}

// Episodes returns the number of finished episodes
func (o *Offline) Episodes() int {
	return o.episodes
}

// Transitions returns the number of transitions learned from
func (o *Offline) Transitions() int {
	return o.transitions
}

// Skipped returns the number of transitions skipped as invalid
func (o *Offline) Skipped() int {
	return o.skipped
}
