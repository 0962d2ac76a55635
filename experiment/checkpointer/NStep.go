package checkpointer

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// nStep implements checkpointing every N episodes
type nStep struct {
	interval int
	object   Saver // Object to save

	// filename returns the filename of the file to save the object in.
	//
	// If each checkpoint should replace the last, use Fixed. If each
	// checkpoint should be kept in a separate file named by episode
	// (e.g. file-100.gob, file-200.gob, ...) use EpisodeNamer. For
	// example:
	//
	// n := NewNStep(100, agent, EpisodeNamer("q_table", ".gob"))
	filename Namer
	logger   logrus.FieldLogger
}

// NewNStep returns a checkpointer that checkpoints every n episodes
func NewNStep(n int, object Saver, filename Namer,
	logger logrus.FieldLogger) (Checkpointer, error) {
	if n <= 0 {
		return nil, errors.Errorf("newNStep: interval must be positive, "+
			"got %v", n)
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &nStep{
		interval: n,
		object:   object,
		filename: filename,
		logger:   logger,
	}, nil
}

// Checkpoint saves the Checkpointer's tracked object if episode is a
// multiple of the checkpoint interval
func (n *nStep) Checkpoint(episode int) error {
	if episode == 0 || episode%n.interval != 0 {
		return nil
	}

	path := n.filename(episode)
	if err := n.object.Save(path); err != nil {
		return errors.Wrapf(err, "checkpoint: episode %v", episode)
	}
	n.logger.WithFields(logrus.Fields{
		"episode": episode,
		"path":    path,
	}).Info("checkpoint saved")
	return nil
}
