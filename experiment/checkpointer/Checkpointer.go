// Package checkpointer implements saving agents periodically during an
// experiment
package checkpointer

// Saver is an object that can save itself to a file
type Saver interface {
	Save(path string) error
}

// Checkpointer checkpoints/saves objects at the end of episodes. The
// episode argument is the number of episodes completed so far.
type Checkpointer interface {
	Checkpoint(episode int) error
}
