package checkpointer

import (
	"io"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// recorder records the paths it is saved to
type recorder struct {
	paths []string
	err   error
}

func (r *recorder) Save(path string) error {
	if r.err != nil {
		return r.err
	}
	r.paths = append(r.paths, path)
	return nil
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestNStepCadence(t *testing.T) {
	r := &recorder{}
	c, err := NewNStep(3, r, EpisodeNamer("table", ".gob"), quietLogger())
	if err != nil {
		t.Fatal(err)
	}

	for episode := 0; episode <= 10; episode++ {
		if err := c.Checkpoint(episode); err != nil {
			t.Fatal(err)
		}
	}

	want := []string{"table-3.gob", "table-6.gob", "table-9.gob"}
	if len(r.paths) != len(want) {
		t.Fatalf("checkpoint: expected saves %v, got %v", want, r.paths)
	}
	for i := range want {
		if r.paths[i] != want[i] {
			t.Errorf("checkpoint: expected save %v to %v, got %v", i, want[i],
				r.paths[i])
		}
	}
}

func TestNStepError(t *testing.T) {
	saveErr := errors.New("disk full")
	c, _ := NewNStep(1, &recorder{err: saveErr}, Fixed("table.gob"),
		quietLogger())

	if err := c.Checkpoint(1); !errors.Is(err, saveErr) {
		t.Errorf("checkpoint: expected wrapped save error, got %v", err)
	}
}

func TestNewNStepInterval(t *testing.T) {
	if _, err := NewNStep(0, &recorder{}, Fixed("x"), nil); err == nil {
		t.Error("newNStep: expected error for zero interval")
	}
}

func TestNamers(t *testing.T) {
	if got := Fixed("a.gob")(7); got != "a.gob" {
		t.Errorf("fixed: expected a.gob, got %v", got)
	}

	if got := EpisodeNamer("a", ".gob")(12); got != "a-12.gob" {
		t.Errorf("episodeNamer: expected a-12.gob, got %v", got)
	}
}
