package approx

import (
	"bufio"
	"encoding/gob"
	"io"
	"os"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/flappyq/game"
	"github.com/samuelfneumann/flappyq/utils/fileutils"
)

const magic = "flappyq-linear"

// weightsFile is the serialized form of an Approximator
type weightsFile struct {
	Magic   string
	Actions []game.Action
	Weights []byte // mat.Dense binary encoding
}

// Persist writes the approximator's action set and weights to w
func (a *Approximator) Persist(w io.Writer) error {
	weights, err := a.weights.MarshalBinary()
	if err != nil {
		return errors.Wrap(err, "persist: could not marshal weights")
	}

	file := weightsFile{
		Magic:   magic,
		Actions: append([]game.Action(nil), a.actions...),
		Weights: weights,
	}
	if err := gob.NewEncoder(w).Encode(file); err != nil {
		return errors.Wrap(err, "persist: could not encode weights")
	}
	return nil
}

// Restore reads an approximator written by Persist from r, replacing
// the action set and weights
func (a *Approximator) Restore(r io.Reader) error {
	var file weightsFile
	if err := gob.NewDecoder(r).Decode(&file); err != nil {
		return errors.Wrap(err, "restore: could not decode weights")
	}
	if file.Magic != magic {
		return errors.Errorf("restore: not an approximator (magic %q)",
			file.Magic)
	}

	actions, err := game.NewActionSet(file.Actions...)
	if err != nil {
		return errors.Wrap(err, "restore")
	}

	var weights mat.Dense
	if err := weights.UnmarshalBinary(file.Weights); err != nil {
		return errors.Wrap(err, "restore: could not unmarshal weights")
	}
	if rows, cols := weights.Dims(); rows != actions.Len() ||
		cols != Features {
		return errors.Errorf("restore: weights have shape (%v, %v), want "+
			"(%v, %v)", rows, cols, actions.Len(), Features)
	}

	a.actions = actions
	a.weights = &weights
	return nil
}

// Save saves the approximator to the file at path, replacing its
// previous contents only once everything has been written
func (a *Approximator) Save(path string) error {
	return fileutils.WriteAtomic(path, func(w io.Writer) error {
		buf := bufio.NewWriter(w)
		if err := a.Persist(buf); err != nil {
			return err
		}
		return buf.Flush()
	})
}

// Load replaces the action set and weights with those saved with Save
// in the file at path
func (a *Approximator) Load(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "load")
	}
	defer file.Close()

	if err := a.Restore(bufio.NewReader(file)); err != nil {
		return errors.Wrapf(err, "load %v", path)
	}
	return nil
}

// Load loads an approximator saved with Save
func Load(path string) (*Approximator, error) {
	a := &Approximator{}
	if err := a.Load(path); err != nil {
		return nil, err
	}
	return a, nil
}
