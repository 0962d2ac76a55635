package qtable

import (
	"bufio"
	"encoding/gob"
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/samuelfneumann/flappyq/game"
	"github.com/samuelfneumann/flappyq/state"
	"github.com/samuelfneumann/flappyq/utils/fileutils"
	"gonum.org/v1/gonum/mat"
)

// ErrSnapshotUnavailable is returned when a snapshot cannot be read:
// it is missing, unreadable, corrupt, or was written for a different
// action set or format version.
var ErrSnapshotUnavailable = errors.New("snapshot unavailable")

const (
	magic = "flappyq-qtable"

	// Version is the snapshot format version written by this package
	Version = 1
)

// header identifies a snapshot and the action set its vectors are
// indexed by
type header struct {
	Magic   string
	Version int
	Actions []game.Action
}

// entry is a single code and its action values
type entry struct {
	Code   state.Code
	Values []float64
}

// snapshot is the serialized form of a Table. Entries are stored in
// lexicographic code order so that equal tables serialize identically.
type snapshot struct {
	Header  header
	Entries []entry
}

// Write serializes the table to w as a gob-encoded snapshot
func (t *Table) Write(w io.Writer) error {
	snap := snapshot{
		Header: header{
			Magic:   magic,
			Version: Version,
			Actions: append([]game.Action(nil), t.actions...),
		},
		Entries: make([]entry, 0, t.Len()),
	}

	t.Range(func(c state.Code, values mat.Vector) bool {
		snap.Entries = append(snap.Entries, entry{
			Code:   c,
			Values: mat.Col(nil, 0, values),
		})
		return true
	})

	if err := gob.NewEncoder(w).Encode(snap); err != nil {
		return errors.Wrap(err, "write: could not encode snapshot")
	}
	return nil
}

// Read deserializes a snapshot written by Write. The snapshot must have
// been written for exactly the argument action set. Any failure returns
// an error wrapping ErrSnapshotUnavailable.
func Read(r io.Reader, actions game.ActionSet) (*Table, error) {
	var snap snapshot
	if err := gob.NewDecoder(r).Decode(&snap); err != nil {
		return nil, errors.Wrapf(ErrSnapshotUnavailable,
			"read: could not decode snapshot: %v", err)
	}

	h := snap.Header
	if h.Magic != magic {
		return nil, errors.Wrapf(ErrSnapshotUnavailable,
			"read: not a value table snapshot (magic %q)", h.Magic)
	}
	if h.Version != Version {
		return nil, errors.Wrapf(ErrSnapshotUnavailable,
			"read: unsupported snapshot version %v (want %v)", h.Version,
			Version)
	}
	if !actions.Equal(h.Actions) {
		return nil, errors.Wrapf(ErrSnapshotUnavailable,
			"read: snapshot actions %v do not match %v", h.Actions, actions)
	}

	table := New(actions)
	for _, e := range snap.Entries {
		if !e.Code.Valid() {
			return nil, errors.Wrapf(ErrSnapshotUnavailable,
				"read: invalid code %v", e.Code)
		}
		if len(e.Values) != table.Width() {
			return nil, errors.Wrapf(ErrSnapshotUnavailable,
				"read: code %v has %v values, want %v", e.Code,
				len(e.Values), table.Width())
		}
		if table.Contains(e.Code) {
			return nil, errors.Wrapf(ErrSnapshotUnavailable,
				"read: duplicate code %v", e.Code)
		}
		table.values[e.Code] = mat.NewVecDense(len(e.Values), e.Values)
	}

	return table, nil
}

// Save writes the table to the file at path. The previous contents of
// path are only replaced once the whole snapshot has been written.
func (t *Table) Save(path string) error {
	return fileutils.WriteAtomic(path, func(w io.Writer) error {
		buf := bufio.NewWriter(w)
		if err := t.Write(buf); err != nil {
			return err
		}
		return buf.Flush()
	})
}

// Load reads a table from the file at path. See Read.
func Load(path string, actions game.ActionSet) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(ErrSnapshotUnavailable, "load: %v", err)
	}
	defer file.Close()

	return Read(bufio.NewReader(file), actions)
}

// ExportEntry is a single line of a table export
type ExportEntry struct {
	Code   state.Code `json:"code"`
	Values []float64  `json:"values"`
}

// Export writes every code and its action values to w as JSON lines, in
// lexicographic code order, for consumption by external tools.
func (t *Table) Export(w io.Writer) error {
	enc := json.NewEncoder(w)

	var err error
	t.Range(func(c state.Code, values mat.Vector) bool {
		err = enc.Encode(ExportEntry{Code: c, Values: mat.Col(nil, 0, values)})
		return err == nil
	})
	if err != nil {
		return errors.Wrap(err, "export: could not encode entry")
	}
	return nil
}
