// Package replay implements reading and writing recorded game
// transitions, one JSON object per line, so that agents can learn from
// play that happened elsewhere
package replay

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/pkg/errors"

	"github.com/samuelfneumann/flappyq/game"
)

// Transition is a single recorded step of play: the observation an
// action was taken in, the action, the reward that followed, the next
// observation, and whether the episode ended
type Transition struct {
	Observation game.Observation `json:"observation"`
	Action      game.Action      `json:"action"`
	Reward      float64          `json:"reward"`
	Next        game.Observation `json:"next_observation"`
	Done        bool             `json:"done"`

	// Terminal is set if the episode ended in a terminal state, so that
	// Next has no future value. A transition which is Done but not
	// Terminal was cut off by a timeout.
	Terminal bool `json:"terminal"`
}

// UnmarshalJSON decodes a Transition. A transition recorded without a
// terminal field is terminal exactly when it is done.
func (t *Transition) UnmarshalJSON(data []byte) error {
	type transition Transition
	var decoded struct {
		transition
		Terminal *bool `json:"terminal"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	*t = Transition(decoded.transition)
	t.Terminal = t.Done
	if decoded.Terminal != nil {
		t.Terminal = *decoded.Terminal
	}
	return nil
}

// Reader reads Transitions from a stream of JSON lines
type Reader struct {
	scanner *bufio.Scanner
	line    int
}

// NewReader returns a Reader reading from r
func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)
	return &Reader{scanner: scanner}
}

// Read returns the next Transition. Blank lines are skipped. At the end
// of the stream Read returns io.EOF.
func (r *Reader) Read() (Transition, error) {
	for r.scanner.Scan() {
		r.line++
		line := r.scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var t Transition
		if err := json.Unmarshal(line, &t); err != nil {
			return Transition{}, errors.Wrapf(err, "read: line %v", r.line)
		}
		return t, nil
	}

	if err := r.scanner.Err(); err != nil {
		return Transition{}, errors.Wrapf(err, "read: line %v", r.line+1)
	}
	return Transition{}, io.EOF
}

// Line returns the number of lines read so far
func (r *Reader) Line() int {
	return r.line
}

// Writer writes Transitions as JSON lines
type Writer struct {
	enc *json.Encoder
}

// NewWriter returns a Writer writing to w
func NewWriter(w io.Writer) *Writer {
	return &Writer{json.NewEncoder(w)}
}

// Write writes a single Transition
func (w *Writer) Write(t Transition) error {
	return errors.Wrap(w.enc.Encode(t), "write")
}
