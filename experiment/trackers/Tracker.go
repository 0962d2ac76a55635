// Package trackers implements Trackers, which track and save data in an
// experiment
package trackers

import (
	"bufio"
	"encoding/gob"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/samuelfneumann/flappyq/timestep"
	"github.com/samuelfneumann/flappyq/utils/fileutils"
)

// Tracker keeps track of experiment data and saves the data after the
// experiment has finished
type Tracker interface {
	Track(t timestep.TimeStep)
	Save() error
}

// save gob-encodes data to filename, replacing any previous contents
// only once everything has been written
func save(filename string, data []float64) error {
	return fileutils.WriteAtomic(filename, func(w io.Writer) error {
		buf := bufio.NewWriter(w)
		if err := gob.NewEncoder(buf).Encode(data); err != nil {
			return errors.Wrap(err, "could not encode data")
		}
		return buf.Flush()
	})
}

// LoadData loads and returns the data saved by a Tracker
func LoadData(filename string) ([]float64, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "loadData: could not open data file")
	}
	defer file.Close()

	var data []float64
	if err := gob.NewDecoder(bufio.NewReader(file)).Decode(&data); err != nil {
		return nil, errors.Wrap(err, "loadData: could not decode data")
	}
	return data, nil
}
