// Package fileutils provides utilities for safely writing files
package fileutils

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// WriteAtomic writes a file by calling write on a temporary file in the
// same directory as path, syncing it, and renaming it over path. If
// write or any file operation fails, the file at path is left as it was.
func WriteAtomic(path string, write func(io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "writeAtomic: could not create directory %v",
			dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "writeAtomic: could not create temporary file")
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = write(tmp); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return errors.Wrap(err, "writeAtomic: could not sync temporary file")
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "writeAtomic: could not close temporary file")
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrapf(err, "writeAtomic: could not replace %v", path)
	}
	return nil
}
