package commands

import (
	"os"
	"path/filepath"

	"github.com/josephlewis42/minish/errors"
)

// Mkdir creates a directory. With parents set, missing parents are created
// and an existing directory is not an error.
func (o *OS) Mkdir(path string, parents bool) error {
	o.debugf("Creating directory : %s", path)

	if parents {
		return errors.IO(o.Fs.MkdirAll(path, 0755))
	}

	if parent := filepath.Dir(o.Fs.Abs(path)); !o.Fs.IsDir(parent) {
		return errors.IO(&os.PathError{Op: "mkdir", Path: path, Err: os.ErrNotExist})
	}
	if _, err := o.Fs.Stat(path); err == nil {
		return errors.IO(&os.PathError{Op: "mkdir", Path: path, Err: os.ErrExist})
	}

	return errors.IO(o.Fs.Mkdir(path, 0755))
}
