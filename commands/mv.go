package commands

import (
	"path/filepath"

	"github.com/josephlewis42/minish/errors"
)

// Mv renames source to destination. A file moved onto a directory keeps its
// name inside that directory.
func (o *OS) Mv(source, destination string) error {
	stat, err := o.Fs.Stat(source)
	if err != nil {
		return errors.IO(err)
	}

	if !stat.IsDir() && o.Fs.IsDir(destination) {
		destination = filepath.Join(destination, filepath.Base(source))
	}

	o.debugf("Moving %s to %s", source, destination)
	return errors.IO(o.Fs.Rename(source, destination))
}
