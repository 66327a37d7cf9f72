package commands

import (
	"fmt"

	"github.com/josephlewis42/minish/errors"
)

// Rm removes a file. Recursive also removes directories and their contents,
// force ignores every failure.
func (o *OS) Rm(path string, recursive, force bool) error {
	o.debugf("deleting file: %s", path)

	err := o.remove(path, recursive)
	if err != nil && force {
		o.debugf("force mode : ignoring error - %v", err)
		return nil
	}
	return err
}

func (o *OS) remove(path string, recursive bool) error {
	stat, err := o.Fs.Stat(path)
	switch {
	case err != nil:
		return errors.IO(err)

	case stat.IsDir() && !recursive:
		return errors.IO(fmt.Errorf("rm: cannot remove '%s': Is a directory", path))

	case stat.IsDir():
		return errors.IO(o.Fs.RemoveAll(path))

	default:
		return errors.IO(o.Fs.Remove(path))
	}
}
