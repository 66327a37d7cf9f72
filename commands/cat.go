package commands

import (
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/josephlewis42/minish/errors"
)

// Cat returns the contents of name. If input is set it is returned instead
// and name is ignored.
func (o *OS) Cat(name string, input *string) (string, error) {
	if input != nil {
		return *input, nil
	}

	o.debugf("Attempting to read file: %s", name)
	if o.Fs.IsDir(name) {
		return "", errors.IO(fmt.Errorf("'%s' is a directory", name))
	}

	contents, err := afero.ReadFile(o.Fs, name)
	if err != nil {
		return "", errors.IO(err)
	}
	o.debugMetadata(name)

	return string(contents), nil
}

// Write replaces the contents of name with content.
func (o *OS) Write(name, content string) (string, error) {
	o.debugf("Writing to file: %s (%d bytes)", name, len(content))

	if err := afero.WriteFile(o.Fs, name, []byte(content), 0644); err != nil {
		return "", errors.IO(err)
	}
	o.debugMetadata(name)

	return fmt.Sprintf("File written successfully: %s", name), nil
}

// Append adds content to the end of name, creating it if needed.
func (o *OS) Append(name, content string) error {
	fd, err := o.Fs.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return errors.IO(err)
	}
	defer fd.Close()

	if _, err := fd.WriteString(content); err != nil {
		return errors.IO(err)
	}
	return errors.IO(fd.Close())
}

func (o *OS) debugMetadata(name string) {
	if o.Log == nil || !o.Log.Verbose {
		return
	}
	if stat, err := o.Fs.Stat(name); err == nil {
		o.debugf("File metadata: size=%d bytes, permissions=%o", stat.Size(), stat.Mode().Perm())
	}
}
