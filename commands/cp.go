package commands

import (
	"io"
	"os"
	"path/filepath"

	"github.com/juju/ratelimit"
	"github.com/spf13/afero"

	"github.com/josephlewis42/minish/errors"
)

// Cp copies source to destination. A directory destination receives the
// file under its own name. Directories need recursive.
func (o *OS) Cp(source, destination string, recursive bool) error {
	o.debugf("Copying %s to %s", source, destination)

	if !recursive && o.Fs.IsDir(source) {
		return errors.InvalidArgumentf("source is a directory (use -r for recursive copy)")
	}

	var bytes int64
	var err error
	if recursive && o.Fs.IsDir(source) {
		bytes, err = o.copyTree(source, destination)
	} else {
		if o.Fs.IsDir(destination) {
			destination = filepath.Join(destination, filepath.Base(source))
		}
		bytes, err = o.copyFile(source, destination)
	}
	if err != nil {
		return errors.IO(err)
	}

	o.debugf("Copied %s from %s to %s", BytesToHuman(bytes), source, destination)
	return nil
}

func (o *OS) copyTree(source, destination string) (int64, error) {
	if err := o.Fs.MkdirAll(destination, 0755); err != nil {
		return 0, err
	}

	entries, err := afero.ReadDir(o.Fs, source)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, entry := range entries {
		from := filepath.Join(source, entry.Name())
		to := filepath.Join(destination, entry.Name())

		var n int64
		if entry.IsDir() {
			n, err = o.copyTree(from, to)
		} else {
			n, err = o.copyFile(from, to)
		}
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

func (o *OS) copyFile(source, destination string) (int64, error) {
	in, err := o.Fs.Open(source)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	stat, err := in.Stat()
	if err != nil {
		return 0, err
	}

	out, err := o.Fs.OpenFile(destination, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, stat.Mode().Perm())
	if err != nil {
		return 0, err
	}
	defer out.Close()

	var r io.Reader = in
	if o.CopyBytesPerSecond > 0 {
		bucket := ratelimit.NewBucketWithRate(float64(o.CopyBytesPerSecond), o.CopyBytesPerSecond)
		r = ratelimit.Reader(in, bucket)
	}

	n, err := io.Copy(out, r)
	if err != nil {
		return n, err
	}
	return n, out.Close()
}
