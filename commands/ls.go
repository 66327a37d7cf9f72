package commands

import (
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/josephlewis42/minish/errors"
)

// Ls lists the working directory, one entry per line. Directories get a
// trailing slash.
func (o *OS) Ls() (string, error) {
	dir := o.Fs.Getwd()
	o.debugf("Listing directory: %s", dir)

	entries, err := afero.ReadDir(o.Fs, dir)
	if err != nil {
		return "", errors.IO(err)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	var lines []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			name += "/"
		}
		lines = append(lines, name)
	}

	return strings.Join(lines, "\n"), nil
}
