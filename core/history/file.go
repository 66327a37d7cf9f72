package history

import (
	"bufio"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

const (
	// EnvHistFile overrides the location of the history file.
	EnvHistFile = "MINISH_HISTFILE"
	// DefaultFileName is used when neither the environment nor the
	// configuration name a file.
	DefaultFileName = ".minish_history"
)

// FilePath picks the history file: the environment override, then the
// configured path, then DefaultFileName.
func FilePath(lookup func(string) (string, bool), configured string) string {
	if lookup != nil {
		if p, ok := lookup(EnvHistFile); ok && p != "" {
			return p
		}
	}
	if configured != "" {
		return configured
	}
	return DefaultFileName
}

// Load replaces the log with the contents of path, one command per line.
// Blank lines are skipped and a missing file is not an error.
func (l *Log) Load(fs afero.Fs, path string) error {
	exists, err := afero.Exists(fs, path)
	if err != nil || !exists {
		return err
	}

	fd, err := fs.Open(path)
	if err != nil {
		return err
	}
	defer fd.Close()

	var commands []string
	scanner := bufio.NewScanner(fd)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		commands = append(commands, line)
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	l.Replace(commands)
	return nil
}

// Save writes the log to path, creating parent directories as needed.
func (l *Log) Save(fs afero.Fs, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	fd, err := fs.Create(path)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(fd)
	for _, cmd := range l.Commands() {
		fmt.Fprintln(w, cmd)
	}
	if err := w.Flush(); err != nil {
		fd.Close()
		return err
	}
	return fd.Close()
}
