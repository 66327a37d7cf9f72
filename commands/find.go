package commands

import (
	"strings"

	"github.com/spf13/afero"

	"github.com/josephlewis42/minish/errors"
)

// Find lists every path below dir whose base name matches pattern. The
// pattern supports '*' for any run of characters and '?' for exactly one.
func (o *OS) Find(dir, pattern string) (string, error) {
	if dir == "" {
		dir = "."
	}

	var lines []string
	if err := o.find(dir, pattern, &lines); err != nil {
		return "", errors.IO(err)
	}
	return strings.Join(lines, "\n"), nil
}

func (o *OS) find(dir, pattern string, lines *[]string) error {
	entries, err := afero.ReadDir(o.Fs, dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		path := joinPath(dir, entry.Name())
		if MatchWildcard(entry.Name(), pattern) {
			*lines = append(*lines, path)
		}

		if entry.IsDir() {
			if err := o.find(path, pattern, lines); err != nil {
				return err
			}
		}
	}
	return nil
}

// joinPath keeps a leading "./" so results read as relative paths.
func joinPath(dir, name string) string {
	return strings.TrimSuffix(dir, "/") + "/" + name
}

// MatchWildcard reports whether name matches pattern in full. Only '*' and
// '?' are special, every other byte matches itself.
func MatchWildcard(name, pattern string) bool {
	n, p := 0, 0
	// Position after the last star seen and the name index it was tried at.
	star, mark := -1, 0

	for n < len(name) {
		switch {
		case p < len(pattern) && (pattern[p] == '?' || pattern[p] == name[n]):
			n++
			p++
		case p < len(pattern) && pattern[p] == '*':
			p++
			star, mark = p, n
		case star >= 0:
			// Let the last star eat one more byte.
			mark++
			n, p = mark, star
		default:
			return false
		}
	}

	for p < len(pattern) && pattern[p] == '*' {
		p++
	}
	return p == len(pattern)
}
