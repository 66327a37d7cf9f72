// Package commands implements the builtin file and text operations of the
// shell. Every operation works against a virtual OS and returns its output
// as a string.
package commands

import (
	"fmt"
	"strings"

	getopt "github.com/pborman/getopt/v2"

	"github.com/josephlewis42/minish/core/logger"
	"github.com/josephlewis42/minish/core/vos"
	"github.com/josephlewis42/minish/errors"
)

// OS is the virtual system builtins operate on.
type OS struct {
	Fs  *vos.WorkingDirFs
	Env vos.VEnv
	Log *logger.Logger

	// CopyBytesPerSecond caps cp throughput, 0 is unlimited.
	CopyBytesPerSecond int64
}

func (o *OS) debugf(format string, args ...interface{}) {
	if o.Log != nil {
		o.Log.Debugf(format, args...)
	}
}

func BytesToHuman(bytes int64) string {
	for _, e := range []struct {
		unit  string
		power int64
	}{
		{"P", 1e15},
		{"T", 1e12},
		{"G", 1e9},
		{"M", 1e6},
		{"K", 1e3},
	} {
		quotient := bytes / e.power
		switch {
		case quotient == 0:
			continue
		case quotient > 10:
			return fmt.Sprintf("%d%s", quotient, e.unit)
		default:
			return fmt.Sprintf("%0.1f%s", float64(bytes)/float64(e.power), e.unit)
		}
	}

	return fmt.Sprintf("%d", bytes)
}

// Unbounded is the MaxArgs of a builtin accepting any number of arguments.
const Unbounded = -1

type SimpleCommand struct {
	// Use holds a one line usage string, its first word is the command name.
	Use string
	// Short holds a one line description of the command.
	Short string
	// MinArgs is the fewest arguments the command accepts.
	MinArgs int
	// MaxArgs is the most arguments the command accepts, or Unbounded.
	MaxArgs int
}

// Name is the first word of Use.
func (s *SimpleCommand) Name() string {
	name, _, _ := strings.Cut(s.Use, " ")
	return name
}

// CheckArity validates the number of arguments, flags included.
func (s *SimpleCommand) CheckArity(args []string) error {
	switch {
	case len(args) < s.MinArgs:
		return errors.InvalidArgumentf("%s requires at least %d argument(s)\nUsage: %s", s.Name(), s.MinArgs, s.Use)
	case s.MaxArgs != Unbounded && len(args) > s.MaxArgs:
		return errors.InvalidArgumentf("%s accepts at most %d argument(s)\nUsage: %s", s.Name(), s.MaxArgs, s.Use)
	default:
		return nil
	}
}

// ParseFlags parses args with the flags registered by define and returns the
// remaining positional arguments. Each call uses a fresh flag set.
func (s *SimpleCommand) ParseFlags(args []string, define func(flags *getopt.Set)) ([]string, error) {
	flags := getopt.New()
	flags.SetProgram(s.Name())
	if define != nil {
		define(flags)
	}

	if err := flags.Getopt(append([]string{s.Name()}, args...), nil); err != nil {
		return nil, errors.InvalidArgumentf("%s: %v\nUsage: %s", s.Name(), err, s.Use)
	}
	return flags.Args(), nil
}
