// Package logger writes diagnostics and debug traces for the shell.
package logger

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
)

type Color func() PrintFunc
type PrintFunc func(io.Writer, string, ...interface{})

func Default() PrintFunc {
	return color.New(envColor("MINISH_COLOR_RESET", color.Reset)).FprintfFunc()
}
func Blue() PrintFunc {
	return color.New(envColor("MINISH_COLOR_BLUE", color.FgBlue)).FprintfFunc()
}
func Green() PrintFunc {
	return color.New(envColor("MINISH_COLOR_GREEN", color.FgGreen)).FprintfFunc()
}
func Cyan() PrintFunc {
	return color.New(envColor("MINISH_COLOR_CYAN", color.FgCyan)).FprintfFunc()
}
func Yellow() PrintFunc {
	return color.New(envColor("MINISH_COLOR_YELLOW", color.FgYellow)).FprintfFunc()
}
func Magenta() PrintFunc {
	return color.New(envColor("MINISH_COLOR_MAGENTA", color.FgMagenta)).FprintfFunc()
}
func Red() PrintFunc {
	return color.New(envColor("MINISH_COLOR_RED", color.FgRed)).FprintfFunc()
}

func envColor(env string, defaultColor color.Attribute) color.Attribute {
	override, err := strconv.Atoi(os.Getenv(env))
	if err == nil {
		return color.Attribute(override)
	}
	return defaultColor
}

// Logger is just a wrapper that prints stuff to STDOUT or STDERR,
// with optional color. Verbose enables the debug trace.
type Logger struct {
	Stdout  io.Writer
	Stderr  io.Writer
	Verbose bool
	Color   bool

	mu sync.Mutex
}

// New creates a logger without color, writing to the given streams.
func New(stdout, stderr io.Writer) *Logger {
	return &Logger{Stdout: stdout, Stderr: stderr}
}

// Outf prints stuff to STDOUT.
func (l *Logger) Outf(color Color, s string, args ...interface{}) {
	l.FOutf(l.Stdout, color, s+"\n", args...)
}

// FOutf prints stuff to the given writer.
func (l *Logger) FOutf(w io.Writer, color Color, s string, args ...interface{}) {
	if w == nil {
		return
	}
	if len(args) == 0 {
		s, args = "%s", []interface{}{s}
	}

	print := PrintFunc(func(w io.Writer, s string, args ...interface{}) {
		fmt.Fprintf(w, s, args...)
	})
	if l.Color {
		print = color()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	print(w, s, args...)
}

// VerboseOutf prints stuff to STDOUT if verbose mode is enabled.
func (l *Logger) VerboseOutf(color Color, s string, args ...interface{}) {
	if l.Verbose {
		l.Outf(color, s, args...)
	}
}

// Errf prints stuff to STDERR.
func (l *Logger) Errf(color Color, s string, args ...interface{}) {
	l.FOutf(l.Stderr, color, s+"\n", args...)
}

// VerboseErrf prints stuff to STDERR if verbose mode is enabled.
func (l *Logger) VerboseErrf(color Color, s string, args ...interface{}) {
	if l.Verbose {
		l.Errf(color, s, args...)
	}
}

// Error reports err on STDERR in red.
func (l *Logger) Error(err error) {
	l.Errf(Red, "%v", err)
}

// Debugf prints a trace line on STDERR in verbose mode.
func (l *Logger) Debugf(s string, args ...interface{}) {
	l.VerboseErrf(Magenta, "[debug] "+s, args...)
}

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Dump prints a structural dump of v in verbose mode.
func (l *Logger) Dump(label string, v interface{}) {
	if !l.Verbose {
		return
	}
	dump := strings.TrimRight(dumpConfig.Sdump(v), "\n")
	l.VerboseErrf(Cyan, "[debug] %s: %s", label, dump)
}
