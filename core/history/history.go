// Package history holds the bounded command log of a session.
package history

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/josephlewis42/minish/errors"
)

// DefaultCapacity is the number of entries kept when no capacity is given.
const DefaultCapacity = 1000

// Entry is a numbered history line.
type Entry struct {
	// Number is the 1-based position of the entry in the log.
	Number  int
	Command string
}

func (e Entry) String() string {
	return fmt.Sprintf("%4d  %s", e.Number, e.Command)
}

// Log is a bounded, FIFO-evicting list of commands.
type Log struct {
	mu       sync.Mutex
	commands []string
	capacity int
}

// New creates a log holding at most capacity entries.
func New(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{capacity: capacity}
}

// Add appends command. Blank commands and repeats of the most recent entry
// are dropped.
func (l *Log) Add(command string) {
	if strings.TrimSpace(command) == "" {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if n := len(l.commands); n > 0 && l.commands[n-1] == command {
		return
	}
	if len(l.commands) >= l.capacity {
		l.commands = l.commands[1:]
	}
	l.commands = append(l.commands, command)
}

// Replace swaps the whole log for commands, keeping only the newest entries
// that fit.
func (l *Log) Replace(commands []string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if extra := len(commands) - l.capacity; extra > 0 {
		commands = commands[extra:]
	}
	l.commands = append([]string(nil), commands...)
}

// Clear removes every entry.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.commands = nil
}

// Len returns the number of entries.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.commands)
}

// Commands returns a copy of the raw entries, oldest first.
func (l *Log) Commands() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.commands...)
}

// List returns every entry with its number.
func (l *Log) List() []Entry {
	return numbered(l.Commands())
}

// Search returns entries containing query, ignoring case. The most recent
// entry is excluded since it is usually the search itself.
func (l *Log) Search(query string) []Entry {
	entries := l.List()
	if len(entries) > 0 {
		entries = entries[:len(entries)-1]
	}

	query = strings.ToLower(query)
	var out []Entry
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Command), query) {
			out = append(out, e)
		}
	}
	return out
}

// Get returns the entry with the given 1-based number.
func (l *Log) Get(number int) (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if number < 1 || number > len(l.commands) {
		return "", false
	}
	return l.commands[number-1], true
}

// Last returns the most recent entry.
func (l *Log) Last() (string, bool) {
	return l.FromEnd(1)
}

// FromEnd returns the n-th most recent entry, 1 being the latest.
func (l *Log) FromEnd(n int) (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if n < 1 || n > len(l.commands) {
		return "", false
	}
	return l.commands[len(l.commands)-n], true
}

// WithPrefix returns the most recent entry starting with prefix.
func (l *Log) WithPrefix(prefix string) (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := len(l.commands) - 1; i >= 0; i-- {
		if strings.HasPrefix(l.commands[i], prefix) {
			return l.commands[i], true
		}
	}
	return "", false
}

// Format renders entries one per line.
func Format(entries []Entry) string {
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.String()
	}
	return strings.Join(lines, "\n")
}

func numbered(commands []string) []Entry {
	out := make([]Entry, len(commands))
	for i, c := range commands {
		out[i] = Entry{Number: i + 1, Command: c}
	}
	return out
}

// HasEvent reports whether any word of line is a history event reference:
// !!, !N, !-N or !word.
func HasEvent(line string) bool {
	for _, word := range strings.Fields(line) {
		if isEvent(word) {
			return true
		}
	}
	return false
}

func isEvent(word string) bool {
	if word == "!!" {
		return true
	}
	if !strings.HasPrefix(word, "!") || len(word) < 2 {
		return false
	}
	if _, err := strconv.Atoi(word[1:]); err == nil {
		return true
	}
	return unicode.IsLetter([]rune(word[1:])[0])
}

// Expand replaces history event references in line. Lines without an event
// are returned untouched; otherwise the words are re-joined with single
// spaces. An event that can't be resolved is an invalid-argument error.
func (l *Log) Expand(line string) (string, error) {
	if !HasEvent(line) {
		return line, nil
	}

	words := strings.Fields(line)
	for i, word := range words {
		if !strings.HasPrefix(word, "!") || len(word) < 2 {
			continue
		}
		resolved, ok := l.resolve(word[1:])
		if !ok {
			return "", errors.InvalidArgumentf("minish: %s: event not found", word)
		}
		words[i] = resolved
	}
	return strings.Join(words, " "), nil
}

func (l *Log) resolve(event string) (string, bool) {
	first := []rune(event)[0]
	switch {
	case event == "!":
		return l.Last()
	case first == '-':
		n, err := strconv.Atoi(event[1:])
		if err != nil {
			return "", false
		}
		return l.FromEnd(n)
	case unicode.IsDigit(first):
		n, err := strconv.Atoi(event)
		if err != nil {
			return "", false
		}
		return l.Get(n)
	case unicode.IsLetter(first):
		return l.WithPrefix(event)
	default:
		return "", false
	}
}
