package shell

import (
	"strings"
	"sync"

	"github.com/elliotchance/orderedmap/v3"
)

// AliasEntry is a single alias definition.
type AliasEntry struct {
	Name    string
	Command string
}

// AliasTable maps alias names to replacement text. Redefining an alias keeps
// its original position in listings.
type AliasTable struct {
	om    *orderedmap.OrderedMap[string, string]
	mutex sync.RWMutex
}

// NewAliasTable creates a table holding the given aliases in order.
func NewAliasTable(entries ...AliasEntry) *AliasTable {
	t := &AliasTable{om: orderedmap.NewOrderedMap[string, string]()}
	for _, e := range entries {
		t.Set(e.Name, e.Command)
	}
	return t
}

// Set defines or replaces an alias.
func (t *AliasTable) Set(name, command string) {
	defer t.mutex.Unlock()
	t.mutex.Lock()
	t.om.Set(name, command)
}

// Get looks up an alias.
func (t *AliasTable) Get(name string) (string, bool) {
	defer t.mutex.RUnlock()
	t.mutex.RLock()
	return t.om.Get(name)
}

// Delete removes an alias and reports whether it existed.
func (t *AliasTable) Delete(name string) bool {
	defer t.mutex.Unlock()
	t.mutex.Lock()
	return t.om.Delete(name)
}

// Len returns the number of aliases.
func (t *AliasTable) Len() int {
	defer t.mutex.RUnlock()
	t.mutex.RLock()
	return t.om.Len()
}

// All returns a snapshot of the aliases in definition order.
func (t *AliasTable) All() []AliasEntry {
	defer t.mutex.RUnlock()
	t.mutex.RLock()

	out := make([]AliasEntry, 0, t.om.Len())
	for name, command := range t.om.AllFromFront() {
		out = append(out, AliasEntry{Name: name, Command: command})
	}
	return out
}

// ExpandLeading replaces the first word of line with its alias, once. The
// word "alias" is never replaced.
func (t *AliasTable) ExpandLeading(line string) string {
	trimmed := strings.TrimLeft(line, " \t")
	end := strings.IndexAny(trimmed, " \t;|&<>")
	if end < 0 {
		end = len(trimmed)
	}

	word := trimmed[:end]
	if word == "" || word == "alias" {
		return line
	}

	command, ok := t.Get(word)
	if !ok {
		return line
	}
	return command + trimmed[end:]
}
