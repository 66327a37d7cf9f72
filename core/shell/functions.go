package shell

import (
	"sort"

	"github.com/puzpuzpuz/xsync/v4"
)

// FunctionTable maps function names to their bodies.
type FunctionTable struct {
	m *xsync.Map[string, Command]
}

// NewFunctionTable creates an empty table.
func NewFunctionTable() *FunctionTable {
	return &FunctionTable{m: xsync.NewMap[string, Command]()}
}

// Define sets or replaces a function.
func (t *FunctionTable) Define(name string, body Command) {
	t.m.Store(name, body)
}

// Get looks up a function body.
func (t *FunctionTable) Get(name string) (Command, bool) {
	return t.m.Load(name)
}

// Names returns the defined function names, sorted.
func (t *FunctionTable) Names() []string {
	var out []string
	t.m.Range(func(name string, _ Command) bool {
		out = append(out, name)
		return true
	})
	sort.Strings(out)
	return out
}
