// Package shell parses and evaluates minish command lines.
//
// Input goes through command substitution and alias expansion, is parsed
// into a tree of Command values and then evaluated against a Session.
// Leaf commands call into the builtin operations in the commands package;
// structural commands chain, branch, loop and schedule other commands.
package shell

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Result is the outcome of evaluating a command that didn't fail.
type Result struct {
	// Output is the continuation text of the command.
	Output string
	// Exit is set when the session should end.
	Exit bool
}

// Continue is a Result carrying output.
func Continue(output string) Result {
	return Result{Output: output}
}

// Command is a node of a parsed command tree. Trees are immutable once
// built.
type Command interface {
	fmt.Stringer

	// Eval runs the command. input is the external input override fed by a
	// pipe or an input redirect, nil when there is none.
	Eval(ctx context.Context, s *Session, input *string) (Result, error)
}

// expander is implemented by leaves with variable-valued string fields. It
// returns a copy with those fields expanded and never changes the tree's
// shape.
type expander interface {
	expand(lookup LookupFunc) Command
}

// words joins non-empty parts with a space.
func words(parts ...string) string {
	var out []string
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}

// Pipeline chains raw command segments, each stage reading the output of the
// previous one. Segments are parsed when the pipeline runs.
type Pipeline struct {
	Segments []string
}

func (c *Pipeline) String() string {
	return strings.Join(c.Segments, " | ")
}

// RedirectOp is a file redirection operator.
type RedirectOp string

const (
	RedirectOut    RedirectOp = ">"
	RedirectAppend RedirectOp = ">>"
	RedirectIn     RedirectOp = "<"
)

// Redirect sends the output of Command to Target or feeds Target to it.
type Redirect struct {
	Command Command
	Op      RedirectOp
	Target  string
}

func (c *Redirect) String() string {
	return words(c.Command.String(), string(c.Op), c.Target)
}

func (c *Redirect) expand(lookup LookupFunc) Command {
	out := *c
	out.Target = ExpandVariables(c.Target, lookup)
	return &out
}

// Background runs Command as a job.
type Background struct {
	Command Command
}

func (c *Background) String() string {
	return c.Command.String() + " &"
}

// If runs Then when Cond succeeds and Else, which may be nil, when it fails.
type If struct {
	Cond Command
	Then Command
	Else Command
}

func (c *If) String() string {
	out := fmt.Sprintf("if %s; then %s", c.Cond, c.Then)
	if c.Else != nil {
		out += fmt.Sprintf("; else %s", c.Else)
	}
	return out + "; fi"
}

// While runs Body for as long as Cond succeeds.
type While struct {
	Cond Command
	Body Command
}

func (c *While) String() string {
	return fmt.Sprintf("while %s; do %s; done", c.Cond, c.Body)
}

// For runs Body once per item with Var bound to it.
type For struct {
	Var   string
	Items []string
	Body  Command
}

func (c *For) String() string {
	return fmt.Sprintf("for %s in %s; do %s; done", c.Var, strings.Join(c.Items, " "), c.Body)
}

// Function defines or replaces a function.
type Function struct {
	Name string
	Body Command
}

func (c *Function) String() string {
	return fmt.Sprintf("function %s() { %s; }", c.Name, c.Body)
}

// FunctionCall runs a defined function with positional arguments.
type FunctionCall struct {
	Name string
	Args []string
}

func (c *FunctionCall) String() string {
	return words(append([]string{c.Name}, c.Args...)...)
}

func (c *FunctionCall) expand(lookup LookupFunc) Command {
	out := &FunctionCall{Name: c.Name, Args: make([]string, len(c.Args))}
	for i, arg := range c.Args {
		out.Args[i] = ExpandVariables(arg, lookup)
	}
	return out
}

// Compound runs commands in sequence.
type Compound struct {
	Commands []Command
}

func (c *Compound) String() string {
	parts := make([]string, len(c.Commands))
	for i, cmd := range c.Commands {
		parts[i] = cmd.String()
	}
	return strings.Join(parts, "; ")
}

// HistoryAction selects what the history builtin does.
type HistoryAction int

const (
	HistoryList HistoryAction = iota
	HistorySearch
	HistoryExecute
)

// History lists, searches or replays the history log.
type History struct {
	Action HistoryAction
	Query  string
	// Index is the 1-based entry replayed by HistoryExecute.
	Index int
}

func (c *History) String() string {
	switch c.Action {
	case HistorySearch:
		return words("history", "search", c.Query)
	case HistoryExecute:
		return words("history", strconv.Itoa(c.Index))
	default:
		return "history"
	}
}

func (c *History) expand(lookup LookupFunc) Command {
	out := *c
	out.Query = ExpandVariables(c.Query, lookup)
	return &out
}
