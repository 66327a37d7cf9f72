// Package repl reads command lines interactively or from a script and hands
// complete commands to a shell session.
package repl

import (
	"strings"

	"github.com/josephlewis42/minish/core/shell"
)

const (
	PromptPrimary      = "> "
	PromptContinuation = ">> "
	PromptHeredoc      = "heredoc> "
)

// Collector gathers the lines of a control block entered over several
// lines into a single command.
type Collector struct {
	lines []string
}

// Add appends a line and reports whether the command needs more lines.
// Blank lines are ignored.
func (c *Collector) Add(line string) bool {
	if line = strings.TrimSpace(line); line != "" {
		c.lines = append(c.lines, line)
	}
	return c.Pending()
}

// Pending reports whether a block is still open.
func (c *Collector) Pending() bool {
	return len(c.lines) > 0 && shell.OpenBlocks(c.Command()) > 0
}

// Prompt is the prompt to show before the next line.
func (c *Collector) Prompt() string {
	if c.Pending() {
		return PromptContinuation
	}
	return PromptPrimary
}

// Command joins the collected lines. Lines are separated by "; " except
// after a line that only opens a body, which is followed by a space.
func (c *Collector) Command() string {
	var out strings.Builder
	for i, line := range c.lines {
		out.WriteString(line)
		if i == len(c.lines)-1 {
			break
		}

		switch line {
		case "do", "then", "else", "{":
			out.WriteString(" ")
		default:
			out.WriteString("; ")
		}
	}
	return out.String()
}

// Reset drops the collected lines.
func (c *Collector) Reset() {
	c.lines = nil
}
