package repl

import (
	"strings"
)

// Heredoc is the header of a "cmd <<DELIM" line.
type Heredoc struct {
	Command   string
	Delimiter string
	// StripTabs is set by "<<-", one leading tab is removed from each line.
	StripTabs bool
}

// ContainsHeredoc reports whether line has a heredoc operator. "<<<" is not
// one.
func ContainsHeredoc(line string) bool {
	return strings.Contains(line, "<<") && !strings.Contains(line, "<<<")
}

// ParseHeredoc splits a heredoc line into its command and delimiter.
func ParseHeredoc(line string) (Heredoc, bool) {
	op, strip := "<<-", true
	pos := strings.Index(line, op)
	if pos < 0 {
		op, strip = "<<", false
		pos = strings.Index(line, op)
	}
	if pos < 0 {
		return Heredoc{}, false
	}

	fields := strings.Fields(line[pos+len(op):])
	if len(fields) == 0 {
		return Heredoc{}, false
	}
	return Heredoc{
		Command:   strings.TrimSpace(line[:pos]),
		Delimiter: fields[0],
		StripTabs: strip,
	}, true
}

// Body joins heredoc content lines, applying StripTabs.
func (h Heredoc) Body(lines []string) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		if h.StripTabs {
			line = strings.TrimPrefix(line, "\t")
		}
		out[i] = line
	}
	return strings.Join(out, "\n")
}

// IsEnd reports whether line closes the heredoc. Only a trailing newline is
// ignored.
func (h Heredoc) IsEnd(line string) bool {
	return strings.TrimRight(line, "\r\n") == h.Delimiter
}
