package repl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollector(t *testing.T) {
	cases := map[string]struct {
		lines []string
		want  string
	}{
		"single": {
			lines: []string{"echo hello"},
			want:  "echo hello",
		},
		"for": {
			lines: []string{"for i in 1 2 3", "do", "  echo $i", "done"},
			want:  "for i in 1 2 3; do echo $i; done",
		},
		"while": {
			lines: []string{"while cat flag", "do", "  cat flag", "  rm flag", "done"},
			want:  "while cat flag; do cat flag; rm flag; done",
		},
		"if-else": {
			lines: []string{"if pwd", "then", "echo yes", "else", "echo no", "fi"},
			want:  "if pwd; then echo yes; else echo no; fi",
		},
		"blank-lines": {
			lines: []string{"if pwd; then", "", "echo yes", "   ", "fi"},
			want:  "if pwd; then; echo yes; fi",
		},
		"function": {
			lines: []string{"function greet()", "{", "echo hello", "}"},
			want:  "function greet(); { echo hello; }",
		},
		"nested": {
			lines: []string{"for i in 1 2", "do", "if echo $i", "then", "echo yes", "fi", "done"},
			want:  "for i in 1 2; do if echo $i; then echo yes; fi; done",
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			var c Collector
			for i, line := range tc.lines {
				pending := c.Add(line)
				if i < len(tc.lines)-1 {
					assert.True(t, pending || c.Command() == "", "line %d %q closed the command early", i, line)
				} else {
					assert.False(t, pending)
				}
			}
			assert.Equal(t, tc.want, c.Command())
			assert.Equal(t, PromptPrimary, c.Prompt())
		})
	}
}

func TestCollector_Prompt(t *testing.T) {
	var c Collector
	assert.Equal(t, PromptPrimary, c.Prompt())

	c.Add("while echo a")
	assert.Equal(t, PromptContinuation, c.Prompt())

	c.Reset()
	assert.Equal(t, PromptPrimary, c.Prompt())
	assert.Equal(t, "", c.Command())
}
