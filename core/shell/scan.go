package shell

import (
	"sort"
	"strings"
)

type role int

const (
	roleWord role = iota
	roleSemi      // ;
	rolePipe      // |
	roleOpen      // if, while, for, function
	roleMid       // then, do, {
	roleElse      // else
	roleClose     // fi, done, }
)

// token is a word or operator of a command line. Structural keywords sit
// at the depth of the block they belong to, the contents of a block one
// level deeper.
type token struct {
	text       string
	start, end int
	depth      int
	role       role
}

// blockFrame tracks one open control block while scanning.
type blockFrame struct {
	keyword string
	mid     string
	closer  string
	seenMid bool
}

var blockKeywords = map[string]blockFrame{
	"if":       {keyword: "if", mid: "then", closer: "fi"},
	"while":    {keyword: "while", mid: "do", closer: "done"},
	"for":      {keyword: "for", mid: "do", closer: "done"},
	"function": {keyword: "function", mid: "{", closer: "}"},
}

// splitWords breaks s into words at whitespace, ';' and '|'. The operators
// become words of their own.
func splitWords(s string) []token {
	var out []token
	start := -1
	flush := func(end int) {
		if start >= 0 {
			out = append(out, token{text: s[start:end], start: start, end: end})
			start = -1
		}
	}

	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case ' ', '\t', '\n', '\r':
			flush(i)
		case ';', '|':
			flush(i)
			out = append(out, token{text: s[i : i+1], start: i, end: i + 1})
		default:
			if start < 0 {
				start = i
			}
		}
	}
	flush(len(s))
	return out
}

// scan tokenizes s and assigns each token its role and block depth.
// Keywords open and close blocks only in command position, that is at the
// start of a statement. Block heads like "then" are recognized anywhere
// until their block has seen one, and so is the brace closing a function.
// The returned depth is the number of blocks left open at the end of s.
func scan(s string) ([]token, int) {
	toks := splitWords(s)

	var stack []blockFrame
	cmdPos := true
	for i := range toks {
		t := &toks[i]
		t.depth = len(stack)

		var top *blockFrame
		if len(stack) > 0 {
			top = &stack[len(stack)-1]
		}

		switch {
		case t.text == ";" || t.text == "|":
			t.role = roleSemi
			if t.text == "|" {
				t.role = rolePipe
			}
			cmdPos = true
			continue

		case top != nil && !top.seenMid && isBlockHead(top, t.text):
			t.role = roleMid
			t.depth--
			top.seenMid = true
			cmdPos = true
			continue

		case top != nil && top.seenMid && t.text == top.closer && (cmdPos || top.keyword == "function"):
			t.role = roleClose
			t.depth--
			stack = stack[:len(stack)-1]
			cmdPos = false
			continue

		case top != nil && top.seenMid && cmdPos && top.keyword == "if" && t.text == "else":
			t.role = roleElse
			t.depth--
			cmdPos = true
			continue

		case cmdPos:
			if frame, ok := blockKeywords[t.text]; ok {
				t.role = roleOpen
				stack = append(stack, frame)
				cmdPos = frame.keyword != "function" && frame.keyword != "for"
				continue
			}
		}

		t.role = roleWord
		cmdPos = false
	}

	return toks, len(stack)
}

// isBlockHead reports whether word starts the body of the open block f.
// A function body may start with a brace glued to its header.
func isBlockHead(f *blockFrame, word string) bool {
	if f.keyword == "function" {
		return strings.Contains(word, "{")
	}
	return word == f.mid
}

// splitTopLevel returns the trimmed, non-empty segments of s between
// operator tokens of kind r outside of any block.
func splitTopLevel(s string, toks []token, r role) []string {
	var out []string
	start := 0
	add := func(end int) {
		if seg := strings.TrimSpace(s[start:end]); seg != "" {
			out = append(out, seg)
		}
	}
	for _, t := range toks {
		if t.depth == 0 && t.role == r {
			add(t.start)
			start = t.end
		}
	}
	add(len(s))
	return out
}

func hasTopLevel(toks []token, r role) bool {
	for _, t := range toks {
		if t.depth == 0 && t.role == r {
			return true
		}
	}
	return false
}

// blockEnd returns the index of the token closing the block opened at
// toks[0], or -1 if it is never closed.
func blockEnd(toks []token) int {
	for i, t := range toks {
		if i > 0 && t.depth == toks[0].depth && t.role == roleClose {
			return i
		}
	}
	return -1
}

// OpenBlocks returns the number of control blocks left open at the end of
// text.
func OpenBlocks(text string) int {
	_, depth := scan(text)
	return depth
}

// Keywords returns the words that open a control block, sorted.
func Keywords() []string {
	out := make([]string, 0, len(blockKeywords))
	for k := range blockKeywords {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
