package shell

import (
	"strings"

	"github.com/josephlewis42/minish/errors"
)

// parseBlock parses a control block spanning all of text. toks[0] is the
// opening keyword. The block may be followed by a redirect applying to the
// whole block.
func (s *Session) parseBlock(text string, toks []token) (Command, error) {
	var (
		block Command
		err   error
	)

	end := blockEnd(toks)
	switch toks[0].text {
	case "if":
		block, err = s.parseIf(text, toks, end)
	case "while":
		block, err = s.parseWhile(text, toks, end)
	case "for":
		block, err = s.parseFor(text, toks, end)
	case "function":
		block, err = s.parseFunction(text, toks, end)
	default:
		return nil, errors.Parsef("unknown block '%s'", toks[0].text)
	}
	if err != nil {
		return nil, err
	}

	rest := strings.TrimSpace(text[toks[end].end:])
	if rest == "" {
		return block, nil
	}
	if inner, op, target, ok := splitRedirect(rest); ok && inner == "" {
		return &Redirect{Command: block, Op: op, Target: target}, nil
	}
	return nil, errors.Parsef("%s: unexpected '%s' after '%s'", toks[0].text, rest, toks[end].text)
}

// findRole returns the index of the first token of role r in toks[from:to]
// sitting at the depth of the block opened by toks[0], or -1.
func findRole(toks []token, r role, from, to int) int {
	if to < 0 {
		to = len(toks)
	}
	for i := from; i < to; i++ {
		if toks[i].depth == toks[0].depth && toks[i].role == r {
			return i
		}
	}
	return -1
}

// between returns the text strictly between two tokens with any trailing
// ';' removed.
func between(text string, from, to token) string {
	part := strings.TrimSpace(text[from.end:to.start])
	return strings.TrimSpace(strings.TrimRight(part, ";"))
}

func (s *Session) parseIf(text string, toks []token, end int) (Command, error) {
	then := findRole(toks, roleMid, 1, end)
	if then < 0 {
		return nil, errors.Parsef("if: 'then' not found")
	}
	if end < 0 {
		return nil, errors.Parsef("if: 'fi' not found")
	}

	cond, err := s.parseSequence(splitStatements(between(text, toks[0], toks[then])))
	if err != nil {
		return nil, err
	}

	out := &If{Cond: cond}
	thenEnd := end
	if elseAt := findRole(toks, roleElse, then+1, end); elseAt >= 0 {
		thenEnd = elseAt
		if out.Else, err = s.parseBody(between(text, toks[elseAt], toks[end])); err != nil {
			return nil, err
		}
	}
	if out.Then, err = s.parseBody(between(text, toks[then], toks[thenEnd])); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) parseWhile(text string, toks []token, end int) (Command, error) {
	do := findRole(toks, roleMid, 1, end)
	if do < 0 {
		return nil, errors.Parsef("while: 'do' not found")
	}
	if end < 0 {
		return nil, errors.Parsef("while: 'done' not found")
	}

	cond, err := s.parseSequence(splitStatements(between(text, toks[0], toks[do])))
	if err != nil {
		return nil, err
	}
	body, err := s.parseBody(between(text, toks[do], toks[end]))
	if err != nil {
		return nil, err
	}
	return &While{Cond: cond, Body: body}, nil
}

func (s *Session) parseFor(text string, toks []token, end int) (Command, error) {
	if len(toks) < 3 || toks[2].text != "in" {
		return nil, errors.Parsef("for: 'in' not found")
	}
	do := findRole(toks, roleMid, 3, end)
	if do < 0 {
		return nil, errors.Parsef("for: 'do' not found")
	}
	if end < 0 {
		return nil, errors.Parsef("for: 'done' not found")
	}

	out := &For{Var: toks[1].text}
	for _, t := range toks[3:do] {
		if t.role != roleSemi {
			out.Items = append(out.Items, t.text)
		}
	}

	var err error
	if out.Body, err = s.parseBody(between(text, toks[do], toks[end])); err != nil {
		return nil, err
	}
	return out, nil
}

// parseFunction parses "function name() { body }". The opening brace may
// be glued to the header as in "function name(){".
func (s *Session) parseFunction(text string, toks []token, end int) (Command, error) {
	brace := findRole(toks, roleMid, 1, end)

	headerEnd := len(text)
	bodyStart := len(text)
	if brace >= 0 {
		headerEnd = toks[brace].start + strings.Index(toks[brace].text, "{")
		bodyStart = headerEnd + 1
	}
	header := text[toks[0].end:headerEnd]

	open := strings.Index(header, "(")
	if open < 0 {
		return nil, errors.Parsef("function: '(' not found")
	}
	closing := strings.Index(header, ")")
	if closing < 0 {
		return nil, errors.Parsef("function: ')' not found")
	}
	if closing != open+1 {
		return nil, errors.Parsef("function: parameters not supported")
	}
	if brace < 0 {
		return nil, errors.Parsef("function: '{' not found")
	}
	if end < 0 {
		return nil, errors.Parsef("function: '}' not found")
	}

	name := strings.TrimSpace(header[:open])
	if name == "" {
		return nil, errors.Parsef("function: name required")
	}

	body := strings.TrimSpace(strings.TrimRight(strings.TrimSpace(text[bodyStart:toks[end].start]), ";"))
	cmd, err := s.parseBody(body)
	if err != nil {
		return nil, err
	}
	return &Function{Name: name, Body: cmd}, nil
}

// parseBody parses the statements of a block body.
func (s *Session) parseBody(body string) (Command, error) {
	return s.parseSequence(splitStatements(body))
}

// splitStatements splits text at ';' outside of nested blocks.
func splitStatements(text string) []string {
	toks, _ := scan(text)
	return splitTopLevel(text, toks, roleSemi)
}
