package shell

import (
	"context"
	"strings"
)

func isNameByte(c byte) bool {
	return c == '_' ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9')
}

// ExpandVariables replaces $NAME and ${NAME} references in s with their
// values from lookup. Unset names expand to nothing. A bare $, an empty ${}
// and an unterminated ${ are kept as written.
func ExpandVariables(s string, lookup LookupFunc) string {
	if !strings.Contains(s, "$") {
		return s
	}

	var out strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '$' {
			out.WriteByte(s[i])
			continue
		}

		rest := s[i+1:]
		switch {
		case strings.HasPrefix(rest, "{"):
			end := strings.IndexByte(rest, '}')
			switch {
			case end < 0:
				out.WriteString(s[i:])
				return out.String()
			case end == 1:
				out.WriteString("${}")
			default:
				v, _ := lookup(rest[1:end])
				out.WriteString(v)
			}
			i += end + 1

		default:
			n := 0
			for n < len(rest) && isNameByte(rest[n]) {
				n++
			}
			if n == 0 {
				out.WriteByte('$')
				continue
			}
			v, _ := lookup(rest[:n])
			out.WriteString(v)
			i += n
		}
	}
	return out.String()
}

// ExpandCommandSubstitution replaces every $(...) in s with the trimmed
// output of running its contents. Nested substitutions run innermost first.
// Failures and exits inside a substitution produce an empty string, an
// unterminated $( is kept as written.
func (s *Session) ExpandCommandSubstitution(ctx context.Context, text string) string {
	if !strings.Contains(text, "$(") {
		return text
	}

	var out strings.Builder
	for i := 0; i < len(text); i++ {
		if !strings.HasPrefix(text[i:], "$(") {
			out.WriteByte(text[i])
			continue
		}

		end := matchingParen(text, i+1)
		if end < 0 {
			out.WriteString(text[i:])
			break
		}

		if inner := text[i+2 : end]; inner != "" {
			out.WriteString(s.substitute(ctx, inner))
		}
		i = end
	}
	return out.String()
}

// matchingParen returns the index of the ')' closing the '(' at open, or -1.
func matchingParen(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func (s *Session) substitute(ctx context.Context, inner string) string {
	expanded := s.ExpandCommandSubstitution(ctx, inner)

	cmd, err := s.parseExpanded(expanded, true)
	if err != nil {
		s.Log.Debugf("command substitution %q: %v", inner, err)
		return ""
	}

	res, err := s.capture(ctx, cmd, nil)
	switch {
	case err != nil:
		s.Log.Debugf("command substitution %q: %v", inner, err)
		return ""
	case res.Exit:
		return ""
	default:
		return strings.TrimRight(res.Output, " \t\r\n")
	}
}
