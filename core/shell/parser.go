package shell

import (
	"context"
	"strings"

	"github.com/sajari/fuzzy"

	"github.com/josephlewis42/minish/errors"
)

// Parse turns a command line into a command tree. Command substitutions in
// input run first, then the leading word is alias expanded.
//
// Structure is recognized in this order: a trailing '&', a leading control
// block, top level ';', top level '|', a redirect, and finally a builtin or
// function call.
func (s *Session) Parse(ctx context.Context, input string) (Command, error) {
	return s.parseExpanded(s.ExpandCommandSubstitution(ctx, input), true)
}

func (s *Session) parseExpanded(text string, expandAlias bool) (Command, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.Parsef("no command provided")
	}
	if expandAlias {
		text = s.Aliases.ExpandLeading(text)
	}
	s.Log.Debugf("Parsing input: '%s'", text)

	if strings.HasSuffix(text, "&") {
		inner, err := s.parseExpanded(strings.TrimRight(text, "&"), false)
		if err != nil {
			return nil, err
		}
		return &Background{Command: inner}, nil
	}

	toks, _ := scan(text)
	if len(toks) == 0 {
		return nil, errors.Parsef("no command provided")
	}

	hasSemi := hasTopLevel(toks, roleSemi)
	hasPipe := hasTopLevel(toks, rolePipe)

	switch {
	case toks[0].role == roleOpen && !hasSemi && !hasPipe:
		return s.parseBlock(text, toks)

	case hasSemi:
		return s.parseSequence(splitTopLevel(text, toks, roleSemi))

	case hasPipe:
		return s.parsePipeline(splitTopLevel(text, toks, rolePipe))
	}

	if inner, op, target, ok := splitRedirect(text); ok {
		cmd, err := s.parseExpanded(inner, false)
		if err != nil {
			return nil, err
		}
		return &Redirect{Command: cmd, Op: op, Target: target}, nil
	}

	return s.parseSimple(text)
}

// parseSequence parses the statements of a ';' separated list. A single
// statement is returned as is.
func (s *Session) parseSequence(segments []string) (Command, error) {
	switch len(segments) {
	case 0:
		return nil, errors.Parsef("no command provided")
	case 1:
		return s.parseExpanded(segments[0], true)
	}

	out := &Compound{}
	for _, seg := range segments {
		cmd, err := s.parseExpanded(seg, true)
		if err != nil {
			return nil, err
		}
		out.Commands = append(out.Commands, cmd)
	}
	return out, nil
}

// parsePipeline keeps the stages as text, they are parsed when the
// pipeline runs. A redirect on the last stage applies to the whole pipeline.
func (s *Session) parsePipeline(segments []string) (Command, error) {
	switch len(segments) {
	case 0:
		return nil, errors.Parsef("no command provided")
	case 1:
		return s.parseExpanded(segments[0], true)
	}

	last := len(segments) - 1
	if inner, op, target, ok := splitRedirect(segments[last]); ok {
		segments[last] = inner
		return &Redirect{Command: &Pipeline{Segments: segments}, Op: op, Target: target}, nil
	}
	return &Pipeline{Segments: segments}, nil
}

// splitRedirect finds the first ">>", else the first ">", else the first
// "<" in text. A redirect without a target is not a redirect.
func splitRedirect(text string) (inner string, op RedirectOp, target string, ok bool) {
	pos := -1
	for _, candidate := range []RedirectOp{RedirectAppend, RedirectOut, RedirectIn} {
		if pos = strings.Index(text, string(candidate)); pos >= 0 {
			op = candidate
			break
		}
	}
	if pos < 0 {
		return text, "", "", false
	}

	target = strings.TrimSpace(text[pos+len(op):])
	if target == "" {
		return text, "", "", false
	}
	return strings.TrimSpace(text[:pos]), op, target, true
}

// parseSimple builds a builtin or function call from a plain command.
func (s *Session) parseSimple(text string) (Command, error) {
	fields := strings.Fields(text)
	name, args := fields[0], fields[1:]

	if b, ok := LookupBuiltin(name); ok {
		s.Log.Debugf("Recognized command: '%s' with %d args", name, len(args))
		return b.parseArgs(args)
	}

	if _, ok := s.Functions.Get(name); ok {
		return &FunctionCall{Name: name, Args: args}, nil
	}

	return nil, &errors.UnknownCommandError{
		Message:    strings.Join(fields, " "),
		DidYouMean: s.didYouMean(name),
	}
}

// didYouMean suggests the closest builtin, function or alias to name.
func (s *Session) didYouMean(name string) string {
	model := fuzzy.NewModel()
	model.SetThreshold(1)

	var words []string
	for _, b := range builtins {
		words = append(words, b.Name())
	}
	words = append(words, s.Functions.Names()...)
	for _, a := range s.Aliases.All() {
		words = append(words, a.Name)
	}
	model.Train(words)

	if suggestion := model.SpellCheck(name); suggestion != name {
		return suggestion
	}
	return ""
}
