package repl

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/spf13/afero"

	"github.com/josephlewis42/minish/core/history"
	"github.com/josephlewis42/minish/core/logger"
	"github.com/josephlewis42/minish/core/shell"
	"github.com/josephlewis42/minish/errors"
)

// LineReader reads a line after showing a prompt. *readline.Instance
// implements it.
type LineReader interface {
	SetPrompt(prompt string)
	Readline() (string, error)
}

// Runner feeds complete commands to a session.
type Runner struct {
	Session *shell.Session

	// Fs holds the history file, no history is persisted when nil.
	Fs          afero.Fs
	HistoryFile string

	// Greeting is printed when an interactive session starts.
	Greeting string

	// CommandContext derives the context of one interactive command, so an
	// interrupt can stop that command without ending the session. Nil runs
	// commands under the session context.
	CommandContext func(ctx context.Context) (context.Context, context.CancelFunc)
}

// Interactive runs a read-eval-print loop until exit or end of input. The
// history is loaded first and saved on the way out.
func (r *Runner) Interactive(ctx context.Context, rl LineReader) error {
	s := r.Session
	r.loadHistory()
	defer r.saveHistory()

	if r.Greeting != "" {
		s.Log.Outf(logger.Default, r.Greeting)
	}

	var c Collector
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		rl.SetPrompt(c.Prompt())
		line, err := rl.Readline()
		switch {
		case err == readline.ErrInterrupt:
			c.Reset()
			continue
		case err == io.EOF:
			return nil
		case err != nil:
			return err
		}
		s.Log.Debugf("Received input: %s", line)

		if c.Add(line) {
			continue
		}
		text := c.Command()
		c.Reset()
		if text == "" {
			continue
		}

		cmdCtx, cancel := r.commandContext(ctx)
		exit, err := r.execute(cmdCtx, text, func() (string, error) {
			rl.SetPrompt(PromptHeredoc)
			return rl.Readline()
		})
		interrupted := cmdCtx.Err() != nil && ctx.Err() == nil
		cancel()

		switch {
		case err == nil:
		case interrupted && errors.Is(err, context.Canceled):
			s.Log.Errf(logger.Red, "Interrupted")
		default:
			s.Log.Error(err)
		}
		if exit {
			return nil
		}
	}
}

// Script runs the commands in. Blank lines and lines starting with '#' are
// skipped, blocks may span lines as they do interactively. Failing commands
// are reported and the script carries on; the error of the last command
// is returned. A block still open at the end is an IncompleteBlockError.
func (r *Runner) Script(ctx context.Context, in io.Reader) error {
	s := r.Session

	scanner := bufio.NewScanner(in)
	next := func() (string, error) {
		if scanner.Scan() {
			return scanner.Text(), nil
		}
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}

	var (
		c    Collector
		last error
	)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := next()
		switch {
		case err == io.EOF:
			if c.Pending() {
				return &errors.IncompleteBlockError{}
			}
			return last
		case err != nil:
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if c.Add(line) {
			continue
		}
		text := c.Command()
		c.Reset()

		exit, err := r.execute(ctx, text, next)
		if err != nil {
			s.Log.Error(err)
		}
		last = err
		if exit {
			return nil
		}
	}
}

// execute runs one complete command. History events are expanded and the
// result is echoed. Heredoc content is read with next.
func (r *Runner) execute(ctx context.Context, text string, next func() (string, error)) (bool, error) {
	s := r.Session

	if history.HasEvent(text) {
		expanded, err := s.History.Expand(text)
		if err != nil {
			return false, err
		}
		s.Log.Outf(logger.Default, expanded)
		text = expanded
	}

	if ContainsHeredoc(text) {
		if h, ok := ParseHeredoc(text); ok {
			return r.executeHeredoc(ctx, h, next)
		}
	}

	s.History.Add(text)
	res, err := s.Run(ctx, text)
	return res.Exit, err
}

func (r *Runner) executeHeredoc(ctx context.Context, h Heredoc, next func() (string, error)) (bool, error) {
	s := r.Session
	s.Log.Debugf("Heredoc header: cmd='%s', delimiter='%s', strip_tabs=%t", h.Command, h.Delimiter, h.StripTabs)

	var lines []string
	for {
		line, err := next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return false, err
		}
		if h.IsEnd(line) {
			break
		}
		lines = append(lines, line)
	}
	s.Log.Debugf("Collected heredoc content: %d lines", len(lines))

	content := shell.ExpandVariables(h.Body(lines), s.Lookup(ctx))
	content = s.ExpandCommandSubstitution(ctx, content)

	res, err := s.RunInput(ctx, h.Command, &content)
	return res.Exit, err
}

func (r *Runner) commandContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.CommandContext == nil {
		return context.WithCancel(ctx)
	}
	return r.CommandContext(ctx)
}

func (r *Runner) loadHistory() {
	if r.Fs == nil {
		return
	}
	path := r.historyPath()
	if err := r.Session.History.Load(r.Fs, path); err != nil {
		r.Session.Log.Error(errors.IO(err))
		return
	}
	r.Session.Log.Debugf("History loaded from: %s", path)
}

func (r *Runner) saveHistory() {
	if r.Fs == nil {
		return
	}
	path := r.historyPath()
	if err := r.Session.History.Save(r.Fs, path); err != nil {
		r.Session.Log.Error(errors.IO(err))
		return
	}
	r.Session.Log.Debugf("History saved to: %s", path)
}

func (r *Runner) historyPath() string {
	return history.FilePath(r.Session.Env.LookupEnv, r.HistoryFile)
}
