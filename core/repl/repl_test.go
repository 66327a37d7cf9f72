package repl

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephlewis42/minish/core/shell/shelltest"
	"github.com/josephlewis42/minish/errors"
)

type fakeReader struct {
	lines   []string
	prompt  string
	prompts []string
}

func (f *fakeReader) SetPrompt(prompt string) {
	f.prompt = prompt
}

func (f *fakeReader) Readline() (string, error) {
	f.prompts = append(f.prompts, f.prompt)
	if len(f.lines) == 0 {
		return "", io.EOF
	}
	line := f.lines[0]
	f.lines = f.lines[1:]
	return line, nil
}

func TestRunner_Interactive(t *testing.T) {
	sh := shelltest.New(t, nil)
	r := &Runner{
		Session:     sh.Session,
		Fs:          sh.Fs,
		HistoryFile: "/home/user/.minish_history",
		Greeting:    "Hello, minish!",
	}
	rl := &fakeReader{lines: []string{
		"echo one",
		"for i in a b",
		"do",
		"echo $i",
		"done",
		"cat <<EOF",
		"hello $USER",
		"EOF",
		"!1",
		"exit",
		"echo unreachable",
	}}

	require.NoError(t, r.Interactive(context.Background(), rl))

	assert.Equal(t, strings.Join([]string{
		"Hello, minish!",
		"one",
		"a",
		"b",
		"hello user",
		"echo one",
		"one",
		"good bye",
		"",
	}, "\n"), sh.Stdout.Take())
	assert.Equal(t, []string{
		PromptPrimary,
		PromptPrimary,
		PromptContinuation,
		PromptContinuation,
		PromptContinuation,
		PromptPrimary,
		PromptHeredoc,
		PromptHeredoc,
		PromptPrimary,
		PromptPrimary,
	}, rl.prompts)
	assert.Equal(t, []string{"echo unreachable"}, rl.lines)

	assert.Equal(t, strings.Join([]string{
		"echo one",
		"for i in a b; do echo $i; done",
		"echo one",
		"exit",
		"",
	}, "\n"), sh.ReadFile(t, ".minish_history"))
}

func TestRunner_Interactive_loadsHistory(t *testing.T) {
	sh := shelltest.New(t, map[string]string{".minish_history": "echo saved\n"})
	r := &Runner{Session: sh.Session, Fs: sh.Fs, HistoryFile: "/home/user/.minish_history"}

	require.NoError(t, r.Interactive(context.Background(), &fakeReader{lines: []string{"!!", "!nope"}}))

	assert.Equal(t, "echo saved\nsaved\n", sh.Stdout.Take())
	assert.Equal(t, "argument error: minish: !nope: event not found\n", sh.Stderr.Take())
}

func TestRunner_Interactive_eof(t *testing.T) {
	sh := shelltest.New(t, nil)
	r := &Runner{Session: sh.Session}

	require.NoError(t, r.Interactive(context.Background(), &fakeReader{lines: []string{"xyzzy"}}))
	assert.Equal(t, "unknown command error: xyzzy\n", sh.Stderr.Take())
}

func TestRunner_Interactive_interruptStopsCommandOnly(t *testing.T) {
	sh := shelltest.New(t, nil)
	r := &Runner{Session: sh.Session}

	var calls int
	r.CommandContext = func(ctx context.Context) (context.Context, context.CancelFunc) {
		calls++
		cmdCtx, cancel := context.WithCancel(ctx)
		if calls == 1 {
			cancel()
		}
		return cmdCtx, cancel
	}

	rl := &fakeReader{lines: []string{"sleep 5", "echo still here"}}
	require.NoError(t, r.Interactive(context.Background(), rl))

	assert.Equal(t, 2, calls)
	assert.Equal(t, "Interrupted\n", sh.Stderr.Take())
	assert.Equal(t, "still here\n", sh.Stdout.Take())
}

func TestRunner_Script(t *testing.T) {
	sh := shelltest.New(t, nil)
	r := &Runner{Session: sh.Session}

	err := r.Script(context.Background(), strings.NewReader(strings.Join([]string{
		"#!/usr/bin/env minish",
		"# comment",
		"",
		"echo start",
		"for i in 1 2",
		"do",
		"  echo $i",
		"done",
		"cat <<-END",
		"\ttabbed",
		"END",
		"xyzzy",
		"echo end",
	}, "\n")))
	require.NoError(t, err)

	assert.Equal(t, "start\n1\n2\ntabbed\nend\n", sh.Stdout.Take())
	assert.Equal(t, "unknown command error: xyzzy\n", sh.Stderr.Take())
}

func TestRunner_Script_status(t *testing.T) {
	cases := map[string]struct {
		script string
		stdout string
		code   int
	}{
		"ok":         {"echo a", "a\n", errors.CodeOk},
		"last-fails": {"echo a\ncat missing.txt", "a\n", errors.CodeIO},
		"recovered":  {"cat missing.txt\necho a", "a\n", errors.CodeOk},
		"exit":       {"echo a\nexit\ncat missing.txt", "a\ngood bye\n", errors.CodeOk},
		"exit-in-fn": {"function q() { exit; }\nq\necho after", "good bye\nafter\n", errors.CodeOk},
		"incomplete": {"for i in 1 2\ndo\necho $i", "", errors.CodeIncompleteBlock},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			sh := shelltest.New(t, nil)
			r := &Runner{Session: sh.Session}

			err := r.Script(context.Background(), strings.NewReader(tc.script))
			assert.Equal(t, tc.code, errors.Code(err))
			assert.Equal(t, tc.stdout, sh.Stdout.Take())
		})
	}
}
