package shell_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephlewis42/minish/core/config"
	"github.com/josephlewis42/minish/core/shell"
	"github.com/josephlewis42/minish/core/shell/shelltest"
	"github.com/josephlewis42/minish/errors"
)

// script runs each line in order and returns the transcript of outputs
// and errors.
func script(sh *shelltest.Shell, lines ...string) string {
	var out []string
	for _, line := range lines {
		got, err := sh.Run(line)
		if got != "" {
			out = append(out, got)
		}
		if err != nil {
			out = append(out, "error: "+err.Error())
		}
	}
	return strings.Join(out, "\n")
}

func TestSession_Run(t *testing.T) {
	cases := map[string]struct {
		files map[string]string
		lines []string
		want  string
	}{
		"pipeline": {
			lines: []string{"echo hello world | grep hello"},
			want:  "hello world",
		},
		"pipeline-empty-stage": {
			lines: []string{"echo hello world | grep hello | grep xyz"},
			want:  "",
		},
		"pipeline-file": {
			files: map[string]string{"poem.txt": "roses are red\nviolets are blue"},
			lines: []string{"cat poem.txt | grep blue"},
			want:  "violets are blue",
		},
		"pipeline-block": {
			lines: []string{"for i in b a c; do echo $i; done | grep a"},
			want:  "a",
		},
		"input-redirect": {
			files: map[string]string{"in.txt": "one\ntwo"},
			lines: []string{"grep o < in.txt", "cat < in.txt"},
			want:  "one\ntwo\none\ntwo",
		},
		"if-then": {
			lines: []string{"if echo yes; then echo ok; fi"},
			want:  "yes\nok",
		},
		"if-else": {
			lines: []string{"if cat missing.txt; then echo found; else echo not found; fi"},
			want:  "not found",
		},
		"if-no-else": {
			lines: []string{"if cat missing.txt; then echo found; fi"},
			want:  "",
		},
		"while": {
			files: map[string]string{"flag": "set"},
			lines: []string{"while cat flag; do rm flag; done", "ls"},
			want:  "set",
		},
		"for": {
			lines: []string{"for i in 1 2 3; do echo $i; done", "echo [$i]"},
			want:  "1\n2\n3\n[]",
		},
		"nested-for": {
			lines: []string{"for a in x y; do for b in 1 2; do echo $a$b; done; done"},
			want:  "x1\nx2\ny1\ny2",
		},
		"function": {
			lines: []string{
				"function greet() { echo Hello $1; }",
				"greet World",
				"echo [$1]",
				"type greet",
			},
			want: "Hello World\n[]\ngreet is a function\nfunction greet() { echo Hello $1; }",
		},
		"function-redefined": {
			lines: []string{
				"function f() { echo one }",
				"function f() { echo two }",
				"f",
			},
			want: "two",
		},
		"compound": {
			lines: []string{"echo a; echo b; pwd"},
			want:  "a\nb\n/home/user",
		},
		"variables": {
			lines: []string{"env NAME=world", "echo hello $NAME", "env NAME", "echo ${NAME}s", "env MISSING"},
			want:  "hello world\nworld\nworlds\nerror: argument error: Environment variable 'MISSING' not found",
		},
		"inherited-env": {
			lines: []string{"echo $HOME $USER", "cd", "pwd"},
			want:  "/home/user user\n/home/user",
		},
		"substitution": {
			lines: []string{"echo $(echo hi) there", "echo [$(xyzzy)]", "echo $(echo $(echo deep))"},
			want:  "hi there\n[]\ndeep",
		},
		"alias": {
			files: map[string]string{"a.txt": ""},
			lines: []string{"alias ll=ls", "ll", "alias", "type ll", "unalias ll", "unalias ll"},
			want:  "a.txt\nll = ls\nll is aliased to `ls'\nerror: argument error: unalias: ll: not found",
		},
		"write-cat": {
			lines: []string{"write notes.txt hello world", "cat notes.txt"},
			want:  "File written successfully: notes.txt\nhello world",
		},
		"directories": {
			lines: []string{"mkdir -p a/b", "cd a/b", "pwd", "cd -", "pwd", "cd /nope"},
			want:  "/home/user/a/b\n/home/user\nerror: IO error: open /nope: file does not exist",
		},
		"history-log": {
			lines: []string{"history"},
			want:  "",
		},
		"unknown": {
			lines: []string{"xyzzy now"},
			want:  "error: unknown command error: xyzzy now",
		},
		"parse-error-continues": {
			lines: []string{"if echo a; then echo b", "echo next"},
			want:  "error: Parse error: if: 'fi' not found\nnext",
		},
		"jobs-empty": {
			lines: []string{"jobs", "fg"},
			want:  "No jobs\nerror: argument error: No jobs",
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			sh := shelltest.New(t, tc.files)
			assert.Equal(t, tc.want, script(sh, tc.lines...))
		})
	}
}

func TestHelp(t *testing.T) {
	sh := shelltest.New(t, nil)

	out, err := sh.Run("help")
	require.NoError(t, err)

	g := goldie.New(t, goldie.WithFixtureDir(filepath.Join("testdata", "golden")))
	g.Assert(t, t.Name(), []byte(out))
}

func TestRedirect_truncateAndAppend(t *testing.T) {
	sh := shelltest.New(t, nil)

	assert.Empty(t, script(sh, "echo first > out.txt", "echo second > out.txt"))
	assert.Equal(t, "second", sh.ReadFile(t, "out.txt"))

	assert.Empty(t, script(sh, "echo one >> log.txt", "echo two >> log.txt"))
	assert.Equal(t, "onetwo", sh.ReadFile(t, "log.txt"))

	assert.Empty(t, script(sh, "echo a | grep a > piped.txt"))
	assert.Equal(t, "a", sh.ReadFile(t, "piped.txt"))

	assert.Empty(t, script(sh, "for i in 1 2; do echo $i; done > loop.txt"))
	assert.Equal(t, "1\n2", sh.ReadFile(t, "loop.txt"))

	assert.Empty(t, script(sh, "env OUT=var.txt", "echo v > $OUT"))
	assert.Equal(t, "v", sh.ReadFile(t, "var.txt"))
}

func TestWhile_iterationCap(t *testing.T) {
	cfg := config.Default()
	cfg.MaxLoopIterations = 3
	sh := shelltest.NewWithConfig(t, nil, cfg)

	out, err := sh.Run("while echo x; do echo y; done")
	assert.Equal(t, "x\ny\nx\ny\nx\ny", out)

	var runtimeErr *errors.RuntimeError
	require.True(t, errors.As(err, &runtimeErr))
	assert.EqualError(t, err, "runtime error: While loop exceeded maximum iterations")
}

func TestWhile_defaultIterationCap(t *testing.T) {
	sh := shelltest.New(t, nil)
	assert.Equal(t, shell.DefaultMaxLoopIterations, sh.MaxLoopIterations)

	out, err := sh.Run("while echo x; do echo y; done")
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 2*1000)
	assert.Equal(t, "x", lines[0])
	assert.Equal(t, "y", lines[len(lines)-1])
	assert.EqualError(t, err, "runtime error: While loop exceeded maximum iterations")
}

func TestSession_Exit(t *testing.T) {
	cases := map[string]struct {
		line string
		want string
	}{
		"exit":          {"exit", "good bye"},
		"quit":          {"quit", "good bye"},
		"compound":      {"echo a; exit; echo b", "a\ngood bye"},
		"if":            {"if echo a; then exit; fi", "a\ngood bye"},
		"for":           {"for i in 1 2; do echo $i; exit; done", "1\ngood bye"},
		"pipeline":      {"echo a | exit", "good bye"},
		"history-entry": {"history 1", "good bye"},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			sh := shelltest.New(t, nil)
			sh.History.Add("exit")

			res, err := sh.Session.Run(context.Background(), tc.line)
			require.NoError(t, err)
			assert.True(t, res.Exit)
			assert.Equal(t, tc.want, strings.TrimSuffix(sh.Stdout.Take(), "\n"))
		})
	}
}

func TestFunctionCall_exitEndsCallOnly(t *testing.T) {
	sh := shelltest.New(t, nil)
	_, err := sh.Run("function bye() { echo leaving; exit; echo never; }")
	require.NoError(t, err)

	res, err := sh.Session.Run(context.Background(), "bye")
	require.NoError(t, err)
	assert.False(t, res.Exit)
	assert.Equal(t, "leaving\ngood bye\n", sh.Stdout.Take())

	res, err = sh.Session.Run(context.Background(), "bye; echo after")
	require.NoError(t, err)
	assert.False(t, res.Exit)
	assert.Equal(t, "leaving\ngood bye\nafter\n", sh.Stdout.Take())
}

func TestHistory(t *testing.T) {
	sh := shelltest.New(t, nil)
	for _, line := range []string{"echo one", "echo two", "pwd"} {
		sh.History.Add(line)
	}

	assert.Equal(t, strings.Join([]string{
		"   1  echo one",
		"   2  echo two",
		"   3  pwd",
	}, "\n"), script(sh, "history"))
	assert.Equal(t, "   2  echo two", script(sh, "history search two"))
	assert.Equal(t, "two", script(sh, "history 2"))
	assert.Equal(t, "error: argument error: history: 9: history position out of range", script(sh, "history 9"))
}

func TestBackground(t *testing.T) {
	sh := shelltest.New(t, nil)

	res, err := sh.Session.Run(context.Background(), "echo hi &")
	require.NoError(t, err)
	assert.Equal(t, "[1] echo hi", res.Output)

	var stdout string
	assert.Eventually(t, func() bool {
		stdout += sh.Stdout.Take()
		return strings.Contains(stdout, "hi\n")
	}, time.Second, 10*time.Millisecond)
	assert.Contains(t, stdout, "[1] echo hi\n")

	res, err = sh.Session.Run(context.Background(), "cat missing.txt &")
	require.NoError(t, err)
	assert.Equal(t, "[2] cat missing.txt", res.Output)

	var stderr string
	assert.Eventually(t, func() bool {
		stderr += sh.Stderr.Take()
		return strings.Contains(stderr, "Background job failed: IO error: open /home/user/missing.txt: file does not exist")
	}, time.Second, 10*time.Millisecond)
}

func TestBackground_keepsBindings(t *testing.T) {
	sh := shelltest.New(t, nil)

	_, err := sh.Run("for i in a; do write out.txt $i &; done")
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		data, err := afero.ReadFile(sh.Fs, "/home/user/out.txt")
		return err == nil && string(data) == "a"
	}, time.Second, 10*time.Millisecond)
}

func TestSession_configured(t *testing.T) {
	cfg := config.Default()
	cfg.Aliases = map[string]string{"hi": "echo hello"}
	cfg.Env = map[string]string{"GREETING": "howdy"}
	cfg.EnvFiles = []string{"/etc/minish.env"}

	sh := shelltest.NewWithConfig(t, map[string]string{
		"/etc/minish.env": "FROM_FILE=dotenv\nGREETING=overridden\n",
	}, cfg)

	assert.Equal(t, "hello\noverridden\ndotenv", script(sh, "hi", "echo $GREETING", "echo $FROM_FILE"))
}

func ExampleSession_Run() {
	sh, err := shell.NewSession(shell.Options{Stdout: os.Stdout})
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	for _, line := range []string{
		"function greet() { echo Hello, $1! }",
		"for name in Alice Bob; do greet $name; done",
		"echo roses are red | grep red",
	} {
		if _, err := sh.Run(ctx, line); err != nil {
			panic(err)
		}
	}

	// Output: Hello, Alice!
	// Hello, Bob!
	// roses are red
}
