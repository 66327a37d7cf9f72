// Package shelltest builds sessions over in-memory filesystems for tests.
package shelltest

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/afero"

	"github.com/josephlewis42/minish/core/config"
	"github.com/josephlewis42/minish/core/shell"
	"github.com/josephlewis42/minish/core/vos"
)

// Home is the working directory and $HOME of test sessions.
const Home = "/home/user"

// Buffer is a bytes.Buffer safe for concurrent writers.
type Buffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *Buffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// Take returns everything written so far and resets the buffer.
func (b *Buffer) Take() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.buf.String()
	b.buf.Reset()
	return out
}

// Shell is a session with captured output streams.
type Shell struct {
	*shell.Session

	Fs     afero.Fs
	Stdout *Buffer
	Stderr *Buffer
}

// New creates a session in Home over a fresh in-memory filesystem holding
// files. The inherited environment only has HOME and USER.
func New(t testing.TB, files map[string]string) *Shell {
	t.Helper()
	return NewWithConfig(t, files, config.Default())
}

// NewWithConfig is New with an explicit configuration.
func NewWithConfig(t testing.TB, files map[string]string, cfg *config.Configuration) *Shell {
	t.Helper()

	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll(Home, 0755); err != nil {
		t.Fatal(err)
	}
	for name, contents := range files {
		if !filepath.IsAbs(name) {
			name = filepath.Join(Home, name)
		}
		if err := fs.MkdirAll(filepath.Dir(name), 0755); err != nil {
			t.Fatal(err)
		}
		if err := afero.WriteFile(fs, name, []byte(contents), 0644); err != nil {
			t.Fatal(err)
		}
	}

	out := &Shell{Fs: fs, Stdout: &Buffer{}, Stderr: &Buffer{}}
	session, err := shell.NewSession(shell.Options{
		Fs:        fs,
		Dir:       Home,
		Inherited: vos.NewMapEnvFromEnvList([]string{"HOME=" + Home, "USER=user"}),
		Stdout:    out.Stdout,
		Stderr:    out.Stderr,
		Config:    cfg,
	})
	if err != nil {
		t.Fatal(err)
	}
	out.Session = session
	return out
}

// Run runs line and returns what it printed, without the final newline.
func (sh *Shell) Run(line string) (string, error) {
	_, err := sh.Session.Run(context.Background(), line)
	return strings.TrimSuffix(sh.Stdout.Take(), "\n"), err
}

// ReadFile returns the contents of name, relative names resolve against Home.
func (sh *Shell) ReadFile(t testing.TB, name string) string {
	t.Helper()
	if !filepath.IsAbs(name) {
		name = filepath.Join(Home, name)
	}
	data, err := afero.ReadFile(sh.Fs, name)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}
