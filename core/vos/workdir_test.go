package vos

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

func newTestFs(t *testing.T) *WorkingDirFs {
	t.Helper()

	base := afero.NewMemMapFs()
	assert.NoError(t, base.MkdirAll("/home/user/docs", 0755))
	assert.NoError(t, afero.WriteFile(base, "/home/user/notes.txt", []byte("hello"), 0644))
	return NewWorkingDirFs(base, "/home/user")
}

func TestWorkingDirFs_Abs(t *testing.T) {
	fs := newTestFs(t)

	cases := map[string]string{
		"notes.txt":      "/home/user/notes.txt",
		"./docs/../x":    "/home/user/x",
		"/etc/passwd":    "/etc/passwd",
		"../other//file": "/home/other/file",
	}

	for in, want := range cases {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, fs.Abs(in))
		})
	}
}

func TestWorkingDirFs_Chdir(t *testing.T) {
	fs := newTestFs(t)

	t.Run("relative", func(t *testing.T) {
		assert.NoError(t, fs.Chdir("docs"))
		assert.Equal(t, "/home/user/docs", fs.Getwd())
		assert.NoError(t, fs.Chdir(".."))
		assert.Equal(t, "/home/user", fs.Getwd())
	})

	t.Run("not a directory", func(t *testing.T) {
		err := fs.Chdir("notes.txt")
		assert.EqualError(t, err, "/home/user/notes.txt: Not a directory")
		assert.Equal(t, "/home/user", fs.Getwd())
	})

	t.Run("missing", func(t *testing.T) {
		assert.Error(t, fs.Chdir("nope"))
	})
}

func TestWorkingDirFs_RelativeOps(t *testing.T) {
	fs := newTestFs(t)

	contents, err := afero.ReadFile(fs, "notes.txt")
	assert.NoError(t, err)
	assert.Equal(t, "hello", string(contents))

	assert.NoError(t, fs.Chdir("docs"))
	assert.NoError(t, afero.WriteFile(fs, "todo.txt", []byte("milk"), 0644))

	exists, err := afero.Exists(fs.BaseFs, "/home/user/docs/todo.txt")
	assert.NoError(t, err)
	assert.True(t, exists)
	assert.True(t, fs.IsDir("/home/user"))
	assert.False(t, fs.IsDir("todo.txt"))
}
