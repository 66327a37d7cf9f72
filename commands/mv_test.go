package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMv(t *testing.T) {
	files := map[string]string{
		"/home/user/a.txt":      "alpha",
		"/home/user/dest/.keep": "",
	}

	t.Run("rename", func(t *testing.T) {
		o := newTestOS(t, files)
		require.NoError(t, o.Mv("a.txt", "b.txt"))
		assertFile(t, o, "/home/user/b.txt", "alpha")
		assert.False(t, exists(o, "a.txt"))
	})

	t.Run("into directory", func(t *testing.T) {
		o := newTestOS(t, files)
		require.NoError(t, o.Mv("a.txt", "dest"))
		assertFile(t, o, "/home/user/dest/a.txt", "alpha")
	})

	t.Run("missing", func(t *testing.T) {
		o := newTestOS(t, files)
		assert.Error(t, o.Mv("nope", "dest"))
	})
}

func exists(o *OS, name string) bool {
	_, err := o.Fs.Stat(name)
	return err == nil
}
