package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMkdir(t *testing.T) {
	o := newTestOS(t, nil)

	assert.NoError(t, o.Mkdir("src", false))
	assert.True(t, o.Fs.IsDir("/home/user/src"))

	assert.Error(t, o.Mkdir("src", false), "already exists")
	assert.Error(t, o.Mkdir("a/b/c", false), "missing parent")
	assert.False(t, o.Fs.IsDir("a"))

	assert.NoError(t, o.Mkdir("a/b/c", true))
	assert.True(t, o.Fs.IsDir("/home/user/a/b/c"))
	assert.NoError(t, o.Mkdir("a/b/c", true), "parents tolerates existing")
}
