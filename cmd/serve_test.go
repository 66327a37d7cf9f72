package cmd

import (
	"archive/tar"
	"bytes"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tarImage(t *testing.T, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	require.NoError(t, tw.WriteHeader(&tar.Header{Name: "etc/", Typeflag: tar.TypeDir, Mode: 0755}))
	for name, contents := range files {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     name,
			Typeflag: tar.TypeReg,
			Mode:     0644,
			Size:     int64(len(contents)),
		}))
		_, err := tw.Write([]byte(contents))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	return buf.Bytes()
}

func TestNewConnectionFs_empty(t *testing.T) {
	fs := newConnectionFs(nil)

	require.NoError(t, afero.WriteFile(fs, "/a.txt", []byte("a"), 0644))
	got, err := afero.ReadFile(fs, "/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "a", string(got))
}

func TestNewConnectionFs_image(t *testing.T) {
	image := tarImage(t, map[string]string{"etc/motd": "welcome"})

	first := newConnectionFs(image)
	got, err := afero.ReadFile(first, "/etc/motd")
	require.NoError(t, err)
	assert.Equal(t, "welcome", string(got))

	require.NoError(t, first.MkdirAll("/home/user", 0755))
	require.NoError(t, afero.WriteFile(first, "/home/user/notes.txt", []byte("mine"), 0644))

	// Connections never see each other's writes.
	second := newConnectionFs(image)
	exists, err := afero.Exists(second, "/home/user/notes.txt")
	require.NoError(t, err)
	assert.False(t, exists)
}
