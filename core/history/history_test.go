package history

import (
	"fmt"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

func newLog(commands ...string) *Log {
	l := New(0)
	for _, c := range commands {
		l.Add(c)
	}
	return l
}

func ExampleLog_List() {
	l := newLog("echo one", "pwd", "ls")
	fmt.Println(Format(l.List()))

	// Output:    1  echo one
	//    2  pwd
	//    3  ls
}

func TestLog_Add(t *testing.T) {
	t.Run("drops blanks", func(t *testing.T) {
		l := newLog("", "   ", "\t")
		assert.Equal(t, 0, l.Len())
	})

	t.Run("suppresses consecutive duplicates", func(t *testing.T) {
		l := newLog("pwd", "pwd", "ls", "pwd")
		assert.Equal(t, []string{"pwd", "ls", "pwd"}, l.Commands())
	})

	t.Run("evicts oldest", func(t *testing.T) {
		l := New(2)
		l.Add("a")
		l.Add("b")
		l.Add("c")
		assert.Equal(t, []string{"b", "c"}, l.Commands())
	})

	t.Run("default capacity", func(t *testing.T) {
		l := New(0)
		for i := 0; i < DefaultCapacity+5; i++ {
			l.Add(fmt.Sprintf("echo %d", i))
		}
		assert.Equal(t, DefaultCapacity, l.Len())
		first, _ := l.Get(1)
		assert.Equal(t, "echo 5", first)
	})
}

func TestLog_Search(t *testing.T) {
	l := newLog("echo Hello", "cat notes", "ECHO again", "history search echo")

	got := l.Search("echo")
	assert.Equal(t, []Entry{
		{Number: 1, Command: "echo Hello"},
		{Number: 3, Command: "ECHO again"},
	}, got)

	assert.Empty(t, New(0).Search("x"))
}

func TestLog_Expand(t *testing.T) {
	l := newLog("echo one", "pwd", "echo two", "ls")

	cases := map[string]struct {
		in      string
		want    string
		wantErr string
	}{
		"no event":       {in: "echo  hi   there", want: "echo  hi   there"},
		"last":           {in: "!!", want: "ls"},
		"last in middle": {in: "echo !! |  cat", want: "echo ls | cat"},
		"absolute":       {in: "!2", want: "pwd"},
		"relative":       {in: "!-2", want: "echo two"},
		"prefix":         {in: "!echo", want: "echo two"},
		"out of range":   {in: "!9", wantErr: "argument error: minish: !9: event not found"},
		"no match":       {in: "!grep", wantErr: "argument error: minish: !grep: event not found"},
		"bang alone":     {in: "echo ! x", want: "echo ! x"},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			got, err := l.Expand(tc.in)
			if tc.wantErr != "" {
				assert.EqualError(t, err, tc.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFilePath(t *testing.T) {
	env := map[string]string{EnvHistFile: "/tmp/hist"}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	assert.Equal(t, "/tmp/hist", FilePath(lookup, "configured"))
	assert.Equal(t, "configured", FilePath(nil, "configured"))
	assert.Equal(t, DefaultFileName, FilePath(nil, ""))
}

func TestLog_SaveLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := "/state/minish/history"

	l := newLog("echo one", "pwd")
	assert.NoError(t, l.Save(fs, path))

	contents, err := afero.ReadFile(fs, path)
	assert.NoError(t, err)
	assert.Equal(t, "echo one\npwd\n", string(contents))

	assert.NoError(t, afero.WriteFile(fs, path, []byte("  ls  \n\n\ncat x\n"), 0644))
	loaded := New(0)
	assert.NoError(t, loaded.Load(fs, path))
	assert.Equal(t, []string{"ls", "cat x"}, loaded.Commands())

	t.Run("missing file", func(t *testing.T) {
		l := newLog("keep")
		assert.NoError(t, l.Load(fs, "/nope"))
		assert.Equal(t, []string{"keep"}, l.Commands())
	})
}
