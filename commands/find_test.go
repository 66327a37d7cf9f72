package commands

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMatchWildcard(t *testing.T) {
	cases := []struct {
		name    string
		pattern string
		match   bool
	}{
		{"a.txt", "a.txt", true},
		{"a.txt", "*.txt", true},
		{"a.txt", "*", true},
		{"", "*", true},
		{"", "", true},
		{"a.txt", "?.txt", true},
		{"ab.txt", "?.txt", false},
		{"a.txt", "*.log", false},
		{"a.txt", "a", false},
		{"abc", "a*c", true},
		{"abbbc", "a*b*c", true},
		{"abc", "a**", true},
		{"x", "", false},
		{"mississippi", "m*iss*ppi", true},
		{"mississippi", "m*iss*x", false},
		{"ab", "*?*?*", true},
		{"a", "*?*?*", false},
	}

	for _, tc := range cases {
		t.Run(tc.name+"~"+tc.pattern, func(t *testing.T) {
			assert.Equal(t, tc.match, MatchWildcard(tc.name, tc.pattern))
		})
	}
}

func TestMatchWildcard_manyStars(t *testing.T) {
	name := strings.Repeat("a", 40)

	done := make(chan bool, 1)
	go func() {
		done <- MatchWildcard(name, strings.Repeat("*a", 12)+"b")
	}()

	select {
	case match := <-done:
		assert.False(t, match)
	case <-time.After(time.Second):
		t.Fatal("MatchWildcard did not return within a second")
	}
	assert.True(t, MatchWildcard(name, strings.Repeat("*a", 12)))
}

func TestFind(t *testing.T) {
	files := map[string]string{
		"/home/user/a.txt":     "",
		"/home/user/notes.md":  "",
		"/home/user/dir/c.txt": "",
		"/home/user/dir/d.log": "",
	}

	cases := goldenTestSuite{
		"txt-files": {
			Files: files,
			Run:   func(o *OS) (string, error) { return o.Find("", "*.txt") },
		},
		"in-dir": {
			Files: files,
			Run:   func(o *OS) (string, error) { return o.Find("dir", "?.log") },
		},
		"directory-match": {
			Files: files,
			Run:   func(o *OS) (string, error) { return o.Find(".", "dir") },
		},
		"absolute": {
			Files: files,
			Run:   func(o *OS) (string, error) { return o.Find("/home", "*.md") },
		},
		"missing-dir": {
			Files: files,
			Run:   func(o *OS) (string, error) { return o.Find("nope", "*") },
		},
	}

	cases.Run(t)
}
