package commands

import (
	"bufio"
	"fmt"
	"regexp"
	"strings"

	"github.com/josephlewis42/minish/errors"
)

// Grep searches files for lines matching the regular expression pattern.
//
// With no files, input is searched and matching lines are returned bare.
// A single file prefixes each match with its line number, several files
// prefix the file name as well.
func (o *OS) Grep(pattern string, files []string, input *string) (string, error) {
	regex, err := regexp.Compile(pattern)
	if err != nil {
		return "", &errors.InvalidPatternError{Err: err}
	}

	var lines []string
	if len(files) == 0 {
		if input == nil {
			return "", nil
		}
		for _, line := range grepLines(regex, *input) {
			lines = append(lines, line.text)
		}
		return strings.Join(lines, "\n"), nil
	}

	for _, file := range files {
		contents, err := o.Cat(file, nil)
		if err != nil {
			return "", err
		}

		for _, line := range grepLines(regex, contents) {
			if len(files) > 1 {
				lines = append(lines, fmt.Sprintf("%s:%d: %s", file, line.number, line.text))
			} else {
				lines = append(lines, fmt.Sprintf("%d: %s", line.number, line.text))
			}
		}
	}

	return strings.Join(lines, "\n"), nil
}

type grepMatch struct {
	number int
	text   string
}

func grepLines(regex *regexp.Regexp, text string) []grepMatch {
	var out []grepMatch

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), len(text)+1)
	lineNo := 1
	for scanner.Scan() {
		line := scanner.Text()
		if regex.MatchString(line) {
			out = append(out, grepMatch{number: lineNo, text: line})
		}
		lineNo++
	}

	return out
}
