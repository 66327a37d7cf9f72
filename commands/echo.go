package commands

import "strings"

// Echo returns message unchanged.
func Echo(message string) string {
	return message
}

// Repeat returns count copies of message, one per line.
func Repeat(count int, message string) string {
	lines := make([]string, count)
	for i := range lines {
		lines[i] = message
	}
	return strings.Join(lines, "\n")
}
