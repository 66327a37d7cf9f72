package errors

import "errors"

// General exit codes
const (
	CodeOk      int = iota // Used when the shell exits without errors
	CodeUnknown            // Used when no other exit code is appropriate
)

// Input related exit codes
const (
	CodeParse int = iota + 100
	CodeInvalidArgument
	CodeUnknownCommand
	CodeInvalidPattern
	CodeIncompleteBlock
)

// Execution related exit codes
const (
	CodeIO int = iota + 200
	CodeRuntime
)

// ShellError extends the standard error interface with a Code method. The code
// is used as the exit status of script mode so callers can distinguish between
// different kinds of failure.
type ShellError interface {
	error
	Code() int
}

// New returns an error that formats as the given text. This wraps the standard
// errors.New function so that we don't need to alias that package.
func New(text string) error {
	return errors.New(text)
}

// Is wraps the standard errors.Is function so that we don't need to alias that package.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps the standard errors.As function so that we don't need to alias that package.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Code returns the exit code associated with err, CodeOk for nil and
// CodeUnknown for errors outside the taxonomy.
func Code(err error) int {
	if err == nil {
		return CodeOk
	}
	var shellErr ShellError
	if errors.As(err, &shellErr) {
		return shellErr.Code()
	}
	return CodeUnknown
}
