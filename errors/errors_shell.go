package errors

import "fmt"

// ParseError is returned when input is malformed or a structural keyword is
// missing.
type ParseError struct {
	Message string
}

// Parsef creates a ParseError with a formatted message.
func Parsef(format string, args ...any) *ParseError {
	return &ParseError{Message: fmt.Sprintf(format, args...)}
}

func (err *ParseError) Error() string {
	return fmt.Sprintf("Parse error: %s", err.Message)
}

func (err *ParseError) Code() int {
	return CodeParse
}

// IOError wraps a failure from the filesystem.
type IOError struct {
	Err error
}

// IO wraps err in an IOError. A nil err stays nil.
func IO(err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Err: err}
}

func (err *IOError) Error() string {
	return fmt.Sprintf("IO error: %v", err.Err)
}

func (err *IOError) Code() int {
	return CodeIO
}

func (err *IOError) Unwrap() error {
	return err.Err
}

// InvalidArgumentError is returned for arity and semantic violations,
// unresolved history events and out-of-range lookups.
type InvalidArgumentError struct {
	Message string
}

// InvalidArgumentf creates an InvalidArgumentError with a formatted message.
func InvalidArgumentf(format string, args ...any) *InvalidArgumentError {
	return &InvalidArgumentError{Message: fmt.Sprintf(format, args...)}
}

func (err *InvalidArgumentError) Error() string {
	return fmt.Sprintf("argument error: %s", err.Message)
}

func (err *InvalidArgumentError) Code() int {
	return CodeInvalidArgument
}

// UnknownCommandError is returned when the leading word names neither a
// builtin nor a defined function.
type UnknownCommandError struct {
	Message    string
	DidYouMean string
}

func (err *UnknownCommandError) Error() string {
	if err.DidYouMean != "" {
		return fmt.Sprintf("unknown command error: %s (did you mean %q?)", err.Message, err.DidYouMean)
	}
	return fmt.Sprintf("unknown command error: %s", err.Message)
}

func (err *UnknownCommandError) Code() int {
	return CodeUnknownCommand
}

// InvalidPatternError is returned when a search pattern does not compile.
type InvalidPatternError struct {
	Err error
}

func (err *InvalidPatternError) Error() string {
	return fmt.Sprintf("Invalid syntax error: %v", err.Err)
}

func (err *InvalidPatternError) Code() int {
	return CodeInvalidPattern
}

func (err *InvalidPatternError) Unwrap() error {
	return err.Err
}

// RuntimeError is a fatal evaluation failure, such as a loop running past its
// iteration cap.
type RuntimeError struct {
	Message string
}

func (err *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error: %s", err.Message)
}

func (err *RuntimeError) Code() int {
	return CodeRuntime
}

// IncompleteBlockError is returned when a script ends inside an open control
// block.
type IncompleteBlockError struct{}

func (err *IncompleteBlockError) Error() string {
	return "Error: Incomplete block structure at end of file"
}

func (err *IncompleteBlockError) Code() int {
	return CodeIncompleteBlock
}
