package turtle

import "fmt"

// ParseError reports a syntax error with its position in the input.
type ParseError struct {
	Line   int
	Column int
	Msg    string
}

// Error implements error.
func (e *ParseError) Error() string {
	return fmt.Sprintf("turtle: line %d, column %d: %s", e.Line, e.Column, e.Msg)
}

func errorf(line, col int, format string, args ...any) *ParseError {
	return &ParseError{Line: line, Column: col, Msg: fmt.Sprintf(format, args...)}
}
