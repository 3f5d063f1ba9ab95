// errors.go - Parse errors for the test-vector format

package fuse

import (
	"errors"
	"fmt"
)

var (
	ErrSyntax       = errors.New("malformed token")
	ErrRange        = errors.New("value out of range")
	ErrMissingField = errors.New("missing field")
	ErrTruncated    = errors.New("input ends inside a test case")
)

// ParseError pins a failure to the input line and field that caused it.
// Err is one of the sentinel errors above.
type ParseError struct {
	Line  int
	Field string
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("line %d: %s: %v", e.Line, e.Field, e.Err)
	}
	return fmt.Sprintf("line %d: %s %q: %v", e.Line, e.Field, e.Token, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
