package validation

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedResponse matches both ParseError and SchemaError
var ErrMalformedResponse = errors.New("malformed generation response")

// ParseError reports a response that is not valid JSON after fence stripping
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse response: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is lets callers match the broad malformed-response class
func (e *ParseError) Is(target error) bool { return target == ErrMalformedResponse }

// Violation is one structural problem at a dotted document path
type Violation struct {
	Path   string
	Reason string
}

func (v Violation) String() string {
	return v.Path + ": " + v.Reason
}

// SchemaError reports a parsed response that does not have the required shape.
// Path names the first violation in path order.
type SchemaError struct {
	Path       string
	Reason     string
	Violations []Violation
}

func (e *SchemaError) Error() string {
	if len(e.Violations) <= 1 {
		return fmt.Sprintf("invalid response at %s: %s", e.Path, e.Reason)
	}
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return fmt.Sprintf("invalid response at %s: %s (all: %s)", e.Path, e.Reason, strings.Join(parts, "; "))
}

// Is lets callers match the broad malformed-response class
func (e *SchemaError) Is(target error) bool { return target == ErrMalformedResponse }
