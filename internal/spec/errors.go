package spec

import (
	"fmt"

	"github.com/vvka-141/appgen/pkg/appgen"
)

// ParseError represents a malformed specification document.
// It includes the source path, an optional position and an actionable hint.
type ParseError struct {
	Source  string // Path or name of the document
	Line    int    // Line number (0 if unknown)
	Column  int    // Column number (0 if unknown)
	Message string // Primary error message
	Hint    string // Actionable suggestion for fixing
}

// Error implements the error interface with rich formatting.
func (e *ParseError) Error() string {
	location := e.Source
	if e.Line > 0 {
		if e.Column > 0 {
			location = fmt.Sprintf("%s (line %d, col %d)", e.Source, e.Line, e.Column)
		} else {
			location = fmt.Sprintf("%s (line %d)", e.Source, e.Line)
		}
	}

	msg := fmt.Sprintf("specification error in %s: %s", location, e.Message)
	if e.Hint != "" {
		msg += "\n\nHint: " + e.Hint
	}
	return msg
}

// Unwrap lets callers match ParseError with errors.Is(err, appgen.ErrInvalidSpec).
func (e *ParseError) Unwrap() error {
	return appgen.ErrInvalidSpec
}
