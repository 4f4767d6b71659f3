package journal

import (
	"errors"
	"fmt"
)

// ErrNotFound reports an edit or delete whose target no longer matches any
// stored row, e.g. after the backing file was modified externally.
var ErrNotFound = errors.New("record not found")

// ValidationError reports malformed or missing user input. The offending
// field is always identified; input is never silently coerced.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ParseError reports corrupt or schema-mismatched stored data found on load.
type ParseError struct {
	File string
	Line int // 1-based, 0 when the failure is not row-specific
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse %s: line %d: %v", e.File, e.Line, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
