package mapper

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyPath is reported when a path has no segments.
	ErrEmptyPath = errors.New("empty path")
	// ErrInvalidSegment is reported for a malformed path segment.
	ErrInvalidSegment = errors.New("invalid path segment")
	// ErrStructuralConflict is reported when a destination node exists but is
	// not the container the path needs.
	ErrStructuralConflict = errors.New("structural conflict")
	// ErrNotDocument is reported when a value handed to a mapper is not a map.
	ErrNotDocument = errors.New("value is not a document")
)

// ParseError describes a path that could not be parsed.
type ParseError struct {
	Path  string // full path text
	Token string // offending segment, empty for whole-path errors
	Err   error
}

func (e *ParseError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("parse path %q: %v", e.Path, e.Err)
	}

	return fmt.Sprintf("parse path %q: segment %q: %v", e.Path, e.Token, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ConflictError describes an intermediate destination node that holds a value
// of the wrong shape.
type ConflictError struct {
	Path    string
	Segment string
	Want    string // "map" or "sequence"
	Found   any
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%v: write %q: segment %q holds %T, want %s", ErrStructuralConflict, e.Path, e.Segment, e.Found, e.Want)
}

func (e *ConflictError) Unwrap() error {
	return ErrStructuralConflict
}

// FilterError wraps an error returned by a destination path filter.
type FilterError struct {
	Path string
	Err  error
}

func (e *FilterError) Error() string {
	return fmt.Sprintf("filter on %q: %v", e.Path, e.Err)
}

func (e *FilterError) Unwrap() error {
	return e.Err
}
