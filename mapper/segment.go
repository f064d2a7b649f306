package mapper

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Segment is one step of a Path: a map key, optionally followed by an index
// into the sequence stored under that key.
type Segment struct {
	key     string
	index   int
	indexed bool
}

// ParseSegment parses a single path token.
// Supports: "name" and "name[N]" where N is a nonnegative integer.
func ParseSegment(token string) (Segment, error) {
	seg, err := parseSegment(token)
	if err != nil {
		return Segment{}, &ParseError{Path: token, Token: token, Err: err}
	}

	return seg, nil
}

func parseSegment(token string) (Segment, error) {
	if token == "" {
		return Segment{}, fmt.Errorf("%w: empty segment", ErrInvalidSegment)
	}

	name, idx, hasIdx, err := splitIndex(token)
	if err != nil {
		return Segment{}, err
	}

	if name == "" {
		return Segment{}, fmt.Errorf("%w: index without key", ErrInvalidSegment)
	}

	if strings.ContainsAny(name, "[]") {
		return Segment{}, fmt.Errorf("%w: unbalanced brackets", ErrInvalidSegment)
	}

	return Segment{key: name, index: idx, indexed: hasIdx}, nil
}

// splitIndex splits a trailing "[N]" off the token.
func splitIndex(token string) (name string, index int, ok bool, err error) {
	if !strings.HasSuffix(token, "]") {
		return token, 0, false, nil
	}

	open := strings.LastIndexByte(token, '[')
	if open < 0 {
		return "", 0, false, fmt.Errorf("%w: unbalanced brackets", ErrInvalidSegment)
	}

	digits := token[open+1 : len(token)-1]
	if digits == "" {
		return "", 0, false, fmt.Errorf("%w: empty index", ErrInvalidSegment)
	}

	for _, r := range digits {
		if r < '0' || r > '9' {
			return "", 0, false, fmt.Errorf("%w: index %q is not a nonnegative integer", ErrInvalidSegment, digits)
		}
	}

	index, err = strconv.Atoi(digits)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			err = numErr.Err
		}

		return "", 0, false, fmt.Errorf("%w: index %q: %v", ErrInvalidSegment, digits, err)
	}

	return token[:open], index, true, nil
}

// Key returns the map key addressed by the segment.
func (s Segment) Key() string {
	return s.key
}

// Index returns the sequence index and whether the segment has one.
func (s Segment) Index() (int, bool) {
	return s.index, s.indexed
}

// HasIndex reports whether the segment addresses a sequence slot.
func (s Segment) HasIndex() bool {
	return s.indexed
}

// String returns the token form of the segment.
func (s Segment) String() string {
	if !s.indexed {
		return s.key
	}

	return s.key + "[" + strconv.Itoa(s.index) + "]"
}

// ValueFrom returns container[key], or container[key][index] for indexed
// segments. The boolean is false when the value is not there: the key is
// absent, container is not a map, or the indexed value is not a sequence long
// enough.
func (s Segment) ValueFrom(container any) (any, bool) {
	v, ok := lookupKey(container, s.key)
	if !ok {
		return nil, false
	}

	if !s.indexed {
		return v, true
	}

	return lookupIndex(v, s.index)
}
