package mapper

import (
	"iter"
	"slices"
	"strings"
)

// Filter transforms a value right before it is written to a destination path.
// Filters must be pure; a returned error aborts the whole mapping call.
type Filter func(value any) (any, error)

// Path is an ordered, immutable sequence of segments parsed from a
// slash-delimited string, plus the filter applied when the path is written to.
type Path struct {
	raw      string
	segments []Segment
	filter   Filter
}

// ParsePath parses a path string into a Path.
// Supports: "/a", "a/b", "/a/b[0]/c". A single leading slash is ignored.
func ParsePath(path string) (Path, error) {
	trimmed := strings.TrimPrefix(path, "/")
	if trimmed == "" {
		return Path{}, &ParseError{Path: path, Err: ErrEmptyPath}
	}

	var segments []Segment

	for token := range strings.SplitSeq(trimmed, "/") {
		seg, err := parseSegment(token)
		if err != nil {
			return Path{}, &ParseError{Path: path, Token: token, Err: err}
		}

		segments = append(segments, seg)
	}

	return Path{raw: path, segments: segments}, nil
}

// MustParsePath is like ParsePath but panics on error.
func MustParsePath(path string) Path {
	p, err := ParsePath(path)
	if err != nil {
		panic(err)
	}

	return p
}

// String returns the text the path was parsed from.
func (p Path) String() string {
	return p.raw
}

// Len returns the number of segments.
func (p Path) Len() int {
	return len(p.segments)
}

// Segment returns the i-th segment.
func (p Path) Segment(i int) Segment {
	return p.segments[i]
}

// Last returns the final segment. Parsed paths always have one.
func (p Path) Last() Segment {
	return p.segments[len(p.segments)-1]
}

// Segments returns a copy of the segments.
func (p Path) Segments() []Segment {
	return slices.Clone(p.segments)
}

// All iterates over the segments in order.
func (p Path) All() iter.Seq2[int, Segment] {
	return slices.All(p.segments)
}

// IsZero reports whether p was never parsed.
func (p Path) IsZero() bool {
	return len(p.segments) == 0
}

// WithFilter returns a copy of p that applies f on write.
// A nil filter restores the identity.
func (p Path) WithFilter(f Filter) Path {
	p.filter = f
	return p
}

// HasFilter reports whether a non-identity filter is attached.
func (p Path) HasFilter() bool {
	return p.filter != nil
}

// ApplyFilter runs the attached filter, or returns value unchanged.
func (p Path) ApplyFilter(value any) (any, error) {
	if p.filter == nil {
		return value, nil
	}

	return p.filter(value)
}
