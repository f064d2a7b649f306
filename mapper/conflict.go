package mapper

import (
	"fmt"
	"strings"
)

//go:generate go tool stringer -type=ConflictPolicy -trimprefix=Conflict -output=conflict_string.go

// ConflictPolicy decides what happens when an intermediate node of a
// destination path already holds a value that is not the container the path
// needs (for example a scalar where a map is expected).
type ConflictPolicy int

const (
	// ConflictOverwrite replaces the existing value with a fresh container.
	ConflictOverwrite ConflictPolicy = iota
	// ConflictFail aborts the mapping call with a *ConflictError.
	ConflictFail
	// ConflictSkip leaves the existing value alone and drops the rule.
	ConflictSkip
)

// ParseConflictPolicy parses "overwrite", "fail" or "skip", case-insensitively.
// The empty string yields ConflictOverwrite.
func ParseConflictPolicy(s string) (ConflictPolicy, error) {
	switch strings.ToLower(s) {
	case "", "overwrite":
		return ConflictOverwrite, nil
	case "fail":
		return ConflictFail, nil
	case "skip":
		return ConflictSkip, nil
	default:
		return 0, fmt.Errorf("unknown conflict policy %q (expected overwrite, fail or skip)", s)
	}
}
