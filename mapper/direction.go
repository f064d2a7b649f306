package mapper

import (
	"fmt"
	"strings"
)

//go:generate go tool stringer -type=Direction -trimprefix=Direction -output=direction_string.go

// Direction selects which side of a rule is read and which is written.
type Direction int

const (
	// DirectionNormalize reads the "from" path and writes the "to" path.
	DirectionNormalize Direction = iota
	// DirectionDenormalize reads the "to" path and writes the "from" path.
	DirectionDenormalize
)

// ParseDirection parses "normalize" or "denormalize", case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "normalize":
		return DirectionNormalize, nil
	case "denormalize":
		return DirectionDenormalize, nil
	default:
		return 0, fmt.Errorf("unknown direction %q", s)
	}
}

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	if d == DirectionNormalize {
		return DirectionDenormalize
	}

	return DirectionNormalize
}
