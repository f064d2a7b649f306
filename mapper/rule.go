package mapper

import (
	"fmt"
	"reflect"
)

// Delegate transforms nested sub-documents on behalf of a rule.
// *Mapper implements it, so mappers can be nested inside each other.
type Delegate interface {
	Normalize(doc any) (map[string]any, error)
	Denormalize(doc any) (map[string]any, error)
}

// Outcome reports what a rule did during one mapping call.
type Outcome int

const (
	// OutcomeApplied means the value was written to the destination.
	OutcomeApplied Outcome = iota
	// OutcomeMissingSource means the source path did not resolve; nothing was written.
	OutcomeMissingSource
	// OutcomeConflictSkipped means ConflictSkip dropped the write.
	OutcomeConflictSkipped
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeMissingSource:
		return "missing_source"
	case OutcomeConflictSkipped:
		return "conflict_skipped"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Rule pairs two paths. The same rule serves both directions: Normalize reads
// From and writes To, Denormalize reads To and writes From.
type Rule struct {
	from     Path
	to       Path
	delegate Delegate
}

// NewRule creates a rule. delegate may be nil.
func NewRule(from, to Path, delegate Delegate) Rule {
	return Rule{from: from, to: to, delegate: delegate}
}

// From returns the canonical-side path.
func (r Rule) From() Path { return r.from }

// To returns the wire-side path.
func (r Rule) To() Path { return r.to }

// Delegate returns the nested mapper, or nil.
func (r Rule) Delegate() Delegate { return r.delegate }

// String returns "from -> to".
func (r Rule) String() string {
	return r.from.String() + " -> " + r.to.String()
}

// paths returns (source, destination) for the direction.
func (r Rule) paths(dir Direction) (Path, Path) {
	if dir == DirectionNormalize {
		return r.from, r.to
	}

	return r.to, r.from
}

// ProcessInto reads the source path of input and writes the value to the
// destination path of output. A source path that does not resolve leaves
// output untouched.
func (r Rule) ProcessInto(output, input map[string]any, dir Direction, policy ConflictPolicy) (Outcome, error) {
	src, dst := r.paths(dir)

	value, ok := extract(input, src)
	if !ok {
		return OutcomeMissingSource, nil
	}

	if r.delegate != nil {
		var err error

		value, err = r.delegateValue(value, dir)
		if err != nil {
			return OutcomeApplied, fmt.Errorf("rule %s: %w", r, err)
		}
	}

	return insert(output, dst, value, policy)
}

// extract walks the path from input. Every segment, the last one included,
// must resolve.
func extract(input map[string]any, path Path) (any, bool) {
	var current any = input

	for _, seg := range path.segments {
		v, ok := seg.ValueFrom(current)
		if !ok {
			return nil, false
		}

		current = v
	}

	return current, true
}

// delegateValue runs the delegate over a sequence element-wise, or once over
// anything else.
func (r Rule) delegateValue(value any, dir Direction) (any, error) {
	call := r.delegate.Normalize
	if dir == DirectionDenormalize {
		call = r.delegate.Denormalize
	}

	if s, ok := value.([]any); ok {
		return delegateEach(len(s), func(i int) any { return s[i] }, call)
	}

	rv := reflect.ValueOf(value)
	if isSequence(rv) {
		return delegateEach(rv.Len(), func(i int) any { return rv.Index(i).Interface() }, call)
	}

	out, err := call(value)
	if err != nil {
		return nil, fmt.Errorf("delegate: %w", err)
	}

	return out, nil
}

func delegateEach(n int, at func(i int) any, call func(any) (map[string]any, error)) ([]any, error) {
	out := make([]any, n)

	for i := range n {
		doc, err := call(at(i))
		if err != nil {
			return nil, fmt.Errorf("delegate: element %d: %w", i, err)
		}

		out[i] = doc
	}

	return out, nil
}

// insert writes value at path inside output, creating intermediate maps and
// sequences on demand.
func insert(output map[string]any, path Path, value any, policy ConflictPolicy) (Outcome, error) {
	current := output
	last := len(path.segments) - 1

	for i, seg := range path.segments {
		if i == last {
			var seq []any

			if seg.indexed {
				existing, outcome, err := sequenceAt(current, path, seg, policy)
				if err != nil || outcome != OutcomeApplied {
					return outcome, err
				}

				seq = existing
			}

			v := cloneValue(value)
			if path.HasFilter() {
				filtered, err := path.ApplyFilter(v)
				if err != nil {
					return OutcomeApplied, &FilterError{Path: path.String(), Err: err}
				}

				v = cloneValue(filtered)
			}

			if !seg.indexed {
				current[seg.key] = v
				return OutcomeApplied, nil
			}

			seq = grow(seq, seg.index+1)
			seq[seg.index] = v
			current[seg.key] = seq

			return OutcomeApplied, nil
		}

		if !seg.indexed {
			next, ok := current[seg.key].(map[string]any)
			if !ok || next == nil {
				if outcome, err := resolveConflict(current[seg.key], path, seg, "map", policy); outcome != OutcomeApplied || err != nil {
					return outcome, err
				}

				next = map[string]any{}
				current[seg.key] = next
			}

			current = next

			continue
		}

		seq, outcome, err := sequenceAt(current, path, seg, policy)
		if err != nil || outcome != OutcomeApplied {
			return outcome, err
		}

		if seg.index < len(seq) {
			if next, ok := seq[seg.index].(map[string]any); ok && next != nil {
				current = next
				continue
			}

			if outcome, err := resolveConflict(seq[seg.index], path, seg, "map", policy); outcome != OutcomeApplied || err != nil {
				return outcome, err
			}
		}

		next := map[string]any{}
		seq = grow(seq, seg.index+1)
		seq[seg.index] = next
		current[seg.key] = seq
		current = next
	}

	return OutcomeApplied, nil
}

// sequenceAt returns the []any stored under seg's key. A nil sequence with
// OutcomeApplied and no error means a fresh one must be created.
func sequenceAt(current map[string]any, path Path, seg Segment, policy ConflictPolicy) ([]any, Outcome, error) {
	existing := current[seg.key]
	if seq, ok := existing.([]any); ok {
		return seq, OutcomeApplied, nil
	}

	outcome, err := resolveConflict(existing, path, seg, "sequence", policy)

	return nil, outcome, err
}

// resolveConflict decides whether an existing node that is not the wanted
// container may be replaced. Absent nodes and nil containers are always
// replaceable.
func resolveConflict(existing any, path Path, seg Segment, want string, policy ConflictPolicy) (Outcome, error) {
	if isNil(existing) {
		return OutcomeApplied, nil
	}

	switch policy {
	case ConflictFail:
		return OutcomeApplied, &ConflictError{Path: path.String(), Segment: seg.String(), Want: want, Found: existing}
	case ConflictSkip:
		return OutcomeConflictSkipped, nil
	default:
		return OutcomeApplied, nil
	}
}

// grow extends seq with nils so that it has at least n elements.
func grow(seq []any, n int) []any {
	if len(seq) >= n {
		return seq
	}

	return append(seq, make([]any, n-len(seq))...)
}
