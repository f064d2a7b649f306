// Package mapper converts nested key-value documents between a canonical
// ("denormalized") shape and a wire ("normalized") shape using one set of
// declarative, bidirectional path rules.
//
// # Paths
//
// A path is a slash-delimited list of segments with an optional leading slash:
//   - Map keys: "/user/name"
//   - Sequence slots: "/user/emails[0]"
//
// # Rules
//
// A Rule pairs a "from" path (canonical side) with a "to" path (wire side).
// Normalize reads from and writes to; Denormalize does the reverse. A rule
// whose source path does not fully resolve is skipped and writes nothing.
//
// Destination paths may carry a Filter that transforms the value right before
// it is written. Filters belong to the path, not to a direction: a filter on
// the "to" path runs during Normalize and one on the "from" path during
// Denormalize. They are never inverted automatically.
//
// A rule may delegate its value to another mapper (any Delegate). Sequences
// are delegated element by element.
//
// # Conflicts
//
// Writing creates intermediate maps and sequences as needed. When an
// intermediate node exists with the wrong shape, Config.ConflictPolicy decides
// whether it is overwritten (the default), the call fails, or the rule is
// skipped.
package mapper

// Version of the mapper package.
const Version = "0.1.0"
