// Package diagnostic provides structured errors, warnings and infos collected
// while validating rule files.
//
// Each diagnostic carries a stable code, the mapper it concerns, the location
// of the offending entry (e.g. "rules[2].from") and optional "did you mean"
// suggestions.
package diagnostic
