// Package match provides name normalization and edit-distance scoring used to
// suggest close matches for misspelled filter and mapper names.
//
// Key functions:
//   - NormalizeIdent: folds identifiers so "firstName", "first_name" and
//     "First-Name" compare equal
//   - Levenshtein: computes edit distance between strings
//   - Suggest: ranks candidate names by normalized similarity
package match
