// Package match provides identifier normalization, edit distance, reflect
// based type compatibility scoring and "did you mean" suggestions for field
// names.
//
// Key functions:
//   - NormalizeIdent: normalizes identifiers for fuzzy matching
//   - Levenshtein: computes edit distance between strings
//   - Compatibility: scores how a source type can feed a target type
//   - Suggest: ranks known field names against an unknown one
package match
