// Package diagnostic provides structured configuration-time problems for
// mapping definitions.
//
// Key capabilities:
//   - Unknown or unexported field reports with "did you mean" suggestions
//   - Incompatible field type reports
//   - Duplicate and conflicting rule reports
//   - A combined error for callers that only need pass/fail
package diagnostic
