// Package output builds the stats report and encodes it deterministically.
//
// Identical traversal results must produce byte-identical JSON so reports
// can be diffed between runs:
//
//   - object keys are sorted alphabetically
//   - floats are rounded to at most 6 decimal places
//   - nil fields are omitted
//   - extension rows are ordered sloc DESC, files DESC, extension ASC
package output
