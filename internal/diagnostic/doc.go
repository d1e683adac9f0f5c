// Package diagnostic provides structured reports explaining how members of
// one value are copied onto another.
//
// Key capabilities:
//   - Direct assignment and conversion reports
//   - Skipped member warnings with near-miss suggestions
//   - Plain text rendering for the command line
package diagnostic
