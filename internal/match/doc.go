// Package match provides name normalization, Levenshtein distance calculation,
// type compatibility scoring, and candidate ranking for member matching.
//
// Key functions:
//   - NormalizeIdent: normalizes identifiers for fuzzy matching
//   - ExportedIdent: turns an arbitrary key into an exported Go identifier
//   - Levenshtein, Suggest: edit distance and "did you mean" lookups
//   - ScoreTypeCompatibility: scores type compatibility using reflect
//   - RankCandidates: ranks potential member counterparts
package match
