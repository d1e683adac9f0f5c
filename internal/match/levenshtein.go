package match

import (
	"reflex/utils"
)

// Levenshtein computes the Levenshtein distance (edit distance) between two strings,
// counted in runes.
// The distance is the minimum number of single-character edits (insertions, deletions,
// or substitutions) required to transform one string into the other.
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}

	ra, rb := []rune(a), []rune(b)

	// keep ra the shorter one, only two rows of its length are needed
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	if len(ra) == 0 {
		return len(rb)
	}

	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(rb); j++ {
		curr[0] = j

		for i := 1; i <= len(ra); i++ {
			cost := 0
			if ra[i-1] != rb[j-1] {
				cost = 1
			}

			curr[i] = min(
				prev[i]+1,      // deletion
				curr[i-1]+1,    // insertion
				prev[i-1]+cost, // substitution
			)
		}

		prev, curr = curr, prev
	}

	return prev[len(ra)]
}

// LevenshteinNormalized computes a normalized similarity score between 0 and 1.
// 1.0 means identical strings, 0.0 means completely different.
func LevenshteinNormalized(a, b string) float64 {
	maxLen := max(len([]rune(a)), len([]rune(b)))
	if maxLen == 0 {
		return 1.0
	}

	return 1.0 - float64(Levenshtein(a, b))/float64(maxLen)
}

// NormalizedLevenshteinScore computes the similarity score between two identifiers
// after normalizing them. This is the primary function for name matching.
func NormalizedLevenshteinScore(a, b string) float64 {
	return LevenshteinNormalized(NormalizeIdent(a), NormalizeIdent(b))
}

// SuggestThreshold is the lowest similarity Suggest accepts.
const SuggestThreshold = 0.5

// Suggest returns the candidate closest to name, ok is false when none scores at
// least SuggestThreshold. Ties go to the earlier candidate.
func Suggest(name string, candidates []string) (suggestion string, ok bool) {
	best := -1.0
	for _, candidate := range candidates {
		score := NormalizedLevenshteinScore(name, candidate)
		if score > best {
			best, suggestion = score, candidate
		}
	}

	return suggestion, utils.IsInRange(SuggestThreshold, best, 1.0)
}
