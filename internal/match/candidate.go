package match

import (
	"reflect"
	"sort"
)

// Field is a named, typed member taking part in matching.
type Field struct {
	Name string
	Type reflect.Type
}

// Candidate represents a potential counterpart of a source member on the target.
type Candidate struct {
	Source Field
	Target Field

	// Scoring components
	NameScore  float64                 // Normalized Levenshtein similarity (0-1)
	TypeCompat TypeCompatibilityResult // Type compatibility result

	// Combined score for ranking (higher is better)
	CombinedScore float64
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

// RankCandidates scores every target member as a counterpart of source.
// Returns candidates sorted by combined score (descending).
func RankCandidates(source Field, targets []Field) CandidateList {
	candidates := make(CandidateList, 0, len(targets))

	for _, target := range targets {
		nameScore := NormalizedLevenshteinScore(source.Name, target.Name)
		typeCompat := ScoreTypeCompatibility(source.Type, target.Type)

		candidates = append(candidates, Candidate{
			Source:        source,
			Target:        target,
			NameScore:     nameScore,
			TypeCompat:    typeCompat,
			CombinedScore: calculateCombinedScore(nameScore, typeCompat.Compatibility),
		})
	}

	// Sort by combined score (descending), then by name for determinism
	sort.Sort(candidates)

	return candidates
}

// calculateCombinedScore computes a combined score from name similarity and type compatibility.
// Weights:
//   - Name similarity: 60% (0.0-0.6)
//   - Type compatibility: 40% (0.0-0.4)
func calculateCombinedScore(nameScore float64, typeCompat TypeCompatibility) float64 {
	const (
		nameWeight = 0.6
		typeWeight = 0.4
	)

	var typeScore float64
	switch typeCompat {
	case TypeIdentical:
		typeScore = 1.0
	case TypeAssignable:
		typeScore = 0.9
	case TypeConvertible:
		typeScore = 0.7
	case TypeNeedsTransform:
		typeScore = 0.4
	case TypeIncompatible:
		typeScore = 0.0
	}

	return nameScore*nameWeight + typeScore*typeWeight
}

func (c CandidateList) Len() int      { return len(c) }
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less sorts by combined score descending, then by target name.
func (c CandidateList) Less(i, j int) bool {
	if c[i].CombinedScore != c[j].CombinedScore {
		return c[i].CombinedScore > c[j].CombinedScore
	}

	return c[i].Target.Name < c[j].Target.Name
}

// Best returns the best candidate, or nil if no candidates.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 {
		return nil
	}

	return &c[0]
}

// HighConfidence returns the best candidate if it's significantly better than alternatives.
// Returns nil if no clear winner exists.
func (c CandidateList) HighConfidence(minScore, minGap float64) *Candidate {
	best := c.Best()
	if best == nil || best.CombinedScore < minScore {
		return nil
	}

	// Must be compatible (at least needs transform)
	if best.TypeCompat.Compatibility < TypeNeedsTransform {
		return nil
	}

	if len(c) > 1 && c[0].CombinedScore-c[1].CombinedScore < minGap {
		return nil
	}

	return best
}

// Confidence thresholds for accepting a near match.
const (
	// DefaultMinScore is the minimum combined score.
	DefaultMinScore = 0.7
	// DefaultMinGap is the minimum score gap between top candidates.
	DefaultMinGap = 0.15
)
