package match

import (
	"reflect"
	"testing"
	"time"
)

func TestRankCandidates(t *testing.T) {
	targets := []Field{
		{Name: "UpdatedAt", Type: reflect.TypeFor[time.Time]()},
		{Name: "CreatedAt", Type: reflect.TypeFor[time.Time]()},
		{Name: "Creator", Type: reflect.TypeFor[string]()},
	}

	candidates := RankCandidates(Field{Name: "created_at", Type: reflect.TypeFor[time.Time]()}, targets)
	if len(candidates) != len(targets) {
		t.Fatalf("got %d candidates, want %d", len(candidates), len(targets))
	}

	best := candidates.Best()
	if best.Target.Name != "CreatedAt" {
		t.Errorf("best candidate = %s, want CreatedAt", best.Target.Name)
	}

	if best.TypeCompat.Compatibility != TypeIdentical {
		t.Errorf("best candidate compatibility = %v, want identical", best.TypeCompat.Compatibility)
	}

	for i := 1; i < len(candidates); i++ {
		if candidates[i-1].CombinedScore < candidates[i].CombinedScore {
			t.Errorf("candidates are not sorted at %d", i)
		}
	}

	if candidates.HighConfidence(DefaultMinScore, DefaultMinGap) == nil {
		t.Error("exact normalized match should be a high confidence candidate")
	}
}

func TestHighConfidenceRejectsAmbiguity(t *testing.T) {
	targets := []Field{
		{Name: "Value1", Type: reflect.TypeFor[int]()},
		{Name: "Value2", Type: reflect.TypeFor[int]()},
	}

	candidates := RankCandidates(Field{Name: "Value", Type: reflect.TypeFor[int]()}, targets)
	if got := candidates.HighConfidence(DefaultMinScore, DefaultMinGap); got != nil {
		t.Errorf("ambiguous candidates must not be accepted, got %s", got.Target.Name)
	}

	if got := CandidateList(nil).Best(); got != nil {
		t.Error("empty list has no best candidate")
	}
}
