package explain

import (
	"testing"

	"prospector/internal/core/feature"
)

func TestTags_TopRankedAboveThreshold(t *testing.T) {
	v := feature.Vector{
		Engagement:       90,
		BusinessInterest: 85,
		Responsiveness:   75,
		Relationship:     40,
	}
	tags := Tags(v)
	want := []string{"Highly engaged", "Strong business interest", "Very responsive"}
	if len(tags) != len(want) {
		t.Fatalf("tags = %v, want %v", tags, want)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Fatalf("tags = %v, want %v", tags, want)
		}
	}
}

func TestTags_BelowThresholdEmitsNothing(t *testing.T) {
	v := feature.Vector{Engagement: 69, PainPoint: 65, Relationship: 60}
	if tags := Tags(v); len(tags) != 0 {
		t.Fatalf("tags = %v, want none", tags)
	}
}

func TestTags_CompoundPairs(t *testing.T) {
	v := feature.Vector{PainPoint: 60, BusinessInterest: 60}
	tags := Tags(v)
	if len(tags) != 1 || tags[0] != "Problem-aware + business-minded" {
		t.Fatalf("tags = %v", tags)
	}

	v = feature.Vector{LifeEvent: 50, Responsiveness: 60}
	tags = Tags(v)
	if len(tags) != 1 || tags[0] != "Prime timing for outreach" {
		t.Fatalf("tags = %v", tags)
	}
}

func TestTags_LeadershipCompoundIndependentOfRank(t *testing.T) {
	// leadership is 4th by rank so it earns no rank tag, but the compound fires
	v := feature.Vector{
		Engagement:       95,
		BusinessInterest: 90,
		PainPoint:        85,
		Leadership:       70,
	}
	tags := Tags(v)
	found := false
	for _, tag := range tags {
		if tag == "Potential team builder" {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing leadership compound tag in %v", tags)
	}
}

func TestTags_CappedAtFive(t *testing.T) {
	v := feature.Vector{
		Engagement:       100,
		BusinessInterest: 95,
		PainPoint:        90,
		LifeEvent:        85,
		Responsiveness:   80,
		Leadership:       75,
		Relationship:     70,
	}
	tags := Tags(v)
	if len(tags) != MaxTags {
		t.Fatalf("len(tags) = %d, want %d", len(tags), MaxTags)
	}
	// rank tags come first
	if tags[0] != "Highly engaged" {
		t.Fatalf("tags = %v", tags)
	}
}

func TestTags_Deterministic(t *testing.T) {
	v := feature.Vector{PainPoint: 80, BusinessInterest: 80, Leadership: 72, Responsiveness: 61, LifeEvent: 55}
	a := Tags(v)
	b := Tags(v)
	if len(a) != len(b) {
		t.Fatalf("tags not deterministic: %v vs %v", a, b)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("tags not deterministic: %v vs %v", a, b)
		}
	}
}
