package score

import (
	"math"
	"testing"

	"prospector/internal/core/feature"
)

func TestDefaultWeights_SumToOne(t *testing.T) {
	w := DefaultWeights()
	if err := w.Validate(); err != nil {
		t.Fatalf("default weights invalid: %v", err)
	}
	if math.Abs(w.Sum()-1.0) > 1e-9 {
		t.Fatalf("default weight sum = %v", w.Sum())
	}
}

func TestBucketFor_Boundaries(t *testing.T) {
	cases := []struct {
		score int
		want  Bucket
	}{
		{49, BucketCold},
		{50, BucketWarm},
		{79, BucketWarm},
		{80, BucketHot},
		{0, BucketCold},
		{100, BucketHot},
	}
	for _, c := range cases {
		if got := BucketFor(c.score); got != c.want {
			t.Fatalf("BucketFor(%d) = %s, want %s", c.score, got, c.want)
		}
	}
}

func TestCompute_WeightedSum(t *testing.T) {
	v := feature.Vector{
		Engagement: 100, BusinessInterest: 100, PainPoint: 100,
		LifeEvent: 100, Responsiveness: 100, Leadership: 100, Relationship: 100,
	}
	res, err := Compute(v, DefaultWeights())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if res.Score != 100 || res.Bucket != BucketHot {
		t.Fatalf("res = %+v, want 100/hot", res)
	}

	res, err = Compute(feature.Vector{}, DefaultWeights())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if res.Score != 0 || res.Bucket != BucketCold {
		t.Fatalf("res = %+v, want 0/cold", res)
	}
}

func TestCompute_RejectsBadWeightSum(t *testing.T) {
	w := DefaultWeights()
	w[feature.NameEngagement] += 0.2 // sum now 1.2

	if _, err := Compute(feature.Vector{Engagement: 50}, w); err == nil {
		t.Fatalf("expected invariant error for weight sum 1.2")
	}
}

func TestCompute_RejectsMissingAndNegative(t *testing.T) {
	w := DefaultWeights()
	delete(w, feature.NameLeadership)
	if _, err := Compute(feature.Vector{}, w); err == nil {
		t.Fatalf("expected error for missing feature weight")
	}

	w = DefaultWeights()
	w[feature.NamePainPoint] = -w[feature.NamePainPoint]
	if _, err := Compute(feature.Vector{}, w); err == nil {
		t.Fatalf("expected error for negative weight")
	}
}

func TestCompute_ToleratesFloatDrift(t *testing.T) {
	w := DefaultWeights().Normalize().Normalize()
	if _, err := Compute(feature.Vector{Engagement: 50}, w); err != nil {
		t.Fatalf("renormalized weights rejected: %v", err)
	}
}

func TestCompute_Deterministic(t *testing.T) {
	v := feature.Vector{
		Engagement: 65, BusinessInterest: 50, PainPoint: 100,
		Responsiveness: 75, Relationship: 30,
	}
	w := DefaultWeights()
	a, err := Compute(v, w)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	b, _ := Compute(v, w)
	if a != b {
		t.Fatalf("scoring not deterministic: %+v vs %+v", a, b)
	}
}

func TestNormalize_ZeroSumResetsToDefaults(t *testing.T) {
	w := Weights{}
	for _, n := range feature.Names() {
		w[n] = 0
	}
	got := w.Normalize()
	if err := got.Validate(); err != nil {
		t.Fatalf("normalized zero weights invalid: %v", err)
	}
}
