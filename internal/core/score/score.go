// Package score combines a feature vector with per-user weights into a
// single 0-100 scout score and an outreach bucket
package score

import (
	"math"

	"prospector/internal/core/feature"

	perr "prospector/internal/platform/errors"
)

// ModelVersion is stamped on every score record so historical rows can be
// told apart after the model changes
const ModelVersion = 3

// Bucket is the coarse outreach priority tier
type Bucket string

// Buckets in priority order
const (
	BucketHot  Bucket = "hot"
	BucketWarm Bucket = "warm"
	BucketCold Bucket = "cold"
)

// Canonical bucket thresholds: hot at 80+, warm at 50+.
// An older scan path used 70/50 on a differently scaled score; 80/50 is the
// single pair used everywhere in this codebase
const (
	HotThreshold  = 80
	WarmThreshold = 50
)

// sumTolerance is how far from 1.0 a weight sum may drift before we refuse
// to score with it
const sumTolerance = 1e-6

// Weights maps canonical feature names to non-negative weights summing to 1.0
type Weights map[string]float64

// DefaultWeights is the documented bootstrap distribution for a new user.
// Values sum to exactly 1.0
func DefaultWeights() Weights {
	return Weights{
		feature.NameEngagement:       0.20,
		feature.NameBusinessInterest: 0.18,
		feature.NamePainPoint:        0.17,
		feature.NameLifeEvent:        0.12,
		feature.NameResponsiveness:   0.13,
		feature.NameLeadership:       0.08,
		feature.NameRelationship:     0.12,
	}
}

// Sum returns the total of all weights
func (w Weights) Sum() float64 {
	var s float64
	for _, v := range w {
		s += v
	}
	return s
}

// Validate checks the sum-to-1.0 invariant and that every canonical feature
// has a non-negative weight
func (w Weights) Validate() error {
	for _, n := range feature.Names() {
		v, ok := w[n]
		if !ok {
			return perr.Newf(perr.ErrorCodeInvalidArgument, "weights: missing feature %q", n)
		}
		if v < 0 {
			return perr.Newf(perr.ErrorCodeInvalidArgument, "weights: negative weight for %q", n)
		}
	}
	if d := math.Abs(w.Sum() - 1.0); d > sumTolerance {
		return perr.Newf(perr.ErrorCodeInvalidArgument, "weights: sum %.9f not 1.0", w.Sum())
	}
	return nil
}

// Normalize scales all weights so they sum to 1.0. A zero sum resets to defaults
func (w Weights) Normalize() Weights {
	s := w.Sum()
	if s <= 0 {
		return DefaultWeights()
	}
	out := make(Weights, len(w))
	for k, v := range w {
		out[k] = v / s
	}
	return out
}

// Clone returns a copy of w
func (w Weights) Clone() Weights {
	out := make(Weights, len(w))
	for k, v := range w {
		out[k] = v
	}
	return out
}

// Result is the outcome of one scoring call
type Result struct {
	Score  int
	Bucket Bucket
}

// Compute scores a feature vector against weights.
// Weights that fail validation are rejected outright; silently renormalizing
// here would mask weight-store corruption
func Compute(v feature.Vector, w Weights) (Result, error) {
	if err := w.Validate(); err != nil {
		return Result{}, err
	}
	var sum float64
	for _, n := range feature.Names() {
		sum += v.Get(n) * w[n]
	}
	s := int(math.Round(sum))
	if s < 0 {
		s = 0
	}
	if s > 100 {
		s = 100
	}
	return Result{Score: s, Bucket: BucketFor(s)}, nil
}

// BucketFor classifies a score; pure function of the score alone
func BucketFor(s int) Bucket {
	switch {
	case s >= HotThreshold:
		return BucketHot
	case s >= WarmThreshold:
		return BucketWarm
	default:
		return BucketCold
	}
}
