// Package feature computes the seven-dimension signal vector for a prospect.
// Every dimension is computed independently and clamped to [0,100] as the
// final step; contributions are summed first so order never matters
package feature

import (
	"math"
	"time"
)

// Canonical feature names, shared with the scoring weights
const (
	NameEngagement       = "engagement"
	NameBusinessInterest = "businessInterest"
	NamePainPoint        = "painPoint"
	NameLifeEvent        = "lifeEvent"
	NameResponsiveness   = "responsiveness"
	NameLeadership       = "leadership"
	NameRelationship     = "relationship"
)

// Names returns the canonical feature names in fixed order
func Names() []string {
	return []string{
		NameEngagement,
		NameBusinessInterest,
		NamePainPoint,
		NameLifeEvent,
		NameResponsiveness,
		NameLeadership,
		NameRelationship,
	}
}

// Vector holds the seven clamped feature scores
type Vector struct {
	Engagement       float64 `json:"engagement"`
	BusinessInterest float64 `json:"businessInterest"`
	PainPoint        float64 `json:"painPoint"`
	LifeEvent        float64 `json:"lifeEvent"`
	Responsiveness   float64 `json:"responsiveness"`
	Leadership       float64 `json:"leadership"`
	Relationship     float64 `json:"relationship"`
}

// Get returns the value for a canonical feature name
func (v Vector) Get(name string) float64 {
	switch name {
	case NameEngagement:
		return v.Engagement
	case NameBusinessInterest:
		return v.BusinessInterest
	case NamePainPoint:
		return v.PainPoint
	case NameLifeEvent:
		return v.LifeEvent
	case NameResponsiveness:
		return v.Responsiveness
	case NameLeadership:
		return v.Leadership
	case NameRelationship:
		return v.Relationship
	}
	return 0
}

// Set assigns the value for a canonical feature name
func (v *Vector) Set(name string, val float64) {
	switch name {
	case NameEngagement:
		v.Engagement = val
	case NameBusinessInterest:
		v.BusinessInterest = val
	case NamePainPoint:
		v.PainPoint = val
	case NameLifeEvent:
		v.LifeEvent = val
	case NameResponsiveness:
		v.Responsiveness = val
	case NameLeadership:
		v.Leadership = val
	case NameRelationship:
		v.Relationship = val
	}
}

// Merge returns the per-dimension max of v and o.
// Used to fold enrichment-derived signals into heuristic ones
func (v Vector) Merge(o Vector) Vector {
	out := v
	for _, n := range Names() {
		if o.Get(n) > out.Get(n) {
			out.Set(n, o.Get(n))
		}
	}
	return out
}

// clamp bounds x to [0,100]
func clamp(x float64) float64 {
	return math.Min(100, math.Max(0, x))
}

// clampAll applies clamp to every dimension
func clampAll(v Vector) Vector {
	for _, n := range Names() {
		v.Set(n, clamp(v.Get(n)))
	}
	return v
}

// CarryScores are externally supplied prior scores in [0,1], carried over
// from whatever platform observed the prospect before us
type CarryScores struct {
	Engagement     float64
	Business       float64
	Pain           float64
	Responsiveness float64
	Leadership     float64
}

// Trait levels used by personality flags
const (
	TraitHigh   = "high"
	TraitMedium = "medium"
)

// Profile is the aggregated view of a prospect used by the full extractor
type Profile struct {
	Topics     []string
	Interests  []string
	PainPoints []string
	LifeEvents []string

	// Personality maps trait name -> level ("high"/"medium"/"low")
	Personality map[string]string

	Carry CarryScores
}

// Event is one observed interaction with the prospect
type Event struct {
	Kind      string
	At        time.Time
	Sentiment float64 // [-1,1]
}

// recencyDecay returns the decay factor for the gap since the last event:
// 1.0 at <=1 day, then 0.9/0.7/0.5/0.3 at 3/7/14/30 days, 0.1 beyond
func recencyDecay(last time.Time, now time.Time) float64 {
	if last.IsZero() {
		return 0.1
	}
	days := now.Sub(last).Hours() / 24
	switch {
	case days <= 1:
		return 1.0
	case days <= 3:
		return 0.9
	case days <= 7:
		return 0.7
	case days <= 14:
		return 0.5
	case days <= 30:
		return 0.3
	default:
		return 0.1
	}
}

// eventStats summarizes events: count, newest timestamp, mean sentiment
func eventStats(events []Event) (count int, last time.Time, avgSentiment float64) {
	count = len(events)
	if count == 0 {
		return 0, time.Time{}, 0
	}
	var sum float64
	for _, e := range events {
		if e.At.After(last) {
			last = e.At
		}
		sum += e.Sentiment
	}
	return count, last, sum / float64(count)
}
