package feature

import (
	"time"

	"prospector/internal/core/keywordpack"
)

// Extractor computes feature vectors from profile/event data or raw snippets
type Extractor struct {
	m   *keywordpack.Matcher
	now func() time.Time
}

// NewExtractor builds an Extractor over the compiled keyword matcher
func NewExtractor(m *keywordpack.Matcher) *Extractor {
	return &Extractor{m: m, now: time.Now}
}

// WithClock overrides the time source, for tests
func (x *Extractor) WithClock(now func() time.Time) *Extractor {
	x.now = now
	return x
}

// Extract computes the full seven-dimension vector from aggregated data.
// Each dimension sums its contributions, then clamps once at the end
func (x *Extractor) Extract(p Profile, events []Event) Vector {
	count, last, avgSent := eventStats(events)
	decay := recencyDecay(last, x.now())

	var v Vector

	// engagement: event-count tier scaled by recency, plus carried prior
	v.Engagement = engagementTier(count)*decay + p.Carry.Engagement*30

	// businessInterest: topic hits 15pt cap 50, interest hits 10pt cap 30, carry to 20
	topicPts := 0.0
	for _, t := range p.Topics {
		if x.hitsBusiness(t) {
			topicPts += 15
		}
	}
	if topicPts > 50 {
		topicPts = 50
	}
	interestPts := 0.0
	for _, t := range p.Interests {
		if x.hitsBusiness(t) {
			interestPts += 10
		}
	}
	if interestPts > 30 {
		interestPts = 30
	}
	v.BusinessInterest = topicPts + interestPts + p.Carry.Business*20

	// painPoint: 25 per high-value pain, 10 per other listed pain, carry to 30
	painPts := 0.0
	for _, pp := range p.PainPoints {
		if x.hitsHighValuePain(pp) {
			painPts += 25
		} else {
			painPts += 10
		}
	}
	v.PainPoint = painPts + p.Carry.Pain*30

	// lifeEvent: first matching impact table row wins per event string
	lifePts := 0.0
	for _, ev := range p.LifeEvents {
		if row, ok := x.m.MatchLifeEvent(ev); ok {
			lifePts += float64(row.Impact)
		}
	}
	v.LifeEvent = lifePts

	// responsiveness: base 50, sentiment shifts, personality flags, carry to 20
	resp := 50.0
	switch {
	case avgSent > 0.5:
		resp += 25
	case avgSent > 0:
		resp += 10
	case avgSent < -0.3:
		resp -= 20
	}
	if p.Personality[TraitOpenness] == TraitHigh {
		resp += 15
	}
	if p.Personality[TraitResponsiveness] == TraitHigh {
		resp += 20
	}
	if p.Personality[TraitEngagement] == TraitHigh {
		resp += 10
	}
	v.Responsiveness = resp + p.Carry.Responsiveness*20

	// leadership: personality flag 40/20, topic+interest overlap 10 per match cap 30, carry to 30
	leadPts := 0.0
	switch p.Personality[TraitLeadership] {
	case TraitHigh:
		leadPts += 40
	case TraitMedium:
		leadPts += 20
	}
	overlap := 0.0
	for _, t := range append(append([]string{}, p.Topics...), p.Interests...) {
		if x.hitsLeadership(t) {
			overlap += 10
		}
	}
	if overlap > 30 {
		overlap = 30
	}
	v.Leadership = leadPts + overlap + p.Carry.Leadership*30

	// relationship: base 30, event tiers, positive sentiment, recency up to 20
	rel := 30.0
	switch {
	case count > 30:
		rel += 30
	case count > 15:
		rel += 20
	case count > 5:
		rel += 10
	}
	if avgSent > 0.3 {
		rel += 20
	}
	rel += decay * 20
	v.Relationship = rel

	return clampAll(v)
}

// Personality trait names recognized by the extractor
const (
	TraitOpenness       = "openness"
	TraitResponsiveness = "responsiveness"
	TraitEngagement     = "engagement"
	TraitLeadership     = "leadership"
)

// engagementTier maps event counts to base engagement points
func engagementTier(count int) float64 {
	switch {
	case count > 50:
		return 40
	case count > 20:
		return 30
	case count > 10:
		return 20
	case count > 5:
		return 10
	default:
		return 0
	}
}

// FromSnippet is the fast path: heuristic features straight from a candidate
// snippet, before any profile or event history exists. Baselines mirror the
// full extractor (responsiveness 50, relationship 30); keyword hits add the rest
func (x *Extractor) FromSnippet(snippet string) Vector {
	hits := x.m.Scan(snippet)

	urg := float64(len(hits.Urgency))

	var v Vector
	v.Engagement = 50 + 15*urg
	v.BusinessInterest = 25 * float64(len(hits.Business))
	v.PainPoint = 45*float64(len(hits.PainHigh)) + 15*float64(len(hits.PainGeneral)) + 10*urg
	for _, key := range hits.LifeEventKeys {
		if imp, ok := x.m.Pack().ImpactByKey[key]; ok && float64(imp) > v.LifeEvent {
			v.LifeEvent = float64(imp)
		}
	}
	v.Responsiveness = 50 + 25*urg
	v.Leadership = 25 * float64(len(hits.Leadership))
	v.Relationship = 30

	return clampAll(v)
}

func (x *Extractor) hitsBusiness(s string) bool {
	return len(x.m.Scan(s).Business) > 0
}

func (x *Extractor) hitsHighValuePain(s string) bool {
	return len(x.m.Scan(s).PainHigh) > 0
}

func (x *Extractor) hitsLeadership(s string) bool {
	return len(x.m.Scan(s).Leadership) > 0
}
