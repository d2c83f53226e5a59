// Package explain derives human-readable "why this score" tags from the
// dominant features and known feature pairings
package explain

import (
	"sort"

	"prospector/internal/core/feature"
)

// MaxTags caps the tag list per prospect
const MaxTags = 5

// rankThreshold is the minimum value for a top-ranked feature to earn a tag
const rankThreshold = 70

// rankTags maps each feature to its standalone tag
var rankTags = map[string]string{
	feature.NameEngagement:       "Highly engaged",
	feature.NameBusinessInterest: "Strong business interest",
	feature.NamePainPoint:        "Clear pain points",
	feature.NameLifeEvent:        "Recent life event",
	feature.NameResponsiveness:   "Very responsive",
	feature.NameLeadership:       "Natural leader",
	feature.NameRelationship:     "Strong relationship",
}

// Tags returns up to MaxTags explanation tags: the top three features at 70+
// first, then compound pair tags, truncated at the cap
func Tags(v feature.Vector) []string {
	type fv struct {
		name string
		val  float64
	}
	ranked := make([]fv, 0, 7)
	for _, n := range feature.Names() {
		ranked = append(ranked, fv{name: n, val: v.Get(n)})
	}
	// stable sort keeps canonical order among ties for deterministic output
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].val > ranked[j].val })

	tags := make([]string, 0, MaxTags)
	seen := make(map[string]struct{}, MaxTags)
	add := func(tag string) {
		if _, dup := seen[tag]; dup {
			return
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}

	for i := 0; i < 3 && i < len(ranked); i++ {
		if ranked[i].val >= rankThreshold {
			add(rankTags[ranked[i].name])
		}
	}

	// compound tags fire on pair thresholds regardless of rank
	if v.PainPoint >= 60 && v.BusinessInterest >= 60 {
		add("Problem-aware + business-minded")
	}
	if v.LifeEvent >= 50 && v.Responsiveness >= 60 {
		add("Prime timing for outreach")
	}
	if v.Leadership >= 70 {
		add("Potential team builder")
	}

	if len(tags) > MaxTags {
		tags = tags[:MaxTags]
	}
	return tags
}
