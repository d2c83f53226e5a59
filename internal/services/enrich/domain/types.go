// Package domain defines the enrichment capability contract
package domain

// Insight is the structured understanding of one snippet returned by an
// external text-understanding service
type Insight struct {
	PainPoints []string `json:"pain_points"`
	Interests  []string `json:"interests"`
	LifeEvents []string `json:"life_events"`
	Sentiment  float64  `json:"sentiment"` // [-1,1]
}

// Empty reports whether the insight carries no signal
func (i Insight) Empty() bool {
	return len(i.PainPoints) == 0 && len(i.Interests) == 0 &&
		len(i.LifeEvents) == 0 && i.Sentiment == 0
}
