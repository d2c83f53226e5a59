// Package keywordpack loads and compiles the signal keyword sets from the
// embedded keywords.json. Sets are versioned data, not code, so scoring
// behavior can be audited and evolved without touching the extractor
package keywordpack

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

//go:embed keywords.json
var embedded []byte

type rawPainBlock struct {
	HighValue []string `json:"high_value"`
	General   []string `json:"general"`
}

type rawLifeEvent struct {
	Key    string   `json:"key"`
	Impact int      `json:"impact"`
	Terms  []string `json:"terms"`
}

type rawColumns struct {
	Name    []string `json:"name"`
	Context []string `json:"context"`
}

type rawPack struct {
	Version         int            `json:"version"`
	Meta            map[string]any `json:"meta"`
	PainPoints      rawPainBlock   `json:"pain_points"`
	BusinessTerms   []string       `json:"business_terms"`
	UrgencyTerms    []string       `json:"urgency_terms"`
	LeadershipTerms []string       `json:"leadership_terms"`
	LifeEvents      []rawLifeEvent `json:"life_events"`
	CSVColumns      rawColumns     `json:"csv_columns"`
}

// Set identifies which keyword set a term belongs to
type Set string

// Keyword sets compiled into the matcher
const (
	SetPainHigh    Set = "pain_high"
	SetPainGeneral Set = "pain_general"
	SetBusiness    Set = "business"
	SetUrgency     Set = "urgency"
	SetLeadership  Set = "leadership"
	SetLifeEvent   Set = "life_event"
)

// LifeEvent is one row of the life event impact table
type LifeEvent struct {
	Key    string
	Impact int
	Terms  []string
}

// Pack is the compiled keyword pack
type Pack struct {
	Version int
	Meta    map[string]any

	PainHigh    []string
	PainGeneral []string
	Business    []string
	Urgency     []string
	Leadership  []string

	// LifeEvents preserves table order; first matching key wins per input string
	LifeEvents []LifeEvent

	// ImpactByKey indexes LifeEvents for direct key lookups
	ImpactByKey map[string]int

	// CSV header aliases for the parser
	NameColumns    []string
	ContextColumns []string
}

// Load returns the compiled pack from the embedded keywords.json
func Load() (*Pack, error) {
	var rp rawPack
	if err := json.Unmarshal(embedded, &rp); err != nil {
		return nil, fmt.Errorf("keywordpack: parse keywords.json: %w", err)
	}
	if rp.Version != 1 {
		return nil, fmt.Errorf("keywordpack: unsupported keywords.json version %d (want 1)", rp.Version)
	}

	p := &Pack{
		Version:        rp.Version,
		Meta:           rp.Meta,
		PainHigh:       cleanSet(rp.PainPoints.HighValue),
		PainGeneral:    cleanSet(rp.PainPoints.General),
		Business:       cleanSet(rp.BusinessTerms),
		Urgency:        cleanSet(rp.UrgencyTerms),
		Leadership:     cleanSet(rp.LeadershipTerms),
		ImpactByKey:    make(map[string]int, len(rp.LifeEvents)),
		NameColumns:    cleanSet(rp.CSVColumns.Name),
		ContextColumns: cleanSet(rp.CSVColumns.Context),
	}

	for _, ev := range rp.LifeEvents {
		key := strings.ToLower(strings.TrimSpace(ev.Key))
		if key == "" || ev.Impact <= 0 {
			return nil, fmt.Errorf("keywordpack: malformed life event row %q", ev.Key)
		}
		p.LifeEvents = append(p.LifeEvents, LifeEvent{
			Key:    key,
			Impact: ev.Impact,
			Terms:  cleanSet(ev.Terms),
		})
		p.ImpactByKey[key] = ev.Impact
	}

	if len(p.PainHigh) == 0 || len(p.Business) == 0 || len(p.Urgency) == 0 {
		return nil, fmt.Errorf("keywordpack: required sets are empty")
	}
	return p, nil
}

// cleanSet lowercases, trims, dedupes, and sorts for deterministic iteration
func cleanSet(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
