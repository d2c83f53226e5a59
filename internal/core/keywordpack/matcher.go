// Package keywordpack: Matcher compiles the pack into an Aho-Corasick
// automaton and scans normalized text for keyword hits
package keywordpack

import (
	"prospector/internal/core/normalize"
)

// Hit is a single keyword occurrence in scanned text
type Hit struct {
	Term string
	Set  Set

	// EventKey is set for SetLifeEvent hits (e.g. "new_baby")
	EventKey string
	Impact   int
}

// Hits groups scan results by set with distinct-term semantics:
// a term is counted once no matter how many times it occurs
type Hits struct {
	PainHigh    []string
	PainGeneral []string
	Business    []string
	Urgency     []string
	Leadership  []string

	// LifeEventKeys are the distinct event keys seen, in table order
	LifeEventKeys []string
}

// pattern is the metadata attached to each automaton entry
type pattern struct {
	term     string
	set      Set
	eventKey string
	impact   int
}

// Matcher scans text against the compiled keyword sets
type Matcher struct {
	pack *Pack
	ac   *acAutomaton
	pats []pattern
	norm *normalize.Normalizer
}

// NewMatcher compiles a Matcher from the pack
func NewMatcher(p *Pack) *Matcher {
	m := &Matcher{pack: p, norm: normalize.New()}

	add := func(terms []string, set Set, eventKey string, impact int) {
		for _, t := range terms {
			m.pats = append(m.pats, pattern{term: t, set: set, eventKey: eventKey, impact: impact})
		}
	}
	add(p.PainHigh, SetPainHigh, "", 0)
	add(p.PainGeneral, SetPainGeneral, "", 0)
	add(p.Business, SetBusiness, "", 0)
	add(p.Urgency, SetUrgency, "", 0)
	add(p.Leadership, SetLeadership, "", 0)
	for _, ev := range p.LifeEvents {
		add(ev.Terms, SetLifeEvent, ev.Key, ev.Impact)
	}

	ac := newAutomaton()
	for i, pt := range m.pats {
		ac.AddPattern([]byte(pt.term), i)
	}
	ac.Build()
	m.ac = ac
	return m
}

// Pack returns the underlying keyword pack
func (m *Matcher) Pack() *Pack { return m.pack }

// Scan normalizes text and returns grouped keyword hits.
// Matches inside larger word tokens are rejected (word boundary check on both ends)
func (m *Matcher) Scan(text string) Hits {
	var out Hits
	norm := m.norm.Normalize(text)
	if norm == "" {
		return out
	}

	seen := make(map[string]struct{}, 8)
	eventSeen := make(map[string]struct{}, 2)

	m.ac.FindAll([]byte(norm), func(end, id int) bool {
		pt := m.pats[id]
		start := end - len(pt.term)
		if !boundaryOK(norm, start, end) {
			return true
		}
		if pt.set == SetLifeEvent {
			eventSeen[pt.eventKey] = struct{}{}
			return true
		}
		key := string(pt.set) + "\x00" + pt.term
		if _, dup := seen[key]; dup {
			return true
		}
		seen[key] = struct{}{}
		switch pt.set {
		case SetPainHigh:
			out.PainHigh = append(out.PainHigh, pt.term)
		case SetPainGeneral:
			out.PainGeneral = append(out.PainGeneral, pt.term)
		case SetBusiness:
			out.Business = append(out.Business, pt.term)
		case SetUrgency:
			out.Urgency = append(out.Urgency, pt.term)
		case SetLeadership:
			out.Leadership = append(out.Leadership, pt.term)
		}
		return true
	})

	// event keys in table order for determinism
	for _, ev := range m.pack.LifeEvents {
		if _, ok := eventSeen[ev.Key]; ok {
			out.LifeEventKeys = append(out.LifeEventKeys, ev.Key)
		}
	}
	return out
}

// MatchLifeEvent returns the first life event row whose key or terms match s.
// First matching table row wins; no double counting within one input string
func (m *Matcher) MatchLifeEvent(s string) (LifeEvent, bool) {
	norm := m.norm.Normalize(s)
	if norm == "" {
		return LifeEvent{}, false
	}
	for _, ev := range m.pack.LifeEvents {
		if containsToken(norm, ev.Key) {
			return ev, true
		}
		for _, t := range ev.Terms {
			if containsToken(norm, t) {
				return ev, true
			}
		}
	}
	return LifeEvent{}, false
}
