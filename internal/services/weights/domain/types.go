// Package domain defines the types and interfaces for the weights service
package domain

import (
	"time"

	"prospector/internal/core/score"
	perr "prospector/internal/platform/errors"
)

// Outcome is a feedback signal for a previously scored prospect
type Outcome string

// Supported outcomes
const (
	OutcomeWon           Outcome = "won"
	OutcomeLost          Outcome = "lost"
	OutcomePositiveReply Outcome = "positive_reply"
	OutcomeNoResponse    Outcome = "no_response"
)

// ParseOutcome validates a wire outcome string
func ParseOutcome(s string) (Outcome, error) {
	switch Outcome(s) {
	case OutcomeWon, OutcomeLost, OutcomePositiveReply, OutcomeNoResponse:
		return Outcome(s), nil
	}
	return "", perr.InvalidArgf("unknown outcome %q", s)
}

// Rates returns the multiplicative boost and penalty for an outcome.
// Exactly one of the two is non-zero
func (o Outcome) Rates() (boost, penalty float64) {
	switch o {
	case OutcomeWon:
		return 0.05, 0
	case OutcomePositiveReply:
		return 0.02, 0
	case OutcomeLost:
		return 0, 0.03
	case OutcomeNoResponse:
		return 0, 0.01
	}
	return 0, 0
}

// Model is a user's stored weight vector with its outcome counters.
// Version is the optimistic-concurrency token; every persisted adjustment
// bumps it by one
type Model struct {
	UserID    string
	Weights   score.Weights
	Wins      int
	Losses    int
	Version   int
	UpdatedAt time.Time
}

// WinRate is wins/(wins+losses); 0 when no outcome has been recorded yet
func (m Model) WinRate() float64 {
	total := m.Wins + m.Losses
	if total == 0 {
		return 0
	}
	return float64(m.Wins) / float64(total)
}
