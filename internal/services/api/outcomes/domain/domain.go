// Package domain holds DTOs for the outcomes http surface
package domain

// OutcomeInput records a deal outcome against a prospect
type OutcomeInput struct {
	UserID     string `json:"user_id" validate:"required,uuid4" example:"5b2d3f1e-0000-4000-8000-000000000001"`
	ProspectID string `json:"prospect_id" validate:"required,uuid4" example:"5b2d3f1e-0000-4000-8000-000000000002"`
	Outcome    string `json:"outcome" validate:"required,oneof=won lost positive_reply no_response" example:"won"`
}

// OutcomeResult summarizes the adjusted weight model
type OutcomeResult struct {
	UserID  string             `json:"user_id"`
	Weights map[string]float64 `json:"weights"`
	Wins    int                `json:"wins"`
	Losses  int                `json:"losses"`
	WinRate float64            `json:"win_rate"`
	Version int                `json:"version"`
}
