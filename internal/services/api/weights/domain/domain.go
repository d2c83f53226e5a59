// Package domain holds DTOs for the weights http surface
package domain

// WeightsResponse is a user's current scoring model
type WeightsResponse struct {
	UserID    string             `json:"user_id"`
	Weights   map[string]float64 `json:"weights"`
	Wins      int                `json:"wins"`
	Losses    int                `json:"losses"`
	WinRate   float64            `json:"win_rate"`
	Version   int                `json:"version"`
	UpdatedAt string             `json:"updated_at"`
}
