// Package domain holds DTOs for the scores http surface
package domain

// ScoreRow is one scored prospect in a scan job
type ScoreRow struct {
	ProspectID   string   `json:"prospect_id"`
	Name         string   `json:"name"`
	Score        int      `json:"score"`
	Bucket       string   `json:"bucket"`
	Tags         []string `json:"tags"`
	ModelVersion int      `json:"model_version"`
	CalculatedAt string   `json:"calculated_at"`
}

// Tally is the per-bucket breakdown of a job
type Tally struct {
	Total int `json:"total"`
	Hot   int `json:"hot"`
	Warm  int `json:"warm"`
	Cold  int `json:"cold"`
}

// ScoresResponse lists a job's scores hot-first with its bucket tally
type ScoresResponse struct {
	JobID  string     `json:"job_id"`
	Tally  Tally      `json:"tally"`
	Scores []ScoreRow `json:"scores"`
}
