// Package domain holds DTOs for the scans http surface
package domain

// RunScanInput starts a scan job. Input is deliberately not required; an
// empty payload produces a failed job the caller can inspect
type RunScanInput struct {
	UserID string `json:"user_id" validate:"required,uuid4" example:"5b2d3f1e-0000-4000-8000-000000000001"`
	Input  string `json:"input" example:"Maria Santos - kailangan ng extra income"`
	Format string `json:"format" validate:"required,oneof=text csv" example:"text"`
}

// RunScanOutput acknowledges an accepted scan
type RunScanOutput struct {
	JobID string `json:"job_id"`
}

// StageEntry is one checkpoint in the job history
type StageEntry struct {
	Stage   string `json:"stage"`
	Percent int    `json:"percent"`
	Message string `json:"message"`
	At      string `json:"at"`
}

// JobResponse is the full job view with checkpoint history
type JobResponse struct {
	ID        string       `json:"id"`
	UserID    string       `json:"user_id"`
	Status    string       `json:"status"`
	Format    string       `json:"format"`
	Total     int          `json:"total"`
	Hot       int          `json:"hot"`
	Warm      int          `json:"warm"`
	Cold      int          `json:"cold"`
	CreatedAt string       `json:"created_at"`
	UpdatedAt string       `json:"updated_at"`
	Stages    []StageEntry `json:"stages"`
}
