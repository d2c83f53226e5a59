// Package domain defines the types and interfaces for the scans service
package domain

import "time"

// Status is the terminal-state machine of a scan job
type Status string

// Job statuses
const (
	StatusQueued     Status = "queued"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Stage names a pipeline phase in the checkpoint history
type Stage string

// Pipeline stages in execution order; failed absorbs from any of them
const (
	StageQueued     Stage = "queued"
	StageExtracting Stage = "extracting"
	StageDetecting  Stage = "detecting"
	StageScoring    Stage = "scoring"
	StageSaving     Stage = "saving"
	StageCompleted  Stage = "completed"
	StageFailed     Stage = "failed"
)

// RunInput starts a scan
type RunInput struct {
	UserID   string
	RawInput string
	Format   string
}

// Job is a scan job row
type Job struct {
	ID        string // uuid
	UserID    string // uuid
	Status    Status
	Format    string
	Total     int
	Hot       int
	Warm      int
	Cold      int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StageRow is one append-only checkpoint. Percent is monotonically
// non-decreasing within a successful run
type StageRow struct {
	Stage   Stage
	Percent int
	Message string
	At      time.Time
}

// JobView is a job with its full checkpoint history
type JobView struct {
	Job    Job
	Stages []StageRow
}

// LeasedJob is the worker's view of a claimed queued job
type LeasedJob struct {
	ID       string
	UserID   string
	Format   string
	RawInput string
}
