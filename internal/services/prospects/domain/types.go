// Package domain defines the types and interfaces for the prospects service
package domain

import (
	"time"

	"prospector/internal/core/feature"
	"prospector/internal/core/score"
)

// Promote is a parsed candidate being promoted to a durable prospect row
type Promote struct {
	Name       string
	Snippet    string
	SourceLine int
}

// Prospect is a stored prospect row, unique per (user, name)
type Prospect struct {
	ID         string // uuid
	UserID     string // uuid
	Name       string
	Snippet    string
	SourceLine int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ScoreRecord is the durable output of one scoring run for one prospect.
// Re-scoring overwrites the prior record for the same (prospect, user);
// JobID is kept from the original scan when a rescore leaves it empty
type ScoreRecord struct {
	ProspectID   string
	UserID       string
	JobID        string
	Name         string
	Score        int
	Bucket       string
	Tags         []string
	Features     feature.Vector
	Weights      score.Weights
	ModelVersion int
	CalculatedAt time.Time
}

// Tally aggregates bucket counts for one scan job
type Tally struct {
	Total int
	Hot   int
	Warm  int
	Cold  int
}
