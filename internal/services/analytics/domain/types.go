// Package domain defines the analytics event types
package domain

import "time"

// ScoreEvent is one append-only scoring fact written after a scoring run.
// Events are never updated; re-scores append a new row
type ScoreEvent struct {
	At           time.Time
	JobID        string
	UserID       string
	ProspectID   string
	Score        int
	Bucket       string
	ModelVersion int
}
