package domain

import (
	"context"

	"prospector/internal/core/feature"
)

// WriterPort persists prospects and their scoring snapshots
type WriterPort interface {
	PromoteBatch(ctx context.Context, userID string, xs []Promote) ([]Prospect, error)
	SaveScores(ctx context.Context, xs []ScoreRecord) error
}

// QueryPort reads prospects, feature snapshots, and score records
type QueryPort interface {
	ScoresByJob(ctx context.Context, jobID string, limit int) ([]ScoreRecord, error)
	ScoreByProspect(ctx context.Context, prospectID, userID string) (ScoreRecord, error)
	FeaturesFor(ctx context.Context, prospectID, userID string) (feature.Vector, error)
	TallyByJob(ctx context.Context, jobID string) (Tally, error)
}
