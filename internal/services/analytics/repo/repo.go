// Package repo provides the ClickHouse analytics repository
package repo

import (
	"context"

	"prospector/internal/platform/store"
	"prospector/internal/services/analytics/domain"
)

// scoreEventsTable carries the column list so inserts stay stable when the
// table grows columns
const scoreEventsTable = "score_events (at, job_id, user_id, prospect_id, score, bucket, model_version)"

// CH writes analytics events through the platform ClickHouse seam
type CH struct {
	db store.Clickhouse
}

// NewCH constructs the ClickHouse analytics repo
func NewCH(db store.Clickhouse) *CH { return &CH{db: db} }

// WriteScoreEvents implements domain.SinkPort
func (c *CH) WriteScoreEvents(ctx context.Context, xs []domain.ScoreEvent) error {
	if len(xs) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(xs))
	for _, e := range xs {
		rows = append(rows, []any{
			e.At.UTC(),
			e.JobID,
			e.UserID,
			e.ProspectID,
			int32(e.Score),
			e.Bucket,
			int32(e.ModelVersion),
		})
	}
	return c.db.Insert(ctx, scoreEventsTable, rows)
}
