// Package service provides the analytics sink service
package service

import (
	"context"

	"prospector/internal/platform/store"
	"prospector/internal/services/analytics/domain"
	"prospector/internal/services/analytics/repo"
)

// Service implements domain.SinkPort; nil-safe when ClickHouse is disabled
type Service struct {
	sink domain.SinkPort
}

// New constructs the analytics service; a nil seam yields a silent no-op
func New(db store.Clickhouse) *Service {
	s := &Service{}
	if db != nil {
		s.sink = repo.NewCH(db)
	}
	return s
}

// WriteScoreEvents implements domain.SinkPort
func (s *Service) WriteScoreEvents(ctx context.Context, xs []domain.ScoreEvent) error {
	if s == nil || s.sink == nil {
		return nil
	}
	return s.sink.WriteScoreEvents(ctx, xs)
}
