package service

import (
	"context"

	"prospector/internal/services/enrich/domain"
)

// Noop is the default enricher when no service is configured; it returns an
// empty insight so the pipeline stays on heuristic features without logging
// a failure per candidate
type Noop struct{}

// Enrich implements domain.EnricherPort
func (Noop) Enrich(context.Context, string) (domain.Insight, error) {
	return domain.Insight{}, nil
}
