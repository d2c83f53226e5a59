package domain

import "context"

// EnricherPort augments a short text with structured insight. Implementations
// must be safe to fail; callers degrade to heuristic-only features on error
type EnricherPort interface {
	Enrich(ctx context.Context, text string) (Insight, error)
}
