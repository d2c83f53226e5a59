package domain

import "context"

// SinkPort writes scoring facts to the analytics store
type SinkPort interface {
	WriteScoreEvents(ctx context.Context, xs []ScoreEvent) error
}
