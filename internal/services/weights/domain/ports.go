package domain

import "context"

// ReaderPort reads a user's weight model, bootstrapping defaults on first use
type ReaderPort interface {
	Get(ctx context.Context, userID string) (Model, error)
}

// AdjusterPort applies an outcome to a user's weights and rescores the prospect
type AdjusterPort interface {
	Adjust(ctx context.Context, userID, prospectID string, o Outcome) (Model, error)
}
