// Package repo provides the weights repository implementation.
package repo

import (
	"context"
	stdsql "database/sql"
	"encoding/json"
	"errors"

	"prospector/internal/core/score"
	"prospector/internal/modkit/repokit"
	perr "prospector/internal/platform/errors"
	"prospector/internal/services/weights/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the weights repository
type Storage interface {
	Get(ctx context.Context, userID string) (domain.Model, error)
	InsertDefaults(ctx context.Context, userID string, w score.Weights) error
	UpdateCAS(ctx context.Context, m domain.Model) (bool, error)
}

// Get implements Storage; not-found maps to perr.ErrorCodeNotFound
func (s *pg) Get(ctx context.Context, userID string) (domain.Model, error) {
	var (
		m  domain.Model
		wj []byte
	)
	err := s.q.QueryRow(ctx, `
		SELECT user_id::text, weights, wins, losses, version, updated_at
		FROM scout_weights WHERE user_id = $1::uuid`, userID).
		Scan(&m.UserID, &wj, &m.Wins, &m.Losses, &m.Version, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, stdsql.ErrNoRows) {
			return domain.Model{}, perr.NotFoundf("no weights for user %s", userID)
		}
		return domain.Model{}, err
	}
	m.Weights = score.Weights{}
	if err := json.Unmarshal(wj, &m.Weights); err != nil {
		return domain.Model{}, err
	}
	return m, nil
}

// InsertDefaults implements Storage; a concurrent bootstrap wins silently
func (s *pg) InsertDefaults(ctx context.Context, userID string, w score.Weights) error {
	wj, err := json.Marshal(w)
	if err != nil {
		return err
	}
	_, err = s.q.Exec(ctx, `
		INSERT INTO scout_weights (user_id, weights, wins, losses, version)
		VALUES ($1::uuid, $2::jsonb, 0, 0, 1)
		ON CONFLICT (user_id) DO NOTHING`, userID, wj)
	return err
}

// UpdateCAS implements Storage. The write lands only when the stored version
// still matches m.Version; false means a concurrent adjust got there first
func (s *pg) UpdateCAS(ctx context.Context, m domain.Model) (bool, error) {
	wj, err := json.Marshal(m.Weights)
	if err != nil {
		return false, err
	}
	tag, err := s.q.Exec(ctx, `
		UPDATE scout_weights
		SET weights = $2::jsonb,
			wins = $3,
			losses = $4,
			version = version + 1,
			updated_at = now()
		WHERE user_id = $1::uuid AND version = $5`,
		m.UserID, wj, m.Wins, m.Losses, m.Version)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
