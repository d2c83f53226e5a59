// Package service provides the prospects service implementation
package service

import (
	"context"

	"prospector/internal/core/feature"
	"prospector/internal/modkit/repokit"
	perr "prospector/internal/platform/errors"
	"prospector/internal/services/prospects/domain"
	"prospector/internal/services/prospects/repo"
)

// Config for the prospects service
type Config struct {
	HardLimit int
}

// Service implements domain.WriterPort and domain.QueryPort
type Service struct {
	db      repokit.TxRunner
	binder  repokit.Binder[repo.Storage]
	storage repo.Storage
	cfg     Config
}

// New constructs a new prospects service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Storage], cfg Config) *Service {
	if db == nil {
		panic("prospects.Service requires a non nil TxRunner")
	}
	if cfg.HardLimit <= 0 {
		cfg.HardLimit = 200
	}
	return &Service{db: db, binder: binder, storage: binder.Bind(db), cfg: cfg}
}

// PromoteBatch implements domain.WriterPort. Duplicate names within the
// batch collapse to the last occurrence before the upsert
func (s *Service) PromoteBatch(
	ctx context.Context,
	userID string,
	xs []domain.Promote,
) ([]domain.Prospect, error) {
	if userID == "" {
		return nil, perr.InvalidArgf("user id required")
	}
	return s.storage.PromoteBatch(ctx, userID, dedupe(xs))
}

// SaveScores implements domain.WriterPort; features and scores land in one tx
func (s *Service) SaveScores(ctx context.Context, xs []domain.ScoreRecord) error {
	if len(xs) == 0 {
		return nil
	}
	return repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
		st := s.binder.Bind(q)
		if err := st.UpsertFeatures(ctx, xs); err != nil {
			return err
		}
		return st.UpsertScores(ctx, xs)
	})
}

// ScoresByJob implements domain.QueryPort
func (s *Service) ScoresByJob(ctx context.Context, jobID string, limit int) ([]domain.ScoreRecord, error) {
	if limit <= 0 || limit > s.cfg.HardLimit {
		limit = s.cfg.HardLimit
	}
	return s.storage.ScoresByJob(ctx, jobID, limit)
}

// ScoreByProspect implements domain.QueryPort
func (s *Service) ScoreByProspect(ctx context.Context, prospectID, userID string) (domain.ScoreRecord, error) {
	return s.storage.ScoreByProspect(ctx, prospectID, userID)
}

// FeaturesFor implements domain.QueryPort
func (s *Service) FeaturesFor(ctx context.Context, prospectID, userID string) (feature.Vector, error) {
	return s.storage.FeaturesFor(ctx, prospectID, userID)
}

// TallyByJob implements domain.QueryPort
func (s *Service) TallyByJob(ctx context.Context, jobID string) (domain.Tally, error) {
	return s.storage.TallyByJob(ctx, jobID)
}

func dedupe(xs []domain.Promote) []domain.Promote {
	idx := make(map[string]int, len(xs))
	out := make([]domain.Promote, 0, len(xs))
	for _, p := range xs {
		if i, seen := idx[p.Name]; seen {
			out[i] = p
			continue
		}
		idx[p.Name] = len(out)
		out = append(out, p)
	}
	return out
}
