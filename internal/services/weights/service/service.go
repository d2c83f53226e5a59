// Package service implements the weight adaptation service
package service

import (
	"context"
	"time"

	"prospector/internal/core/explain"
	"prospector/internal/core/feature"
	"prospector/internal/core/score"
	"prospector/internal/modkit/repokit"
	perr "prospector/internal/platform/errors"
	"prospector/internal/platform/logger"
	prospectsdom "prospector/internal/services/prospects/domain"
	"prospector/internal/services/weights/domain"
	"prospector/internal/services/weights/repo"
)

// adaptThreshold is the feature value above which an outcome moves that
// feature's weight
const adaptThreshold = 70

// Config for the weights service
type Config struct {
	MaxRetries int
}

// Service implements domain.ReaderPort and domain.AdjusterPort
type Service struct {
	db        repokit.TxRunner
	binder    repokit.Binder[repo.Storage]
	storage   repo.Storage
	prospects prospectsdom.QueryPort
	scores    prospectsdom.WriterPort
	cfg       Config
}

// New constructs a new weights service
func New(
	db repokit.TxRunner,
	binder repokit.Binder[repo.Storage],
	prospects prospectsdom.QueryPort,
	scores prospectsdom.WriterPort,
	cfg Config,
) *Service {
	if db == nil {
		panic("weights.Service requires a non nil TxRunner")
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 5
	}
	return &Service{
		db:        db,
		binder:    binder,
		storage:   binder.Bind(db),
		prospects: prospects,
		scores:    scores,
		cfg:       cfg,
	}
}

// Get implements domain.ReaderPort; first use bootstraps the default
// distribution so scoring never sees a missing row
func (s *Service) Get(ctx context.Context, userID string) (domain.Model, error) {
	m, err := s.storage.Get(ctx, userID)
	if err == nil {
		return m, nil
	}
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		return domain.Model{}, err
	}
	if err := s.storage.InsertDefaults(ctx, userID, score.DefaultWeights()); err != nil {
		return domain.Model{}, err
	}
	return s.storage.Get(ctx, userID)
}

// Adjust implements domain.AdjusterPort. Repeated calls with the same
// outcome keep compounding; this is an online-learning step, not an upsert.
// Concurrent adjusts for one user serialize through the version column
func (s *Service) Adjust(
	ctx context.Context,
	userID, prospectID string,
	o domain.Outcome,
) (domain.Model, error) {
	fv, err := s.prospects.FeaturesFor(ctx, prospectID, userID)
	if err != nil {
		return domain.Model{}, err
	}

	boost, penalty := o.Rates()

	var next domain.Model
	for attempt := 0; attempt < s.cfg.MaxRetries; attempt++ {
		m, err := s.Get(ctx, userID)
		if err != nil {
			return domain.Model{}, err
		}

		w := m.Weights.Clone()
		for _, n := range feature.Names() {
			if fv.Get(n) <= adaptThreshold {
				continue
			}
			if boost > 0 {
				w[n] *= 1 + boost
			} else {
				w[n] *= 1 - penalty
			}
		}
		m.Weights = w.Normalize()

		switch o {
		case domain.OutcomeWon:
			m.Wins++
		case domain.OutcomeLost:
			m.Losses++
		}

		ok, err := s.storage.UpdateCAS(ctx, m)
		if err != nil {
			return domain.Model{}, err
		}
		if ok {
			m.Version++
			next = m
			break
		}
		if attempt == s.cfg.MaxRetries-1 {
			return domain.Model{}, perr.Conflictf("weight adjustment contention for user %s", userID)
		}
	}

	if err := s.rescore(ctx, userID, prospectID, fv, next.Weights); err != nil {
		return domain.Model{}, err
	}
	return next, nil
}

// rescore refreshes the prospect's score record with the adjusted weights
func (s *Service) rescore(
	ctx context.Context,
	userID, prospectID string,
	fv feature.Vector,
	w score.Weights,
) error {
	res, err := score.Compute(fv, w)
	if err != nil {
		return err
	}
	rec := prospectsdom.ScoreRecord{
		ProspectID:   prospectID,
		UserID:       userID,
		Score:        res.Score,
		Bucket:       string(res.Bucket),
		Tags:         explain.Tags(fv),
		Features:     fv,
		Weights:      w,
		ModelVersion: score.ModelVersion,
		CalculatedAt: time.Now().UTC(),
	}
	if err := s.scores.SaveScores(ctx, []prospectsdom.ScoreRecord{rec}); err != nil {
		return err
	}
	logger.Named("weights").Debug().
		Str("user_id", userID).
		Str("prospect_id", prospectID).
		Int("score", res.Score).
		Str("bucket", string(res.Bucket)).
		Msg("prospect rescored after weight adjustment")
	return nil
}
