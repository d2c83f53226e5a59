// Package service implements the scan pipeline service
package service

import (
	"context"
	"time"

	"prospector/internal/core/feature"
	"prospector/internal/core/parse"
	"prospector/internal/modkit/repokit"
	perr "prospector/internal/platform/errors"
	analyticsdom "prospector/internal/services/analytics/domain"
	enrichdom "prospector/internal/services/enrich/domain"
	prospectsdom "prospector/internal/services/prospects/domain"
	"prospector/internal/services/scans/domain"
	"prospector/internal/services/scans/repo"
	weightsdom "prospector/internal/services/weights/domain"
)

// Config controls the pipeline and its worker loop
type Config struct {
	BatchSize   int
	EnrichLimit int
	Concurrency int
	LeaseBatch  int
	Tick        time.Duration
	LeaseFor    time.Duration
}

// Deps are the collaborator ports the pipeline drives
type Deps struct {
	Prospects prospectsdom.WriterPort
	Weights   weightsdom.ReaderPort
	Enricher  enrichdom.EnricherPort
	Sink      analyticsdom.SinkPort
	Extractor *feature.Extractor
}

// Svc implements domain.RunnerPort, domain.QueryPort, and domain.WorkerPort
type Svc struct {
	db      repokit.TxRunner
	binder  repokit.Binder[repo.Storage]
	storage repo.Storage

	d   Deps
	cfg Config
}

// New constructs the scans service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Storage], d Deps, cfg Config) *Svc {
	if db == nil {
		panic("scans.Svc requires a non nil TxRunner")
	}
	if d.Extractor == nil {
		panic("scans.Svc requires a feature extractor")
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 15
	}
	if cfg.EnrichLimit < 0 {
		cfg.EnrichLimit = 0
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 2
	}
	if cfg.LeaseBatch <= 0 {
		cfg.LeaseBatch = 8
	}
	if cfg.Tick <= 0 {
		cfg.Tick = time.Second
	}
	if cfg.LeaseFor <= 0 {
		cfg.LeaseFor = 5 * time.Minute
	}
	return &Svc{
		db:      db,
		binder:  binder,
		storage: binder.Bind(db),
		d:       d,
		cfg:     cfg,
	}
}

// RunScan implements domain.RunnerPort. The job id returns immediately; the
// worker loop picks the job up and drives it to a terminal state. Empty input
// is accepted here and fails the job at the extraction stage so the caller
// can query the failure
func (s *Svc) RunScan(ctx context.Context, in domain.RunInput) (string, error) {
	if in.UserID == "" {
		return "", perr.InvalidArgf("user id required")
	}
	if _, err := parse.ParseFormat(in.Format); err != nil {
		return "", err
	}

	id, err := s.storage.CreateJob(ctx, in.UserID, in.Format, in.RawInput)
	if err != nil {
		return "", err
	}
	if err := s.storage.Checkpoint(ctx, id, domain.StageQueued, 0, "scan queued"); err != nil {
		return "", err
	}
	return id, nil
}

// Job implements domain.QueryPort
func (s *Svc) Job(ctx context.Context, id string) (domain.JobView, error) {
	if id == "" {
		return domain.JobView{}, perr.InvalidArgf("job id required")
	}
	j, stages, err := s.storage.JobWithStages(ctx, id)
	if err != nil {
		return domain.JobView{}, err
	}
	return domain.JobView{Job: j, Stages: stages}, nil
}
