package service

import (
	"context"
	"sync"
	"time"

	"prospector/internal/platform/logger"
	"prospector/internal/services/scans/domain"

	"github.com/google/uuid"
)

// Run implements domain.WorkerPort. It polls for queued jobs on a ticker and
// processes leased batches with bounded concurrency until ctx is canceled
func (s *Svc) Run(ctx context.Context) error {
	workerID := uuid.NewString()
	log := logger.Named("scan-worker").With().Str("worker_id", workerID).Logger()
	log.Info().
		Dur("tick", s.cfg.Tick).
		Int("lease_batch", s.cfg.LeaseBatch).
		Int("concurrency", s.cfg.Concurrency).
		Msg("scan worker started")

	ticker := time.NewTicker(s.cfg.Tick)
	defer ticker.Stop()

	sem := make(chan struct{}, s.cfg.Concurrency)
	var wg sync.WaitGroup

	for {
		select {
		case <-ctx.Done():
			wg.Wait()
			log.Info().Msg("scan worker stopped")
			return ctx.Err()
		case <-ticker.C:
		}

		jobs, err := s.storage.LeaseQueued(ctx, workerID, s.cfg.LeaseBatch, s.cfg.LeaseFor)
		if err != nil {
			log.Error().Err(err).Msg("lease queued scans")
			continue
		}
		for _, j := range jobs {
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				wg.Wait()
				return ctx.Err()
			}
			wg.Add(1)
			go func(j domain.LeasedJob) {
				defer wg.Done()
				defer func() { <-sem }()
				if err := s.process(ctx, j); err != nil {
					log.Error().Err(err).Str("job_id", j.ID).Msg("scan processing error")
				}
			}(j)
		}
	}
}

// DrainOnce implements domain.WorkerPort. It leases one batch and processes
// it synchronously, returning the number of jobs handled. Used by the CLI
func (s *Svc) DrainOnce(ctx context.Context) (int, error) {
	jobs, err := s.storage.LeaseQueued(ctx, uuid.NewString(), s.cfg.LeaseBatch, s.cfg.LeaseFor)
	if err != nil {
		return 0, err
	}
	for _, j := range jobs {
		if err := s.process(ctx, j); err != nil {
			return 0, err
		}
	}
	return len(jobs), nil
}
