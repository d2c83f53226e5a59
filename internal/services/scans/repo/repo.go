// Package repo provides the scans repository implementation.
package repo

import (
	"context"
	stdsql "database/sql"
	"errors"
	"time"

	"prospector/internal/modkit/repokit"
	perr "prospector/internal/platform/errors"
	"prospector/internal/services/scans/domain"

	"github.com/google/uuid"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the scans repository
type Storage interface {
	CreateJob(ctx context.Context, userID, format, raw string) (string, error)
	Checkpoint(ctx context.Context, jobID string, stage domain.Stage, percent int, message string) error
	MarkFailed(ctx context.Context, jobID string) error
	CompleteJob(ctx context.Context, jobID string, total, hot, warm, cold int) error
	LeaseQueued(ctx context.Context, workerID string, limit int, leaseFor time.Duration) ([]domain.LeasedJob, error)
	JobWithStages(ctx context.Context, id string) (domain.Job, []domain.StageRow, error)
}

// CreateJob implements Storage
func (s *pg) CreateJob(ctx context.Context, userID, format, raw string) (string, error) {
	var id string
	err := s.q.QueryRow(ctx, `
		INSERT INTO scan_jobs (user_id, format, raw_input, status)
		VALUES ($1::uuid, $2, $3, 'queued')
		RETURNING id::text`, userID, format, raw).Scan(&id)
	return id, err
}

// Checkpoint implements Storage; stage history is append-only
func (s *pg) Checkpoint(
	ctx context.Context,
	jobID string,
	stage domain.Stage,
	percent int,
	message string,
) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO scan_stages (job_id, stage, percent, message)
		VALUES ($1::uuid, $2::scan_stage_enum, $3, $4)`,
		jobID, string(stage), percent, message)
	return err
}

// MarkFailed implements Storage; clears the lease so the row is inert
func (s *pg) MarkFailed(ctx context.Context, jobID string) error {
	_, err := s.q.Exec(ctx, `
		UPDATE scan_jobs
		SET status = 'failed', leased_by = NULL, lease_expires_at = NULL, updated_at = now()
		WHERE id = $1::uuid`, jobID)
	return err
}

// CompleteJob implements Storage
func (s *pg) CompleteJob(ctx context.Context, jobID string, total, hot, warm, cold int) error {
	_, err := s.q.Exec(ctx, `
		UPDATE scan_jobs
		SET status = 'completed',
			total = $2, hot = $3, warm = $4, cold = $5,
			leased_by = NULL, lease_expires_at = NULL, updated_at = now()
		WHERE id = $1::uuid`, jobID, total, hot, warm, cold)
	return err
}

// LeaseQueued implements Storage; claims up to limit runnable jobs with
// SKIP LOCKED so concurrent workers never double-process one job.
// Processing rows whose lease has expired are reclaimed, so a worker
// crash never strands a job in a non-terminal state
func (s *pg) LeaseQueued(
	ctx context.Context,
	workerID string,
	limit int,
	leaseFor time.Duration,
) ([]domain.LeasedJob, error) {
	if workerID == "" {
		workerID = uuid.NewString()
	}
	rows, err := s.q.Query(ctx, `
		WITH ready AS (
			SELECT id
			  FROM scan_jobs
			 WHERE (status = 'queued'
			    OR (status = 'processing' AND lease_expires_at <= now()))
			 ORDER BY created_at ASC
			 LIMIT $1
			 FOR UPDATE SKIP LOCKED
		), upd AS (
			UPDATE scan_jobs j
			   SET status = 'processing',
			       leased_by = $2,
			       lease_expires_at = now() + $3::interval,
			       updated_at = now()
			 WHERE j.id IN (SELECT id FROM ready)
			RETURNING j.id, j.user_id, j.format, j.raw_input
		)
		SELECT id::text, user_id::text, format, raw_input FROM upd`,
		limit, workerID, leaseFor.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.LeasedJob
	for rows.Next() {
		var j domain.LeasedJob
		if err := rows.Scan(&j.ID, &j.UserID, &j.Format, &j.RawInput); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

// JobWithStages implements Storage
func (s *pg) JobWithStages(ctx context.Context, id string) (domain.Job, []domain.StageRow, error) {
	var (
		j      domain.Job
		status string
	)
	err := s.q.QueryRow(ctx, `
		SELECT id::text, user_id::text, status::text, format,
			total, hot, warm, cold, created_at, updated_at
		FROM scan_jobs WHERE id = $1::uuid`, id).Scan(
		&j.ID, &j.UserID, &status, &j.Format,
		&j.Total, &j.Hot, &j.Warm, &j.Cold, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		if errors.Is(err, stdsql.ErrNoRows) {
			return domain.Job{}, nil, perr.NotFoundf("scan job %s not found", id)
		}
		return domain.Job{}, nil, err
	}
	j.Status = domain.Status(status)

	rows, err := s.q.Query(ctx, `
		SELECT stage::text, percent, message, created_at
		FROM scan_stages WHERE job_id = $1::uuid
		ORDER BY id ASC`, id)
	if err != nil {
		return domain.Job{}, nil, err
	}
	defer rows.Close()

	var stages []domain.StageRow
	for rows.Next() {
		var (
			st    domain.StageRow
			stage string
		)
		if err := rows.Scan(&stage, &st.Percent, &st.Message, &st.At); err != nil {
			return domain.Job{}, nil, err
		}
		st.Stage = domain.Stage(stage)
		stages = append(stages, st)
	}
	return j, stages, rows.Err()
}
