// Package repo provides the prospects repository implementation.
package repo

import (
	"context"
	stdsql "database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"prospector/internal/core/feature"
	"prospector/internal/core/score"
	"prospector/internal/modkit/repokit"
	perr "prospector/internal/platform/errors"
	"prospector/internal/services/prospects/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the prospects repository
type Storage interface {
	PromoteBatch(ctx context.Context, userID string, xs []domain.Promote) ([]domain.Prospect, error)
	UpsertFeatures(ctx context.Context, xs []domain.ScoreRecord) error
	UpsertScores(ctx context.Context, xs []domain.ScoreRecord) error
	ScoresByJob(ctx context.Context, jobID string, limit int) ([]domain.ScoreRecord, error)
	ScoreByProspect(ctx context.Context, prospectID, userID string) (domain.ScoreRecord, error)
	FeaturesFor(ctx context.Context, prospectID, userID string) (feature.Vector, error)
	TallyByJob(ctx context.Context, jobID string) (domain.Tally, error)
}

// PromoteBatch implements Storage. Callers must dedupe names within one
// batch; ON CONFLICT cannot update the same row twice in a single statement
func (s *pg) PromoteBatch(
	ctx context.Context,
	userID string,
	xs []domain.Promote,
) ([]domain.Prospect, error) {
	if len(xs) == 0 {
		return nil, nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO prospects (user_id, name, snippet, source_line) VALUES `)

	args := make([]any, 0, len(xs)*4)
	for i, p := range xs {
		if i > 0 {
			sb.WriteByte(',')
		}
		base := i*4 + 1
		fmt.Fprintf(&sb, "($%d::uuid,$%d,$%d,$%d)", base, base+1, base+2, base+3)
		args = append(args, userID, p.Name, p.Snippet, p.SourceLine)
	}
	sb.WriteString(` ON CONFLICT (user_id, name) DO UPDATE
		SET snippet = EXCLUDED.snippet,
			source_line = EXCLUDED.source_line,
			updated_at = now()
		RETURNING id::text, user_id::text, name, snippet, source_line, created_at, updated_at`)

	rows, err := s.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Prospect, 0, len(xs))
	for rows.Next() {
		var p domain.Prospect
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.Name, &p.Snippet, &p.SourceLine, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// UpsertFeatures implements Storage; latest-snapshot semantics, no history
func (s *pg) UpsertFeatures(ctx context.Context, xs []domain.ScoreRecord) error {
	if len(xs) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO feature_vectors (prospect_id, user_id, features) VALUES `)

	args := make([]any, 0, len(xs)*3)
	for i, r := range xs {
		fj, err := json.Marshal(r.Features)
		if err != nil {
			return err
		}
		if i > 0 {
			sb.WriteByte(',')
		}
		base := i*3 + 1
		fmt.Fprintf(&sb, "($%d::uuid,$%d::uuid,$%d::jsonb)", base, base+1, base+2)
		args = append(args, r.ProspectID, r.UserID, fj)
	}
	sb.WriteString(` ON CONFLICT (prospect_id, user_id) DO UPDATE
		SET features = EXCLUDED.features, updated_at = now()`)

	_, err := s.q.Exec(ctx, sb.String(), args...)
	return err
}

// UpsertScores implements Storage. Rescores carry an empty JobID; the
// original scan's job_id is preserved in that case
func (s *pg) UpsertScores(ctx context.Context, xs []domain.ScoreRecord) error {
	if len(xs) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO scout_scores
		(prospect_id, user_id, job_id, score, bucket, tags, features, weights, model_version, calculated_at) VALUES `)

	args := make([]any, 0, len(xs)*10)
	for i, r := range xs {
		fj, err := json.Marshal(r.Features)
		if err != nil {
			return err
		}
		wj, err := json.Marshal(r.Weights)
		if err != nil {
			return err
		}
		if i > 0 {
			sb.WriteByte(',')
		}
		base := i*10 + 1
		fmt.Fprintf(&sb,
			"($%d::uuid,$%d::uuid,NULLIF($%d,'')::uuid,$%d,$%d::bucket_enum,$%d,$%d::jsonb,$%d::jsonb,$%d,$%d)",
			base, base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9)
		args = append(args,
			r.ProspectID, r.UserID, r.JobID, r.Score, r.Bucket,
			r.Tags, fj, wj, r.ModelVersion, r.CalculatedAt,
		)
	}
	sb.WriteString(` ON CONFLICT (prospect_id, user_id) DO UPDATE
		SET job_id = COALESCE(EXCLUDED.job_id, scout_scores.job_id),
			score = EXCLUDED.score,
			bucket = EXCLUDED.bucket,
			tags = EXCLUDED.tags,
			features = EXCLUDED.features,
			weights = EXCLUDED.weights,
			model_version = EXCLUDED.model_version,
			calculated_at = EXCLUDED.calculated_at`)

	_, err := s.q.Exec(ctx, sb.String(), args...)
	return err
}

const scoreCols = `
	s.prospect_id::text, s.user_id::text, COALESCE(s.job_id::text, ''), p.name,
	s.score, s.bucket::text, s.tags, s.features, s.weights, s.model_version, s.calculated_at`

func scanScore(rows repokit.Rows) (domain.ScoreRecord, error) {
	var (
		r      domain.ScoreRecord
		fj, wj []byte
	)
	if err := rows.Scan(
		&r.ProspectID, &r.UserID, &r.JobID, &r.Name,
		&r.Score, &r.Bucket, &r.Tags, &fj, &wj, &r.ModelVersion, &r.CalculatedAt,
	); err != nil {
		return domain.ScoreRecord{}, err
	}
	if err := json.Unmarshal(fj, &r.Features); err != nil {
		return domain.ScoreRecord{}, err
	}
	r.Weights = score.Weights{}
	if err := json.Unmarshal(wj, &r.Weights); err != nil {
		return domain.ScoreRecord{}, err
	}
	return r, nil
}

// ScoresByJob implements Storage
func (s *pg) ScoresByJob(ctx context.Context, jobID string, limit int) ([]domain.ScoreRecord, error) {
	rows, err := s.q.Query(ctx, `
		SELECT `+scoreCols+`
		FROM scout_scores s
		JOIN prospects p ON p.id = s.prospect_id
		WHERE s.job_id = $1::uuid
		ORDER BY s.score DESC, p.name ASC
		LIMIT $2`, jobID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.ScoreRecord, 0, limit)
	for rows.Next() {
		r, err := scanScore(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ScoreByProspect implements Storage
func (s *pg) ScoreByProspect(ctx context.Context, prospectID, userID string) (domain.ScoreRecord, error) {
	rows, err := s.q.Query(ctx, `
		SELECT `+scoreCols+`
		FROM scout_scores s
		JOIN prospects p ON p.id = s.prospect_id
		WHERE s.prospect_id = $1::uuid AND s.user_id = $2::uuid`, prospectID, userID)
	if err != nil {
		return domain.ScoreRecord{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return domain.ScoreRecord{}, err
		}
		return domain.ScoreRecord{}, perr.NotFoundf("no score for prospect %s", prospectID)
	}
	return scanScore(rows)
}

// FeaturesFor implements Storage
func (s *pg) FeaturesFor(ctx context.Context, prospectID, userID string) (feature.Vector, error) {
	var fj []byte
	err := s.q.QueryRow(ctx, `
		SELECT features FROM feature_vectors
		WHERE prospect_id = $1::uuid AND user_id = $2::uuid`, prospectID, userID).Scan(&fj)
	if err != nil {
		if errors.Is(err, stdsql.ErrNoRows) {
			return feature.Vector{}, perr.NotFoundf("no feature vector for prospect %s", prospectID)
		}
		return feature.Vector{}, err
	}
	var v feature.Vector
	if err := json.Unmarshal(fj, &v); err != nil {
		return feature.Vector{}, err
	}
	return v, nil
}

// TallyByJob implements Storage
func (s *pg) TallyByJob(ctx context.Context, jobID string) (domain.Tally, error) {
	var t domain.Tally
	err := s.q.QueryRow(ctx, `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE bucket = 'hot'),
			COUNT(*) FILTER (WHERE bucket = 'warm'),
			COUNT(*) FILTER (WHERE bucket = 'cold')
		FROM scout_scores WHERE job_id = $1::uuid`, jobID).
		Scan(&t.Total, &t.Hot, &t.Warm, &t.Cold)
	return t, err
}
