// Package http provides http transport for scores
package http

import (
	stdhttp "net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"prospector/internal/modkit/httpkit"
	"prospector/internal/services/api/scores/domain"
	prospectsdom "prospector/internal/services/prospects/domain"
)

// Register mounts score endpoints on the given router
func Register(r httpkit.Router, q prospectsdom.QueryPort) {
	h := &handlers{q: q}
	httpkit.Get(r, "/{jobID}", h.byJob)
}

type handlers struct{ q prospectsdom.QueryPort }

// swagger:route GET /scores/{jobID} Scores scoresByJob
// @Summary Scored prospects for a scan job, hot first
// @Tags Scores
// @Produce json
// @Param jobID path string true "Scan job id"
// @Param limit query int false "Max rows"
// @Success 200 {object} domain.ScoresResponse "ok"
// @Router /scores/{jobID} [get]
func (h *handlers) byJob(r *stdhttp.Request) (any, error) {
	jobID := chi.URLParam(r, "jobID")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	records, err := h.q.ScoresByJob(r.Context(), jobID, limit)
	if err != nil {
		return nil, err
	}
	tally, err := h.q.TallyByJob(r.Context(), jobID)
	if err != nil {
		return nil, err
	}

	out := domain.ScoresResponse{
		JobID: jobID,
		Tally: domain.Tally{
			Total: tally.Total,
			Hot:   tally.Hot,
			Warm:  tally.Warm,
			Cold:  tally.Cold,
		},
		Scores: make([]domain.ScoreRow, 0, len(records)),
	}
	for _, rec := range records {
		out.Scores = append(out.Scores, domain.ScoreRow{
			ProspectID:   rec.ProspectID,
			Name:         rec.Name,
			Score:        rec.Score,
			Bucket:       rec.Bucket,
			Tags:         rec.Tags,
			ModelVersion: rec.ModelVersion,
			CalculatedAt: rec.CalculatedAt.UTC().Format(time.RFC3339),
		})
	}
	return out, nil
}
