// Package http provides http transport for scans
package http

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"prospector/internal/modkit/httpkit"
	"prospector/internal/services/api/scans/domain"
	scansdom "prospector/internal/services/scans/domain"
)

// Deps are the injected worker ports
type Deps struct {
	Runner scansdom.RunnerPort
	Query  scansdom.QueryPort
}

// Register mounts scan endpoints on the given router
func Register(r httpkit.Router, d Deps) {
	h := &handlers{d: d}
	httpkit.PostJSON[domain.RunScanInput](r, "/", h.run)
	httpkit.Get(r, "/{id}", h.job)
}

type handlers struct{ d Deps }

// swagger:route POST /scans Scans runScan
// @Summary Queue a prospect scan over raw text or CSV
// @Tags Scans
// @Accept json
// @Produce json
// @Param payload body domain.RunScanInput true "Scan request"
// @Success 200 {object} domain.RunScanOutput "accepted"
// @Router /scans [post]
func (h *handlers) run(r *stdhttp.Request, in domain.RunScanInput) (any, error) {
	id, err := h.d.Runner.RunScan(r.Context(), scansdom.RunInput{
		UserID:   in.UserID,
		RawInput: in.Input,
		Format:   in.Format,
	})
	if err != nil {
		return nil, err
	}
	return domain.RunScanOutput{JobID: id}, nil
}

// swagger:route GET /scans/{id} Scans scanJob
// @Summary Scan job status with checkpoint history
// @Tags Scans
// @Produce json
// @Param id path string true "Job id"
// @Success 200 {object} domain.JobResponse "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /scans/{id} [get]
func (h *handlers) job(r *stdhttp.Request) (any, error) {
	v, err := h.d.Query.Job(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return nil, err
	}
	return toJobResponse(v), nil
}

func toJobResponse(v scansdom.JobView) domain.JobResponse {
	out := domain.JobResponse{
		ID:        v.Job.ID,
		UserID:    v.Job.UserID,
		Status:    string(v.Job.Status),
		Format:    v.Job.Format,
		Total:     v.Job.Total,
		Hot:       v.Job.Hot,
		Warm:      v.Job.Warm,
		Cold:      v.Job.Cold,
		CreatedAt: v.Job.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: v.Job.UpdatedAt.UTC().Format(time.RFC3339),
		Stages:    make([]domain.StageEntry, 0, len(v.Stages)),
	}
	for _, st := range v.Stages {
		out.Stages = append(out.Stages, domain.StageEntry{
			Stage:   string(st.Stage),
			Percent: st.Percent,
			Message: st.Message,
			At:      st.At.UTC().Format(time.RFC3339),
		})
	}
	return out
}
