// Package http provides http transport for outcomes
package http

import (
	stdhttp "net/http"

	"prospector/internal/modkit/httpkit"
	"prospector/internal/services/api/outcomes/domain"
	weightsdom "prospector/internal/services/weights/domain"
)

// Register mounts the outcome endpoint on the given router
func Register(r httpkit.Router, adjuster weightsdom.AdjusterPort) {
	h := &handlers{adjuster: adjuster}
	httpkit.PostJSON[domain.OutcomeInput](r, "/", h.record)
}

type handlers struct{ adjuster weightsdom.AdjusterPort }

// swagger:route POST /outcomes Outcomes recordOutcome
// @Summary Record a deal outcome and adjust the user's scoring weights
// @Tags Outcomes
// @Accept json
// @Produce json
// @Param payload body domain.OutcomeInput true "Outcome"
// @Success 200 {object} domain.OutcomeResult "adjusted model"
// @Failure 404 {object} httpkit.Envelope "prospect not found"
// @Failure 409 {object} httpkit.Envelope "concurrent adjustment"
// @Router /outcomes [post]
func (h *handlers) record(r *stdhttp.Request, in domain.OutcomeInput) (any, error) {
	outcome, err := weightsdom.ParseOutcome(in.Outcome)
	if err != nil {
		return nil, err
	}
	m, err := h.adjuster.Adjust(r.Context(), in.UserID, in.ProspectID, outcome)
	if err != nil {
		return nil, err
	}
	return domain.OutcomeResult{
		UserID:  m.UserID,
		Weights: m.Weights,
		Wins:    m.Wins,
		Losses:  m.Losses,
		WinRate: m.WinRate(),
		Version: m.Version,
	}, nil
}
