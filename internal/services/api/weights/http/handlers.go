// Package http provides http transport for weights
package http

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"prospector/internal/modkit/httpkit"
	"prospector/internal/services/api/weights/domain"
	weightsdom "prospector/internal/services/weights/domain"
)

// Register mounts weight endpoints on the given router
func Register(r httpkit.Router, reader weightsdom.ReaderPort) {
	h := &handlers{reader: reader}
	httpkit.Get(r, "/{userID}", h.get)
}

type handlers struct{ reader weightsdom.ReaderPort }

// swagger:route GET /weights/{userID} Weights weightsGet
// @Summary Current scoring weights for a user, bootstrapping defaults
// @Tags Weights
// @Produce json
// @Param userID path string true "User id"
// @Success 200 {object} domain.WeightsResponse "ok"
// @Router /weights/{userID} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	m, err := h.reader.Get(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		return nil, err
	}
	return domain.WeightsResponse{
		UserID:    m.UserID,
		Weights:   m.Weights,
		Wins:      m.Wins,
		Losses:    m.Losses,
		WinRate:   m.WinRate(),
		Version:   m.Version,
		UpdatedAt: m.UpdatedAt.UTC().Format(time.RFC3339),
	}, nil
}
