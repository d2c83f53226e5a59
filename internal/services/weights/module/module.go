// Package module implements the weights service module
package module

import (
	"prospector/internal/modkit"
	"prospector/internal/modkit/httpkit"
	prospectsdom "prospector/internal/services/prospects/domain"
	"prospector/internal/services/weights/domain"
	"prospector/internal/services/weights/repo"
	"prospector/internal/services/weights/service"
)

// Ports exposed by the weights module
type Ports struct {
	Reader   domain.ReaderPort
	Adjuster domain.AdjusterPort
}

// Module implements the weights service module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new weights module; the prospects ports supply the stored
// feature vectors read during adjustment and the rescore write path
func New(deps modkit.Deps, query prospectsdom.QueryPort, writer prospectsdom.WriterPort) *Module {
	opts := FromConfig(deps.Cfg)

	svc := service.New(deps.PG, repo.NewPG(), query, writer, service.Config{
		MaxRetries: opts.MaxRetries,
	})

	m := &Module{deps: deps}
	m.ports = Ports{
		Reader:   svc,
		Adjuster: svc,
	}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "weights" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}
