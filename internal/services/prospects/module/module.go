// Package module implements the prospects service module
package module

import (
	"prospector/internal/modkit"
	"prospector/internal/modkit/httpkit"
	"prospector/internal/services/prospects/domain"
	"prospector/internal/services/prospects/repo"
	"prospector/internal/services/prospects/service"
)

// Ports exposed by the prospects module
type Ports struct {
	Writer domain.WriterPort
	Query  domain.QueryPort
}

// Module implements the prospects service module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new prospects module
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)

	svc := service.New(deps.PG, repo.NewPG(), service.Config{
		HardLimit: opts.HardLimit,
	})

	m := &Module{deps: deps}
	m.ports = Ports{
		Writer: svc,
		Query:  svc,
	}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "prospects" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}
