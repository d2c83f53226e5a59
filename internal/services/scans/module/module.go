// Package module implements the scans service module
package module

import (
	"prospector/internal/core/feature"
	"prospector/internal/core/keywordpack"
	"prospector/internal/modkit"
	"prospector/internal/modkit/httpkit"
	analyticssvc "prospector/internal/services/analytics/service"
	enrichdom "prospector/internal/services/enrich/domain"
	enrichsvc "prospector/internal/services/enrich/service"
	prospectsdom "prospector/internal/services/prospects/domain"
	"prospector/internal/services/scans/domain"
	"prospector/internal/services/scans/repo"
	"prospector/internal/services/scans/service"
	weightsdom "prospector/internal/services/weights/domain"
)

// Ports exposed by the scans module
type Ports struct {
	Runner domain.RunnerPort
	Query  domain.QueryPort
	Worker domain.WorkerPort
}

// Module implements the scans service module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new scans module. The keyword pack is embedded; a load
// failure means a corrupted build and is fatal
func New(deps modkit.Deps, prospects prospectsdom.WriterPort, weights weightsdom.ReaderPort) *Module {
	opts := FromConfig(deps.Cfg)

	pack, err := keywordpack.Load()
	if err != nil {
		panic(err)
	}
	extractor := feature.NewExtractor(keywordpack.NewMatcher(pack))

	var enricher enrichdom.EnricherPort = enrichsvc.Noop{}
	if opts.EnrichURL != "" {
		enricher = enrichsvc.NewClient(enrichsvc.Config{
			BaseURL: opts.EnrichURL,
			APIKey:  opts.EnrichAPIKey,
			Timeout: opts.EnrichTimeout,
		})
	}

	svc := service.New(deps.PG, repo.NewPG(), service.Deps{
		Prospects: prospects,
		Weights:   weights,
		Enricher:  enricher,
		Sink:      analyticssvc.New(deps.CH),
		Extractor: extractor,
	}, service.Config{
		BatchSize:   opts.BatchSize,
		EnrichLimit: opts.EnrichLimit,
		Concurrency: opts.Concurrency,
		LeaseBatch:  opts.LeaseBatch,
		Tick:        opts.Tick,
		LeaseFor:    opts.LeaseFor,
	})

	m := &Module{deps: deps}
	m.ports = Ports{
		Runner: svc,
		Query:  svc,
		Worker: svc,
	}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "scans" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}
