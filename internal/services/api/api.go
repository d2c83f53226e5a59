// Package api provides the HTTP API for the application
package api

import (
	stdhttp "net/http"

	"prospector/internal/platform/config"
	"prospector/internal/platform/logger"
	phttp "prospector/internal/platform/net/http"
	"prospector/internal/platform/store"

	"prospector/internal/modkit"
	"prospector/internal/modkit/httpkit"
	"prospector/internal/modkit/module"
	"prospector/internal/modkit/swaggerkit"

	metamod "prospector/internal/services/api/meta/module"
	outcomesapi "prospector/internal/services/api/outcomes/module"
	scansapi "prospector/internal/services/api/scans/module"
	scoresapi "prospector/internal/services/api/scores/module"
	weightsapi "prospector/internal/services/api/weights/module"

	prospectsmod "prospector/internal/services/prospects/module"
	scansmod "prospector/internal/services/scans/module"
	weightsmod "prospector/internal/services/weights/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router and returns the wired
// scans worker ports so the caller can start the background drain loop
func Mount(r phttp.Router, opt Options) scansmod.Ports {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
	}

	// Worker modules first; the API modules borrow their ports
	prospects := prospectsmod.New(deps)
	prospectPorts := module.MustPortsOf[prospectsmod.Ports](prospects)

	weights := weightsmod.New(deps, prospectPorts.Query, prospectPorts.Writer)
	weightPorts := module.MustPortsOf[weightsmod.Ports](weights)

	scans := scansmod.New(deps, prospectPorts.Writer, weightPorts.Reader)
	scanPorts := module.MustPortsOf[scansmod.Ports](scans)

	mods := []module.Module{
		metamod.New(deps),
		prospects,
		weights,
		scans,
		scansapi.New(deps, modkit.WithPorts(scansapi.Ports{
			Runner: scanPorts.Runner,
			Query:  scanPorts.Query,
		})),
		outcomesapi.New(deps, modkit.WithPorts(outcomesapi.Ports{
			Adjuster: weightPorts.Adjuster,
		})),
		scoresapi.New(deps, modkit.WithPorts(scoresapi.Ports{
			Query: prospectPorts.Query,
		})),
		weightsapi.New(deps, modkit.WithPorts(weightsapi.Ports{
			Reader: weightPorts.Reader,
		})),
	}

	// bare liveness probe outside the versioned tree
	httpkit.Get(r, "/healthz", func(*stdhttp.Request) (any, error) {
		return map[string]bool{"ok": true}, nil
	})

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})

	return scanPorts
}
