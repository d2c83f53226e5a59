// Package module wires the outcomes API surface using modkit
package module

import (
	"net/http"

	modkit "prospector/internal/modkit"
	"prospector/internal/modkit/httpkit"
	str "prospector/internal/platform/strings"
	outcomeshttp "prospector/internal/services/api/outcomes/http"
	weightsdom "prospector/internal/services/weights/domain"
)

// Module implements the outcomes API module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)
}

// Ports declares the required injected worker port for this API module
type Ports struct {
	Adjuster weightsdom.AdjusterPort
}

// New constructs the outcomes API module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("outcomes-api"),
		modkit.WithPrefix("/outcomes"),
	}, opts...)...)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.Adjuster == nil {
		panic("outcomes API module requires Adjuster port (from services/weights)")
	}

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		ports:     injected,
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		outcomeshttp.Register(r, injected.Adjuster)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
