// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	"twinlytics/internal/core/version"
	modkit "twinlytics/internal/modkit"
	"twinlytics/internal/modkit/httpkit"
	"twinlytics/internal/modkit/module"

	metahttp "twinlytics/internal/services/api/meta/http"
)

// Module serves health, readiness and build info
type Module struct {
	b    modkit.Built
	deps metahttp.Deps
}

// Ports declares the optional injected health port of the data module
type Ports struct {
	Health metahttp.SourceHealth
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)
	injected, _ := b.Ports.(Ports)

	hd := metahttp.Deps{
		ServiceName: version.Service,
		StartedAt:   time.Now(),
		Source:      injected.Health,
		Modules:     module.Names,
		Backends: []metahttp.Backend{
			{Name: "postgres", Seam: deps.PG},
			{Name: "clickhouse", Seam: deps.CH},
			{Name: "sqlite", Seam: deps.Lite},
		},
	}
	return &Module{b: b, deps: hd}
}

// MountRoutes implements module.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { metahttp.Register(rr, m.deps) })
}

// Name implements module.Module
func (m *Module) Name() string { return m.b.Name }

// Ports implements module.Module; meta exports nothing
func (m *Module) Ports() any { return nil }
