// Package module wires the dashboard into the API using modkit
package module

import (
	modkit "twinlytics/internal/modkit"
	"twinlytics/internal/modkit/httpkit"
	dashhttp "twinlytics/internal/services/api/dashboard/http"
	dashsvc "twinlytics/internal/services/api/dashboard/service"
	twindom "twinlytics/internal/services/twindata/domain"
)

// Module implements the dashboard module
type Module struct {
	b     modkit.Built
	svc   dashsvc.Service
	ports adaptDashboardPort
}

// Ports declares the injected twin data port this module reads through
type Ports struct {
	Source twindom.SourcePort
}

// New constructs the dashboard module; it panics without a Source port
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("dashboard"), modkit.WithPrefix("/dashboard")}, opts...)...)

	injected, _ := b.Ports.(Ports)
	if injected.Source == nil {
		panic("dashboard module requires the Source port (from services/twindata)")
	}

	cfg := FromConfig(deps.Cfg)
	svc := dashsvc.New(injected.Source, dashsvc.Config{LeaderboardLimit: cfg.LeaderboardLimit})
	return &Module{b: b, svc: svc, ports: adaptDashboardPort{svc: svc}}
}

// MountRoutes mounts the dashboard endpoints under the module prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { dashhttp.Register(rr, m.svc) })
}

// Name returns the module name
func (m *Module) Name() string { return m.b.Name }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return m.b.Prefix }
