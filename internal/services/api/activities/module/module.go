// Package module wires the activity feed into the API using modkit
package module

import (
	modkit "twinlytics/internal/modkit"
	"twinlytics/internal/modkit/httpkit"
	acthttp "twinlytics/internal/services/api/activities/http"
	actsvc "twinlytics/internal/services/api/activities/service"
	twindom "twinlytics/internal/services/twindata/domain"
)

// Module implements the activities module
type Module struct {
	b     modkit.Built
	svc   actsvc.Service
	ports adaptActivitiesPort
}

// Ports declares the injected twin data port this module reads through
type Ports struct {
	Source twindom.SourcePort
}

// New constructs the activities module; it panics without a Source port
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("activities"), modkit.WithPrefix("/activities")}, opts...)...)

	injected, _ := b.Ports.(Ports)
	if injected.Source == nil {
		panic("activities module requires the Source port (from services/twindata)")
	}

	cfg := FromConfig(deps.Cfg)
	svc := actsvc.New(injected.Source, actsvc.Config{DefaultLimit: cfg.DefaultLimit, MaxLimit: cfg.MaxLimit})
	return &Module{b: b, svc: svc, ports: adaptActivitiesPort{svc: svc}}
}

// MountRoutes mounts /search and /{id} under the module prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { acthttp.Register(rr, m.svc) })
}

// Name returns the module name
func (m *Module) Name() string { return m.b.Name }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return m.b.Prefix }
