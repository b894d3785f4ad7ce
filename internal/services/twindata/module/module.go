// Package module wires the twin data reader and exposes its Source port
package module

import (
	"fmt"

	"twinlytics/internal/core/analytics"
	"twinlytics/internal/modkit"
	"twinlytics/internal/modkit/httpkit"
	"twinlytics/internal/modkit/repokit"
	dom "twinlytics/internal/services/twindata/domain"
	"twinlytics/internal/services/twindata/guard"
	"twinlytics/internal/services/twindata/repo"
	"twinlytics/internal/services/twindata/service"
)

// Module defines the twin data module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the module; the selected backend seam must be present on deps
func New(deps modkit.Deps, overrides Options) *Module {
	opts := FromConfig(deps.Cfg)

	if overrides.Backend != "" {
		opts.Backend = overrides.Backend
	}
	if overrides.QueryTimeout != 0 {
		opts.QueryTimeout = overrides.QueryTimeout
	}
	if overrides.BreakerFailures != 0 {
		opts.BreakerFailures = overrides.BreakerFailures
	}
	if overrides.BreakerOpenFor != 0 {
		opts.BreakerOpenFor = overrides.BreakerOpenFor
	}

	var (
		db     repokit.TxRunner
		binder repokit.Binder[analytics.Source]
	)
	switch opts.Backend {
	case dom.BackendSQLite:
		db = deps.Lite
	default:
		if deps.PG != nil {
			db = repokit.WithBeginHooks(deps.PG, repo.StatementTimeout(opts.QueryTimeout))
		}
	}
	if db == nil {
		panic(fmt.Sprintf("twindata: %s backend is not configured", opts.Backend))
	}

	binder = repo.NewSQL()
	if deps.CH != nil {
		binder = repo.NewHybrid(deps.CH)
	}

	log := deps.Log.With().Str("module", "twindata").Str("backend", opts.Backend).Logger()
	svc := service.New(db, binder, service.Config{QueryTimeout: opts.QueryTimeout})
	src := guard.New(svc, guard.Options{
		Name:     "twindata",
		Failures: uint32(max(opts.BreakerFailures, 0)),
		OpenFor:  opts.BreakerOpenFor,
	}, log)

	log.Info().Dur("query_timeout", opts.QueryTimeout).Bool("clickhouse", deps.CH != nil).Msg("twin data source ready")

	backend := opts.Backend
	if deps.CH != nil {
		backend += "+clickhouse"
	}
	return &Module{deps: deps, ports: Ports{Source: src, Health: health{backend: backend, g: src}}}
}

// Ports returns the module ports (Source, Health)
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return "twindata" }

// Prefix returns the module route prefix (none, no HTTP surface)
func (m *Module) Prefix() string { return "" }

// MountRoutes returns no HTTP routes
func (m *Module) MountRoutes(_ httpkit.Router) {}
