// Package api provides the HTTP API for the application
package api

import (
	"net/http"

	"twinlytics/internal/platform/config"
	"twinlytics/internal/platform/logger"
	"twinlytics/internal/platform/metrics"
	phttp "twinlytics/internal/platform/net/http"
	"twinlytics/internal/platform/net/middleware"
	"twinlytics/internal/platform/store"

	"twinlytics/internal/modkit"
	"twinlytics/internal/modkit/httpkit"
	"twinlytics/internal/modkit/module"
	"twinlytics/internal/modkit/swaggerkit"

	activitiesmod "twinlytics/internal/services/api/activities/module"
	dashboardmod "twinlytics/internal/services/api/dashboard/module"
	metamod "twinlytics/internal/services/api/meta/module"

	// Worker-side data module (owns the Source port)
	twindatamod "twinlytics/internal/services/twindata/module"
)

// Options are the API options
type Options struct {
	// Config is the unprefixed process config; modules resolve their own prefixes
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
	EnableMetrics  bool

	// Stack tunes the shared middleware (access log, CORS)
	Stack httpkit.StackOptions

	// AnalyticsInFlight caps concurrent dashboard and feed requests, 0 disables
	AnalyticsInFlight int
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg:  opt.Config,
		PG:   opt.Store.PG,
		CH:   opt.Store.CH,
		Lite: opt.Store.Lite,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	// Construct the data module first and extract its ports
	data := twindatamod.New(deps, twindatamod.Options{})
	ports := module.MustPortsOf[twindatamod.Ports](data)

	// dashboard and feed requests each scan the twin data; cap them together
	var heavy []func(http.Handler) http.Handler
	if opt.AnalyticsInFlight > 0 {
		heavy = append(heavy, middleware.Throttle(opt.AnalyticsInFlight))
	}

	mods := []module.Module{
		metamod.New(deps, modkit.WithPorts(metamod.Ports{Health: ports.Health})),
		data,
		dashboardmod.New(deps, modkit.WithPorts(dashboardmod.Ports{Source: ports.Source}), modkit.WithMiddlewares(heavy...)),
		activitiesmod.New(deps, modkit.WithPorts(activitiesmod.Ports{Source: ports.Source}), modkit.WithMiddlewares(heavy...)),
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.APIStack(opt.Stack), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
		if opt.EnableMetrics {
			r.Handle("/metrics", metrics.Handler())
		}

		for _, m := range mods {
			module.Register(m.Name())
			m.MountRoutes(api)
		}
	})
}
