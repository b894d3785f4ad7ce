// Package http serves the service's own health and build endpoints
package http

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"twinlytics/internal/core/version"
	"twinlytics/internal/modkit/httpkit"
	perr "twinlytics/internal/platform/errors"
)

// readyTimeout bounds the whole readiness fan-out
const readyTimeout = 2 * time.Second

// Pinger is satisfied by store seams that can answer a ping
type Pinger interface {
	Ping(context.Context) error
}

// SourceHealth reports the analytics read path
type SourceHealth interface {
	Backend() string
	Breaker() string
}

// Backend is one store seam /ready checks; a nil Seam is not configured
type Backend struct {
	Name string
	Seam any
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Backends    []Backend

	// Source is nil when the data module is not mounted
	Source SourceHealth

	// Modules lists mounted modules, nil when unknown
	Modules func() []string
}

type handlers struct{ deps Deps }

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
	httpkit.Get(r, "/source", h.source)
}

// HealthResponse is the liveness payload
type HealthResponse struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"twinlytics-api"`
	Started string `json:"started" example:"2025-09-03T13:00:00Z"`
	Now     string `json:"now"     example:"2025-09-03T13:05:00Z"`
}

// ReadyCheck is one backend's answer
type ReadyCheck struct {
	Name      string `json:"name"             example:"postgres"`
	Status    string `json:"status"           example:"ok"` // ok fail skipped unknown
	LatencyMs int64  `json:"latency_ms"       example:"3"`
	Error     string `json:"error,omitempty"  example:"dial tcp 127.0.0.1:5432: connect: connection refused"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"` // ok degraded fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2025-09-03T13:05:00Z"`
}

// ServiceResponse describes the running process
type ServiceResponse struct {
	Name    string   `json:"name"    example:"twinlytics-api"`
	Started string   `json:"started" example:"2025-09-03T13:00:00Z"`
	Uptime  int64    `json:"uptime"  example:"300"`
	Modules []string `json:"modules,omitempty"`
}

// SourceResponse reports the analytics backend and its circuit breaker
type SourceResponse struct {
	Backend string `json:"backend" example:"postgres"`
	Breaker string `json:"breaker" example:"closed"` // closed half-open open
}

func stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

// @Summary Liveness
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{OK: true, Service: h.deps.ServiceName, Started: stamp(h.deps.StartedAt), Now: stamp(time.Now())}, nil
}

func check(ctx context.Context, b Backend) ReadyCheck {
	c := ReadyCheck{Name: b.Name}
	p, ok := b.Seam.(Pinger)
	switch {
	case b.Seam == nil:
		c.Status = "skipped"
		return c
	case !ok:
		c.Status = "unknown"
		return c
	}
	start := time.Now()
	err := p.Ping(ctx)
	c.LatencyMs = time.Since(start).Milliseconds()
	if err != nil {
		c.Status, c.Error = "fail", err.Error()
		return c
	}
	c.Status = "ok"
	return c
}

// @Summary Readiness with per backend checks
// @Description 503 when any configured backend fails its ping
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse
// @Failure 503 {object} ReadyResponse
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	checks := make([]ReadyCheck, len(h.deps.Backends))
	var g errgroup.Group
	for i, b := range h.deps.Backends {
		g.Go(func() error {
			checks[i] = check(ctx, b)
			return nil
		})
	}
	_ = g.Wait()

	// ready needs at least one answering store and nothing failing
	status, answered := "ok", 0
	for _, c := range checks {
		switch c.Status {
		case "ok":
			answered++
		case "fail":
			status = "fail"
		case "unknown":
			if status == "ok" {
				status = "degraded"
			}
		}
	}
	if status == "ok" && answered == 0 {
		status = "degraded"
	}
	if status == "ok" && h.deps.Source != nil && h.deps.Source.Breaker() == "open" {
		status = "degraded"
	}

	out := ReadyResponse{Status: status, Checks: checks, Now: stamp(time.Now())}
	if status == "fail" {
		return httpkit.Response{Status: http.StatusServiceUnavailable, Body: out}, nil
	}
	return out, nil
}

// @Summary Build info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

// @Summary Service info, uptime and mounted modules
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	out := ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: stamp(h.deps.StartedAt),
		Uptime:  int64(time.Since(h.deps.StartedAt) / time.Second),
	}
	if h.deps.Modules != nil {
		out.Modules = h.deps.Modules()
	}
	return out, nil
}

// @Summary Analytics backend and breaker state
// @Tags Meta
// @Produce json
// @Success 200 {object} SourceResponse
// @Failure 404 {object} httpkit.Envelope "data module not mounted"
// @Router /meta/source [get]
func (h *handlers) source(_ *http.Request) (any, error) {
	if h.deps.Source == nil {
		return nil, perr.NotFoundf("no analytics source configured")
	}
	return SourceResponse{Backend: h.deps.Source.Backend(), Breaker: h.deps.Source.Breaker()}, nil
}
