// Package guard puts a circuit breaker in front of the twin data source
//
// Repeated storage failures open the breaker so callers fail fast with an
// Unavailable error instead of queueing behind a sick database
package guard

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"twinlytics/internal/core/analytics"
	"twinlytics/internal/core/window"
	perr "twinlytics/internal/platform/errors"
	"twinlytics/internal/platform/logger"
	"twinlytics/internal/platform/metrics"
)

// Options tune the breaker
type Options struct {
	Name     string
	Failures uint32        // consecutive failures that open the breaker
	OpenFor  time.Duration // how long the breaker stays open before probing
	Probes   uint32        // requests allowed while half-open
}

func (o Options) withDefaults() Options {
	if o.Name == "" {
		o.Name = "twindata"
	}
	if o.Failures == 0 {
		o.Failures = 5
	}
	if o.OpenFor <= 0 {
		o.OpenFor = 30 * time.Second
	}
	if o.Probes == 0 {
		o.Probes = 1
	}
	return o
}

// Guard implements analytics.Source around an inner source
type Guard struct {
	inner analytics.Source
	cb    *gobreaker.CircuitBreaker[any]
	name  string
	log   logger.Logger
}

var _ analytics.Source = (*Guard)(nil)

// New wraps inner with a breaker configured by opts
func New(inner analytics.Source, opts Options, log logger.Logger) *Guard {
	if inner == nil {
		panic("guard: nil source")
	}
	opts = opts.withDefaults()
	g := &Guard{inner: inner, name: opts.Name, log: log.With().Str("component", "twindata.guard").Logger()}

	metrics.BreakerState.WithLabelValues(opts.Name).Set(metrics.StateClosed)
	g.cb = gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        opts.Name,
		MaxRequests: opts.Probes,
		Timeout:     opts.OpenFor,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= opts.Failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			g.log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("breaker state change")
			metrics.BreakerState.WithLabelValues(name).Set(stateValue(to))
			metrics.BreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
		IsSuccessful: healthy,
	})
	return g
}

// healthy reports whether err says nothing about storage health
// caller cancellation and missing rows never count against the store
func healthy(err error) bool {
	return err == nil ||
		errors.Is(err, context.Canceled) ||
		perr.IsCode(err, perr.ErrorCodeNotFound)
}

// State exposes the breaker state for readiness reporting
func (g *Guard) State() gobreaker.State { return g.cb.State() }

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return metrics.StateHalfOpen
	case gobreaker.StateOpen:
		return metrics.StateOpen
	default:
		return metrics.StateClosed
	}
}

// run executes fn through the breaker and keeps errors inside the taxonomy
func run[T any](ctx context.Context, g *Guard, op string, fn func() (T, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	res, err := g.cb.Execute(func() (any, error) { return fn() })
	switch {
	case err == nil:
		metrics.BreakerRequests.WithLabelValues(g.name, "success").Inc()
		return res.(T), nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.BreakerRequests.WithLabelValues(g.name, "rejected").Inc()
		return zero, perr.WithOp(perr.Wrap(err, perr.ErrorCodeUnavailable, "twin data temporarily unavailable"), op)
	}

	if healthy(err) {
		metrics.BreakerRequests.WithLabelValues(g.name, "success").Inc()
		return zero, err
	}
	metrics.BreakerRequests.WithLabelValues(g.name, "failure").Inc()
	ev := g.log.Warn().Err(err).Str("op", op).Bool("retryable", perr.IsRetryable(err))
	if pg, ok := perr.ExtractPgError(err); ok {
		ev = ev.Str("sqlstate", pg.Code)
	}
	ev.Msg("twin data read failed")
	if c := perr.CodeOf(err); c == perr.ErrorCodeUnavailable {
		return zero, err
	}
	return zero, perr.WithOp(perr.Wrap(err, perr.ErrorCodeUnavailable, "twin data unavailable"), op)
}

func (g *Guard) Sessions(ctx context.Context, span window.Span) ([]analytics.Session, error) {
	return run(ctx, g, "sessions", func() ([]analytics.Session, error) { return g.inner.Sessions(ctx, span) })
}

func (g *Guard) Messages(ctx context.Context, span window.Span) ([]analytics.Message, error) {
	return run(ctx, g, "messages", func() ([]analytics.Message, error) { return g.inner.Messages(ctx, span) })
}

func (g *Guard) Documents(ctx context.Context, span window.Span) ([]analytics.Document, error) {
	return run(ctx, g, "documents", func() ([]analytics.Document, error) { return g.inner.Documents(ctx, span) })
}

func (g *Guard) Queries(ctx context.Context, span window.Span) ([]analytics.Query, error) {
	return run(ctx, g, "queries", func() ([]analytics.Query, error) { return g.inner.Queries(ctx, span) })
}

func (g *Guard) SessionStarts(ctx context.Context, span window.Span) ([]analytics.SessionStart, error) {
	return run(ctx, g, "session_starts", func() ([]analytics.SessionStart, error) { return g.inner.SessionStarts(ctx, span) })
}

func (g *Guard) Session(ctx context.Context, id string) (analytics.Session, error) {
	return run(ctx, g, "session", func() (analytics.Session, error) { return g.inner.Session(ctx, id) })
}

func (g *Guard) Thread(ctx context.Context, sessionID string) (analytics.Thread, error) {
	return run(ctx, g, "thread", func() (analytics.Thread, error) { return g.inner.Thread(ctx, sessionID) })
}
