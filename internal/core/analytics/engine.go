package analytics

import (
	"context"
	"math"
	"time"

	"twinlytics/internal/core/window"
	perr "twinlytics/internal/platform/errors"
)

// Source is the data access port the engine reads through
// every method must honor ctx cancellation and be safe to retry
type Source interface {
	// Sessions returns sessions whose start falls inside span
	Sessions(ctx context.Context, span window.Span) ([]Session, error)
	// Messages returns messages created inside span
	Messages(ctx context.Context, span window.Span) ([]Message, error)
	// Documents returns documents created inside span
	Documents(ctx context.Context, span window.Span) ([]Document, error)
	// Queries returns queries created inside span
	Queries(ctx context.Context, span window.Span) ([]Query, error)
	// SessionStarts returns lifetime session history rows inside span
	SessionStarts(ctx context.Context, span window.Span) ([]SessionStart, error)
	// Session looks up one session; a missing id yields perr.ErrorCodeNotFound
	Session(ctx context.Context, id string) (Session, error)
	// Thread returns the messages, documents and queries of one session
	Thread(ctx context.Context, sessionID string) (Thread, error)
}

// Engine runs the aggregations over a Source
type Engine struct {
	src Source

	feedDefault int
	feedMax     int
}

// Option tunes an Engine
type Option func(*Engine)

// WithFeedLimits overrides the default and maximum feed page sizes
func WithFeedLimits(def, maxLimit int) Option {
	return func(e *Engine) {
		if maxLimit > 0 {
			e.feedMax = maxLimit
		}
		if def > 0 {
			e.feedDefault = def
		}
		if e.feedDefault > e.feedMax {
			e.feedDefault = e.feedMax
		}
	}
}

// New returns an Engine bound to src
func New(src Source, opts ...Option) *Engine {
	if src == nil {
		panic("analytics: nil Source")
	}
	e := &Engine{src: src, feedDefault: DefaultFeedLimit, feedMax: MaxFeedLimit}
	for _, o := range opts {
		o(e)
	}
	return e
}

// unavailable keeps engine errors inside the taxonomy
// NotFound and Unavailable pass through, anything else is a storage failure
func unavailable(err error, op string) error {
	if err == nil {
		return nil
	}
	switch perr.CodeOf(err) {
	case perr.ErrorCodeNotFound, perr.ErrorCodeUnavailable:
		return err
	}
	return perr.WithOp(perr.Wrap(err, perr.ErrorCodeUnavailable, "analytics data unavailable"), op)
}

func round1(x float64) float64 { return math.Round(x*10) / 10 }

func round2(x float64) float64 { return math.Round(x*100) / 100 }

// ratio divides and returns 0 for an empty denominator
func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

// percent returns the truncated whole percentage of num over den
func percent(num, den int) int {
	if den == 0 {
		return 0
	}
	return num * 100 / den
}

func dateKey(d time.Time) string { return d.Format(window.DateLayout) }
