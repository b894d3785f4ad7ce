// Package service runs twin data reads inside short read-only transactions
package service

import (
	"context"
	"time"

	"twinlytics/internal/core/analytics"
	"twinlytics/internal/core/window"
	"twinlytics/internal/modkit/repokit"
	"twinlytics/internal/platform/metrics"
)

// Config for the twin data service
type Config struct {
	// QueryTimeout bounds each read; zero leaves the caller deadline alone
	QueryTimeout time.Duration
}

// Service implements analytics.Source over a bound repo
type Service struct {
	DB   repokit.TxRunner
	Repo repokit.Binder[analytics.Source]
	Cfg  Config
}

var _ analytics.Source = (*Service)(nil)

// New constructs the service; db and binder are required
func New(db repokit.TxRunner, b repokit.Binder[analytics.Source], cfg Config) *Service {
	if db == nil || b == nil {
		panic("twindata: nil db or binder")
	}
	return &Service{DB: db, Repo: b, Cfg: cfg}
}

// read runs fn in a tx with the configured timeout and records its latency
func read[T any](ctx context.Context, s *Service, op string, fn func(context.Context, analytics.Source) (T, error)) (T, error) {
	if s.Cfg.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Cfg.QueryTimeout)
		defer cancel()
	}
	start := time.Now()
	var out T
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		var e error
		out, e = fn(ctx, s.Repo.Bind(q))
		return e
	})
	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.SourceReadDuration.WithLabelValues(op, result).Observe(time.Since(start).Seconds())
	return out, err
}

func (s *Service) Sessions(ctx context.Context, span window.Span) ([]analytics.Session, error) {
	return read(ctx, s, "sessions", func(ctx context.Context, r analytics.Source) ([]analytics.Session, error) { return r.Sessions(ctx, span) })
}

func (s *Service) Messages(ctx context.Context, span window.Span) ([]analytics.Message, error) {
	return read(ctx, s, "messages", func(ctx context.Context, r analytics.Source) ([]analytics.Message, error) { return r.Messages(ctx, span) })
}

func (s *Service) Documents(ctx context.Context, span window.Span) ([]analytics.Document, error) {
	return read(ctx, s, "documents", func(ctx context.Context, r analytics.Source) ([]analytics.Document, error) { return r.Documents(ctx, span) })
}

func (s *Service) Queries(ctx context.Context, span window.Span) ([]analytics.Query, error) {
	return read(ctx, s, "queries", func(ctx context.Context, r analytics.Source) ([]analytics.Query, error) { return r.Queries(ctx, span) })
}

func (s *Service) SessionStarts(ctx context.Context, span window.Span) ([]analytics.SessionStart, error) {
	return read(ctx, s, "session_starts", func(ctx context.Context, r analytics.Source) ([]analytics.SessionStart, error) { return r.SessionStarts(ctx, span) })
}

func (s *Service) Session(ctx context.Context, id string) (analytics.Session, error) {
	return read(ctx, s, "session", func(ctx context.Context, r analytics.Source) (analytics.Session, error) { return r.Session(ctx, id) })
}

func (s *Service) Thread(ctx context.Context, sessionID string) (analytics.Thread, error) {
	return read(ctx, s, "thread", func(ctx context.Context, r analytics.Source) (analytics.Thread, error) { return r.Thread(ctx, sessionID) })
}
