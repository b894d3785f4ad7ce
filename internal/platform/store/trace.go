package store

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"twinlytics/internal/platform/logger"
)

// QueryEvent describes one finished statement
type QueryEvent struct {
	Backend string
	SQL     string
	Args    []any
	Elapsed time.Duration
	Err     error
	Slow    bool
}

// QueryTracer receives every statement a sql seam runs
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// LogTracer writes statements through log regardless of the root level
// slow statements go out at warn
func LogTracer(log logger.Logger) QueryTracer {
	return logTracer{log: log.Level(zerolog.DebugLevel).With().Str("component", "sql").Logger()}
}

type logTracer struct{ log logger.Logger }

func (l logTracer) OnQuery(_ context.Context, ev QueryEvent) {
	evt := l.log.Info()
	if ev.Slow {
		evt = l.log.Warn()
	}
	evt.Str("backend", ev.Backend).
		Dur("elapsed", ev.Elapsed).
		Bool("slow", ev.Slow).
		Str("sql", strings.Join(strings.Fields(ev.SQL), " ")).
		Interface("args", ev.Args).
		Err(ev.Err).
		Msg("sql query")
}

// probe stamps events for one backend; a zero probe traces nothing
type probe struct {
	backend string
	tracer  QueryTracer
	slow    time.Duration // negative disables slow marking
}

// newProbe treats slowMs <= 0 as no slow threshold
func newProbe(backend string, tracer QueryTracer, slowMs int) probe {
	p := probe{backend: backend, tracer: tracer, slow: -1}
	if slowMs > 0 {
		p.slow = time.Duration(slowMs) * time.Millisecond
	}
	return p
}

// slowOnly forwards slow statements and drops the rest
type slowOnly struct{ next QueryTracer }

func (s slowOnly) OnQuery(ctx context.Context, ev QueryEvent) {
	if ev.Slow {
		s.next.OnQuery(ctx, ev)
	}
}

func (p probe) emit(ctx context.Context, sql string, args []any, start time.Time, err error) {
	if p.tracer == nil {
		return
	}
	elapsed := time.Since(start)
	p.tracer.OnQuery(ctx, QueryEvent{
		Backend: p.backend,
		SQL:     sql,
		Args:    args,
		Elapsed: elapsed,
		Err:     err,
		Slow:    p.slow >= 0 && elapsed >= p.slow,
	})
}

// pgxTracer plugs a probe into pgx's per connection tracer hooks
type pgxTracer struct{ p probe }

type pgxTraceKey struct{}

type pgxTraceStart struct {
	sql  string
	args []any
	at   time.Time
}

var _ pgx.QueryTracer = pgxTracer{}

func (t pgxTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, d pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, pgxTraceKey{}, pgxTraceStart{sql: d.SQL, args: d.Args, at: time.Now()})
}

func (t pgxTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, d pgx.TraceQueryEndData) {
	s, ok := ctx.Value(pgxTraceKey{}).(pgxTraceStart)
	if !ok {
		return
	}
	t.p.emit(ctx, s.sql, s.args, s.at, d.Err)
}
