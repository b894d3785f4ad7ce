package store

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

func TestLogTracer(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	// the root level is error, the tracer still writes
	tr := LogTracer(zerolog.New(&buf).Level(zerolog.ErrorLevel))

	tr.OnQuery(context.Background(), QueryEvent{Backend: "postgres", SQL: "SELECT id\n\t  FROM sessions\n WHERE twin_id = $1", Args: []any{"t1"}})
	tr.OnQuery(context.Background(), QueryEvent{Backend: "sqlite", SQL: "SELECT 1", Slow: true, Err: errors.New("locked")})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d: %s", len(lines), buf.String())
	}
	for _, want := range []string{`"level":"info"`, `"sql":"SELECT id FROM sessions WHERE twin_id = $1"`, `"backend":"postgres"`, `"component":"sql"`} {
		if !strings.Contains(lines[0], want) {
			t.Fatalf("line %q missing %s", lines[0], want)
		}
	}
	for _, want := range []string{`"level":"warn"`, `"slow":true`, `"error":"locked"`} {
		if !strings.Contains(lines[1], want) {
			t.Fatalf("line %q missing %s", lines[1], want)
		}
	}
}

type recorder struct{ events []QueryEvent }

func (r *recorder) OnQuery(_ context.Context, ev QueryEvent) { r.events = append(r.events, ev) }

func TestProbe_SlowThreshold(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	start := time.Now().Add(-50 * time.Millisecond)
	newProbe("postgres", rec, 10).emit(context.Background(), "q", nil, start, nil)
	newProbe("postgres", rec, 1000).emit(context.Background(), "q", nil, start, nil)
	newProbe("postgres", rec, -1).emit(context.Background(), "q", nil, start, nil)
	newProbe("postgres", rec, 0).emit(context.Background(), "q", nil, start, nil)
	probe{}.emit(context.Background(), "q", nil, start, nil)

	if len(rec.events) != 4 {
		t.Fatalf("events = %d", len(rec.events))
	}
	want := []bool{true, false, false, false}
	for i, ev := range rec.events {
		if ev.Slow != want[i] {
			t.Fatalf("event %d slow = %v, want %v", i, ev.Slow, want[i])
		}
	}
}

func TestSlowOnly(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	tr := slowOnly{rec}
	tr.OnQuery(context.Background(), QueryEvent{SQL: "fast"})
	tr.OnQuery(context.Background(), QueryEvent{SQL: "slow", Slow: true})
	if len(rec.events) != 1 || rec.events[0].SQL != "slow" {
		t.Fatalf("events = %+v", rec.events)
	}
}

func TestPGXTracer_PairsStartAndEnd(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	tr := pgxTracer{newProbe("postgres", rec, -1)}

	// an end with no matching start is ignored
	tr.TraceQueryEnd(context.Background(), nil, pgx.TraceQueryEndData{})

	ctx := tr.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT * FROM messages WHERE session_id = $1", Args: []any{"s1"}})
	boom := errors.New("boom")
	tr.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{Err: boom})

	if len(rec.events) != 1 {
		t.Fatalf("events = %d", len(rec.events))
	}
	ev := rec.events[0]
	if ev.SQL != "SELECT * FROM messages WHERE session_id = $1" || ev.Args[0] != "s1" || !errors.Is(ev.Err, boom) || ev.Backend != "postgres" {
		t.Fatalf("event = %+v", ev)
	}
}
