package store

import (
	"context"
	"fmt"

	chx "twinlytics/internal/platform/store/ch"
	"twinlytics/internal/platform/store/lite"
	"twinlytics/internal/platform/store/pg"
)

// tracer logs every statement when on, otherwise only the slow ones
func (s *Store) tracer(on bool) QueryTracer {
	t := LogTracer(s.Log)
	if on {
		return t
	}
	return slowOnly{t}
}

func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	pc := pg.Config{
		URL:            cfg.PG.URL,
		MaxConns:       cfg.PG.MaxConns,
		AppName:        cfg.AppName,
		ConnectRetries: cfg.PG.ConnectRetries,
		PingTimeout:    cfg.PG.PingTimeout,
	}
	if cfg.PG.LogSQL || cfg.PG.SlowQueryMs > 0 {
		pc.Tracer = pgxTracer{newProbe("postgres", s.tracer(cfg.PG.LogSQL), cfg.PG.SlowQueryMs)}
	}
	pool, err := pg.Open(ctx, pc)
	if err != nil {
		return nil, err
	}
	return &pgAdapter{pool: pool}, nil
}

func openCH(ctx context.Context, cfg Config, _ *Store) (Clickhouse, error) {
	c, err := chx.Open(ctx, chx.Config{
		URL:  cfg.CH.URL,
		Role: cfg.CH.ClientName,
		Tag:  cfg.CH.ClientTag,
	})
	if err != nil {
		return nil, err
	}
	return newCHAdapter(c), nil
}

func openLite(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	l, err := lite.Open(ctx, lite.Config{
		Path:     cfg.Lite.Path,
		ReadOnly: cfg.Lite.ReadOnly,
		MaxConns: cfg.Lite.MaxConns,
	})
	if err != nil {
		return nil, fmt.Errorf("sqlite open %q: %w", cfg.Lite.Path, err)
	}
	return &dbAdapter{db: l.DB, probe: newProbe("sqlite", s.tracer(cfg.Lite.LogSQL), cfg.Lite.SlowQueryMs)}, nil
}
