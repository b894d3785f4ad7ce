// @title         Twinlytics API
// @version       0.1.0
// @description   Read only analytics over AI twin conversations: dashboard aggregates and the activity feed

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"twinlytics/internal/modkit/httpkit"
	"twinlytics/internal/modkit/repokit"
	"twinlytics/internal/platform/config"
	"twinlytics/internal/platform/logger"
	phttp "twinlytics/internal/platform/net/http"
	"twinlytics/internal/platform/store"
	"twinlytics/internal/services/api"
)

func main() {
	// .env only fills keys the process env leaves unset
	if err := config.LoadDotenv(); err != nil {
		logger.Get().Fatal().Err(err).Msg("load .env")
	}
	logger.Init(logger.FromEnv())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, config.New()); err != nil {
		logger.Get().Error().Err(err).Msg("twinlytics-api stopped")
		stop()
		os.Exit(1)
	}
}

// storeConfig maps SERVICE_* onto the store; exactly one relational backend is enabled
func storeConfig(root config.Conf) store.Config {
	backend := strings.ToLower(root.MayEnum("SERVICE_DATA_BACKEND", "postgres", "postgres", "sqlite"))
	pg := root.Prefix("SERVICE_PGSQL_")
	lite := root.Prefix("SERVICE_SQLITE_")
	ch := root.Prefix("SERVICE_CLICKHOUSE_")

	cfg := store.Config{
		AppName: "twinlytics",
		PG: store.PGConfig{
			Enabled:     backend == "postgres",
			MaxConns:    int32(pg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pg.MayInt("SLOW_MS", 500),
			LogSQL:      pg.MayBool("LOG_SQL", false),
		},
		Lite: store.SQLiteConfig{
			Enabled:     backend == "sqlite",
			Path:        lite.MayString("PATH", "twinlytics.db"),
			ReadOnly:    lite.MayBool("READ_ONLY", true),
			MaxConns:    lite.MayInt("MAX_CONNS", 4),
			SlowQueryMs: lite.MayInt("SLOW_MS", 500),
			LogSQL:      lite.MayBool("LOG_SQL", false),
		},
		// child record scans only
		CH: store.CHConfig{
			Enabled:    ch.MayBool("ENABLED", false),
			ClientName: "twinlytics",
			ClientTag:  "api",
		},
	}
	if cfg.PG.Enabled {
		cfg.PG.URL = pg.MustString("DBURL")
	}
	if cfg.CH.Enabled {
		cfg.CH.URL = ch.MustString("DBURL")
	}
	return cfg
}

// apiOptions reads CORE_API_*; modules get the root config for their own prefixes
func apiOptions(root config.Conf, st *store.Store) api.Options {
	c := root.Prefix("CORE_API_")
	return api.Options{
		Config:         root,
		Store:          st,
		Logger:         logger.Get(),
		EnableSwagger:  c.MayBool("SWAGGER", true),
		EnableProfiler: c.MayBool("PROFILER", false),
		EnableMetrics:  c.MayBool("METRICS", true),
		Stack: httpkit.StackOptions{
			SlowRequest: time.Duration(c.MayInt("SLOW_MS", 1000)) * time.Millisecond,
			CORSOrigins: c.MayCSV("CORS_ORIGINS", []string{"*"}),
			Timeout:     c.MayDuration("REQUEST_TIMEOUT", 30*time.Second),
		},
		AnalyticsInFlight: c.MayInt("ANALYTICS_INFLIGHT", 32),
	}
}

func run(ctx context.Context, root config.Conf) error {
	log := logger.Named("main")

	cfg := storeConfig(root)
	st, err := store.Open(ctx, cfg, store.WithLogger(*logger.Get()))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			log.Error().Err(err).Msg("close store")
		}
	}()
	if err := repokit.Guard(ctx, st); err != nil {
		return fmt.Errorf("store guard: %w", err)
	}
	log.Info().
		Bool("postgres", st.PG != nil).
		Bool("sqlite", st.Lite != nil).
		Bool("clickhouse", st.CH != nil).
		Msg("stores ready")

	// CORE_API_ADDR or CORE_API_PORT, CORE_API_SHUTDOWN_GRACE
	srv := phttp.NewServer(root.Prefix("CORE_API_"))
	api.Mount(srv.Router(), apiOptions(root, st))

	if err := srv.Run(ctx); err != nil {
		return err
	}
	log.Info().Msg("http server drained")
	return nil
}
