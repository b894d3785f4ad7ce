// Package service runs the dashboard aggregations
package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"twinlytics/internal/core/analytics"
	"twinlytics/internal/core/window"
	perr "twinlytics/internal/platform/errors"
	"twinlytics/internal/platform/metrics"
	"twinlytics/internal/services/api/dashboard/domain"
)

// Service defines the dashboard service contract
type Service interface {
	domain.ServicePort
}

// Config for the dashboard service
type Config struct {
	LeaderboardLimit int
}

// Svc implements the dashboard service over the analytics engine
type Svc struct {
	Engine *analytics.Engine
	Cfg    Config

	// Now is the reference clock for retention; defaults to UTC wall time
	Now func() time.Time
}

// New constructs a dashboard service reading through src
func New(src analytics.Source, cfg Config) *Svc {
	if src == nil {
		panic("dashboard.Service requires a non nil Source")
	}
	if cfg.LeaderboardLimit <= 0 {
		cfg.LeaderboardLimit = analytics.DefaultLeaderboardLimit
	}
	return &Svc{
		Engine: analytics.New(src),
		Cfg:    cfg,
		Now:    func() time.Time { return time.Now().UTC() },
	}
}

// ranged parses the range, runs fn and records the outcome under op
func ranged[T any](ctx context.Context, op string, in domain.RangeInput, fn func(context.Context, window.Range) (T, error)) (T, error) {
	var out T
	r, err := in.Range()
	if err == nil {
		out, err = fn(ctx, r)
	}
	metrics.AnalyticsRequests.WithLabelValues(op, perr.Label(err)).Inc()
	return out, err
}

// Metrics returns the four headline counters against the previous period
func (s *Svc) Metrics(ctx context.Context, in domain.RangeInput) (analytics.Metrics, error) {
	return ranged(ctx, "metrics", in, s.Engine.Metrics)
}

// DailyActiveUsers returns one point per day in range
func (s *Svc) DailyActiveUsers(ctx context.Context, in domain.RangeInput) ([]analytics.DailyActivePoint, error) {
	return ranged(ctx, "daily_active_users", in, s.Engine.DailyActiveUsers)
}

// Conversations returns daily session and message volume
func (s *Svc) Conversations(ctx context.Context, in domain.RangeInput) ([]analytics.VolumePoint, error) {
	return ranged(ctx, "conversations", in, s.Engine.ConversationSeries)
}

// Engagement returns daily feature engagement counters
func (s *Svc) Engagement(ctx context.Context, in domain.RangeInput) ([]analytics.EngagementPoint, error) {
	return ranged(ctx, "engagement", in, s.Engine.EngagementSeries)
}

// Features returns the engagement counters summed over the range
func (s *Svc) Features(ctx context.Context, in domain.RangeInput) ([]analytics.FeatureSlice, error) {
	return ranged(ctx, "features", in, s.Engine.FeatureDistribution)
}

// Hourly returns average sessions per hour of day
func (s *Svc) Hourly(ctx context.Context, in domain.RangeInput) ([]analytics.HourPoint, error) {
	return ranged(ctx, "hourly", in, s.Engine.HourlyActivity)
}

// Organizations returns the organization leaderboard
func (s *Svc) Organizations(ctx context.Context, in domain.LeaderboardInput) ([]analytics.OrgRow, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = s.Cfg.LeaderboardLimit
	}
	return ranged(ctx, "organizations", in.RangeInput, func(ctx context.Context, r window.Range) ([]analytics.OrgRow, error) {
		return s.Engine.OrgLeaderboard(ctx, r, limit)
	})
}

// Retention returns cohort retention for users first seen in range
func (s *Svc) Retention(ctx context.Context, in domain.RangeInput) (analytics.Retention, error) {
	now := s.Now()
	return ranged(ctx, "retention", in, func(ctx context.Context, r window.Range) (analytics.Retention, error) {
		return s.Engine.Retention(ctx, r, now)
	})
}

// Overview computes every dashboard dataset concurrently
// the first failure cancels the rest
func (s *Svc) Overview(ctx context.Context, in domain.RangeInput) (domain.Overview, error) {
	now := s.Now()
	return ranged(ctx, "overview", in, func(ctx context.Context, r window.Range) (domain.Overview, error) {
		out := domain.Overview{Range: in}
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) { out.Metrics, err = s.Engine.Metrics(gctx, r); return })
		g.Go(func() (err error) { out.ActiveUsers, err = s.Engine.DailyActiveUsers(gctx, r); return })
		g.Go(func() (err error) { out.Conversations, err = s.Engine.ConversationSeries(gctx, r); return })
		g.Go(func() (err error) { out.Engagement, err = s.Engine.EngagementSeries(gctx, r); return })
		g.Go(func() (err error) { out.Features, err = s.Engine.FeatureDistribution(gctx, r); return })
		g.Go(func() (err error) { out.Hourly, err = s.Engine.HourlyActivity(gctx, r); return })
		g.Go(func() (err error) {
			out.Organizations, err = s.Engine.OrgLeaderboard(gctx, r, s.Cfg.LeaderboardLimit)
			return
		})
		g.Go(func() (err error) { out.Retention, err = s.Engine.Retention(gctx, r, now); return })
		if err := g.Wait(); err != nil {
			return domain.Overview{}, err
		}
		return out, nil
	})
}
