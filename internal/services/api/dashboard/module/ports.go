package module

import (
	"context"

	"twinlytics/internal/core/analytics"
	"twinlytics/internal/services/api/dashboard/domain"
	dashsvc "twinlytics/internal/services/api/dashboard/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// adaptDashboardPort exposes service methods as module ports for cross-module usage
type adaptDashboardPort struct{ svc dashsvc.Service }

var _ domain.ServicePort = adaptDashboardPort{}

func (a adaptDashboardPort) Metrics(ctx context.Context, in domain.RangeInput) (analytics.Metrics, error) {
	return a.svc.Metrics(ctx, in)
}

func (a adaptDashboardPort) DailyActiveUsers(ctx context.Context, in domain.RangeInput) ([]analytics.DailyActivePoint, error) {
	return a.svc.DailyActiveUsers(ctx, in)
}

func (a adaptDashboardPort) Conversations(ctx context.Context, in domain.RangeInput) ([]analytics.VolumePoint, error) {
	return a.svc.Conversations(ctx, in)
}

func (a adaptDashboardPort) Engagement(ctx context.Context, in domain.RangeInput) ([]analytics.EngagementPoint, error) {
	return a.svc.Engagement(ctx, in)
}

func (a adaptDashboardPort) Features(ctx context.Context, in domain.RangeInput) ([]analytics.FeatureSlice, error) {
	return a.svc.Features(ctx, in)
}

func (a adaptDashboardPort) Hourly(ctx context.Context, in domain.RangeInput) ([]analytics.HourPoint, error) {
	return a.svc.Hourly(ctx, in)
}

func (a adaptDashboardPort) Organizations(ctx context.Context, in domain.LeaderboardInput) ([]analytics.OrgRow, error) {
	return a.svc.Organizations(ctx, in)
}

func (a adaptDashboardPort) Retention(ctx context.Context, in domain.RangeInput) (analytics.Retention, error) {
	return a.svc.Retention(ctx, in)
}

func (a adaptDashboardPort) Overview(ctx context.Context, in domain.RangeInput) (domain.Overview, error) {
	return a.svc.Overview(ctx, in)
}
