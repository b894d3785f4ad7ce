package domain

import (
	"context"

	"twinlytics/internal/core/analytics"
)

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Metrics(ctx context.Context, in RangeInput) (analytics.Metrics, error)
	DailyActiveUsers(ctx context.Context, in RangeInput) ([]analytics.DailyActivePoint, error)
	Conversations(ctx context.Context, in RangeInput) ([]analytics.VolumePoint, error)
	Engagement(ctx context.Context, in RangeInput) ([]analytics.EngagementPoint, error)
	Features(ctx context.Context, in RangeInput) ([]analytics.FeatureSlice, error)
	Hourly(ctx context.Context, in RangeInput) ([]analytics.HourPoint, error)
	Organizations(ctx context.Context, in LeaderboardInput) ([]analytics.OrgRow, error)
	Retention(ctx context.Context, in RangeInput) (analytics.Retention, error)
	Overview(ctx context.Context, in RangeInput) (Overview, error)
}
