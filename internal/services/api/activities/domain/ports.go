package domain

import (
	"context"

	"twinlytics/internal/core/analytics"
)

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Search(ctx context.Context, in SearchInput) (analytics.Feed, error)
	Detail(ctx context.Context, id string) (analytics.Detail, error)
}
