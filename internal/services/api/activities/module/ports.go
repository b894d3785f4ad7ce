package module

import (
	"context"

	"twinlytics/internal/core/analytics"
	"twinlytics/internal/services/api/activities/domain"
	actsvc "twinlytics/internal/services/api/activities/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// adaptActivitiesPort exposes service methods as module ports for cross-module usage
type adaptActivitiesPort struct{ svc actsvc.Service }

var _ domain.ServicePort = adaptActivitiesPort{}

func (a adaptActivitiesPort) Search(ctx context.Context, in domain.SearchInput) (analytics.Feed, error) {
	return a.svc.Search(ctx, in)
}

func (a adaptActivitiesPort) Detail(ctx context.Context, id string) (analytics.Detail, error) {
	return a.svc.Detail(ctx, id)
}
