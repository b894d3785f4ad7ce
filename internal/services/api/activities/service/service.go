// Package service pages the activity feed and rebuilds single activities
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"twinlytics/internal/core/analytics"
	perr "twinlytics/internal/platform/errors"
	"twinlytics/internal/platform/metrics"
	"twinlytics/internal/services/api/activities/domain"
)

// Service defines the activities service contract
type Service interface {
	domain.ServicePort
}

// Config for the activities service
type Config struct {
	DefaultLimit int
	MaxLimit     int
}

// Svc implements the activities service over the analytics engine
type Svc struct {
	Engine *analytics.Engine

	// Now anchors relative times such as "5 min ago"
	Now func() time.Time
}

// New constructs an activities service reading through src
func New(src analytics.Source, cfg Config) *Svc {
	if src == nil {
		panic("activities.Service requires a non nil Source")
	}
	return &Svc{
		Engine: analytics.New(src, analytics.WithFeedLimits(cfg.DefaultLimit, cfg.MaxLimit)),
		Now:    func() time.Time { return time.Now().UTC() },
	}
}

func record(op string, err error) {
	metrics.AnalyticsRequests.WithLabelValues(op, perr.Label(err)).Inc()
}

// Search returns one page of the filtered feed
func (s *Svc) Search(ctx context.Context, in domain.SearchInput) (feed analytics.Feed, err error) {
	defer func() { record("activities.search", err) }()

	kind, err := analytics.ParseKind(in.Type)
	if err != nil {
		return analytics.Feed{}, err
	}
	r, err := in.Range()
	if err != nil {
		return analytics.Feed{}, err
	}
	return s.Engine.Activities(ctx, analytics.FeedFilter{
		Kind:  kind,
		User:  in.User,
		Range: r,
		Page:  in.PageOr(1),
		Limit: in.Limit,
	}, s.Now())
}

// Detail rebuilds the full thread of one activity
func (s *Svc) Detail(ctx context.Context, id string) (d analytics.Detail, err error) {
	defer func() { record("activities.detail", err) }()

	id = normalizeID(id)
	if id == "" {
		return analytics.Detail{}, perr.WithField(perr.New(perr.ErrorCodeValidation, "activity id is required"), "id")
	}
	return s.Engine.ActivityDetail(ctx, id, s.Now())
}

// normalizeID canonicalizes uuid shaped ids and leaves others trimmed
func normalizeID(id string) string {
	id = strings.TrimSpace(id)
	if u, err := uuid.Parse(id); err == nil {
		return u.String()
	}
	return id
}
