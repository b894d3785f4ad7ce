package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"twinlytics/internal/core/analytics"
	"twinlytics/internal/core/analytics/analyticstest"
	perr "twinlytics/internal/platform/errors"
	"twinlytics/internal/services/api/dashboard/domain"
)

func day(d, h int) time.Time { return time.Date(2025, time.August, d, h, 0, 0, 0, time.UTC) }

func secs(n int64) *int64 { return &n }

func fixture() *analyticstest.Source {
	return &analyticstest.Source{
		SessionRows: []analytics.Session{
			{ID: "s1", UserID: "u1", TwinID: "t1", TwinOwnerID: "u1", StartedAt: day(1, 9), Organization: "Acme", Messages: 2, Documents: 1, DurationSeconds: secs(60)},
			{ID: "s2", UserID: "u2", TwinID: "t1", TwinOwnerID: "u1", StartedAt: day(2, 10), Organization: "Beta", Messages: 1, Queries: 1, DurationSeconds: secs(120)},
			{ID: "s3", UserID: "u1", TwinID: "t1", TwinOwnerID: "u1", StartedAt: day(2, 9), Organization: "Acme"},
		},
		MessageRows: []analytics.Message{
			{ID: "m1", SessionID: "s1", Type: analytics.MessageQuery, CreatedAt: day(1, 9)},
			{ID: "m2", SessionID: "s1", Type: analytics.MessageGeneral, CreatedAt: day(1, 9)},
			{ID: "m3", SessionID: "s2", Type: analytics.MessageGeneral, CreatedAt: day(2, 10)},
		},
		DocumentRows: []analytics.Document{{ID: "d1", SessionID: "s1", CreatedAt: day(1, 9)}},
		QueryRows:    []analytics.Query{{ID: "q1", SessionID: "s2", CreatedAt: day(2, 10)}},
	}
}

func newSvc(src analytics.Source) *Svc {
	s := New(src, Config{})
	s.Now = func() time.Time { return day(10, 0) }
	return s
}

var aug12 = domain.RangeInput{StartDate: "2025-08-01", EndDate: "2025-08-02"}

func TestDailyActiveUsers(t *testing.T) {
	t.Parallel()

	got, err := newSvc(fixture()).DailyActiveUsers(context.Background(), aug12)
	if err != nil {
		t.Fatalf("DailyActiveUsers: %v", err)
	}
	if len(got) != 2 || got[0].ActiveUsers != 1 || got[1].ActiveUsers != 2 {
		t.Fatalf("points = %+v", got)
	}
}

func TestOrganizations_DefaultLimitAndOrder(t *testing.T) {
	t.Parallel()

	got, err := newSvc(fixture()).Organizations(context.Background(), domain.LeaderboardInput{RangeInput: aug12})
	if err != nil {
		t.Fatalf("Organizations: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Acme" || got[0].TotalActivities != 5 || got[1].TotalActivities != 3 {
		t.Fatalf("rows = %+v", got)
	}

	got, err = newSvc(fixture()).Organizations(context.Background(), domain.LeaderboardInput{RangeInput: aug12, Limit: 1})
	if err != nil || len(got) != 1 {
		t.Fatalf("limit 1: %v %+v", err, got)
	}
}

func TestInvertedRangeRejectedBeforePortCall(t *testing.T) {
	t.Parallel()

	src := fixture()
	_, err := newSvc(src).Metrics(context.Background(), domain.RangeInput{StartDate: "2025-08-05", EndDate: "2025-08-01"})
	if !perr.IsCode(err, perr.ErrorCodeInvalidRange) {
		t.Fatalf("want invalid range, got %v", err)
	}
	if src.Calls() != 0 {
		t.Fatalf("port called %d times", src.Calls())
	}
}

func TestOverview_MatchesIndividualCalls(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newSvc(fixture())
	ov, err := svc.Overview(ctx, aug12)
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}

	m, _ := svc.Metrics(ctx, aug12)
	if ov.Metrics != m {
		t.Fatalf("metrics %+v != %+v", ov.Metrics, m)
	}
	ret, _ := svc.Retention(ctx, aug12)
	if ov.Retention != ret {
		t.Fatalf("retention %+v != %+v", ov.Retention, ret)
	}
	if len(ov.Hourly) != 24 || len(ov.Conversations) != 2 || len(ov.Engagement) != 2 || len(ov.Organizations) != 2 {
		t.Fatalf("overview shapes: %+v", ov)
	}
	if ov.Range != aug12 {
		t.Fatalf("range = %+v", ov.Range)
	}
}

func TestOverview_FailureIsUnavailable(t *testing.T) {
	t.Parallel()

	src := fixture()
	src.Err = errors.New("db down")
	_, err := newSvc(src).Overview(context.Background(), aug12)
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("want unavailable, got %v", err)
	}
}

func TestRetention_UsesClock(t *testing.T) {
	t.Parallel()

	svc := newSvc(fixture())
	svc.Now = func() time.Time { return day(1, 12) }
	got, err := svc.Retention(context.Background(), aug12)
	if err != nil {
		t.Fatalf("Retention: %v", err)
	}
	// only s1 has started by the reference time
	if got.CohortSize != 1 || got.Day1 != 0 {
		t.Fatalf("retention = %+v", got)
	}
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	s := New(fixture(), Config{})
	if s.Cfg.LeaderboardLimit != analytics.DefaultLeaderboardLimit || s.Now == nil {
		t.Fatalf("defaults = %+v", s.Cfg)
	}
}
