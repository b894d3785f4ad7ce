// Package http provides http transport for the dashboard
package http

import (
	stdhttp "net/http"

	"twinlytics/internal/modkit/httpkit"
	"twinlytics/internal/services/api/dashboard/domain"
	svc "twinlytics/internal/services/api/dashboard/service"
)

// Register mounts dashboard endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.RangeInput](r, "/metrics", h.metrics)

	// chart series
	httpkit.PostJSON[domain.RangeInput](r, "/charts/activity", h.activity)
	httpkit.PostJSON[domain.RangeInput](r, "/charts/conversation", h.conversation)
	httpkit.PostJSON[domain.RangeInput](r, "/charts/engagement", h.engagement)
	httpkit.PostJSON[domain.RangeInput](r, "/charts/features", h.features)
	httpkit.PostJSON[domain.RangeInput](r, "/charts/hourly", h.hourly)

	httpkit.PostJSON[domain.LeaderboardInput](r, "/leaders/orgs", h.orgs)
	httpkit.PostJSON[domain.RangeInput](r, "/retention", h.retention)

	// everything above in one round trip
	httpkit.PostJSON[domain.RangeInput](r, "/overview", h.overview)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /dashboard/metrics Dashboard dashboardMetrics
// @Summary Headline metrics with change against the previous period
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param payload body domain.RangeInput true "Range"
// @Success 200 {object} analytics.Metrics "ok"
// @Failure 400 {object} httpkit.Envelope "invalid range"
// @Failure 503 {object} httpkit.Envelope "data unavailable"
// @Router /dashboard/metrics [post]
func (h *handlers) metrics(r *stdhttp.Request, in domain.RangeInput) (any, error) {
	return h.svc.Metrics(r.Context(), in)
}

// swagger:route POST /dashboard/charts/activity Dashboard dashboardActivity
// @Summary Daily active users
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param payload body domain.RangeInput true "Range"
// @Success 200 {array} analytics.DailyActivePoint "ok"
// @Router /dashboard/charts/activity [post]
func (h *handlers) activity(r *stdhttp.Request, in domain.RangeInput) (any, error) {
	return h.svc.DailyActiveUsers(r.Context(), in)
}

// swagger:route POST /dashboard/charts/conversation Dashboard dashboardConversation
// @Summary Daily conversation and message volume
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param payload body domain.RangeInput true "Range"
// @Success 200 {array} analytics.VolumePoint "ok"
// @Router /dashboard/charts/conversation [post]
func (h *handlers) conversation(r *stdhttp.Request, in domain.RangeInput) (any, error) {
	return h.svc.Conversations(r.Context(), in)
}

// swagger:route POST /dashboard/charts/engagement Dashboard dashboardEngagement
// @Summary Daily feature engagement
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param payload body domain.RangeInput true "Range"
// @Success 200 {array} analytics.EngagementPoint "ok"
// @Router /dashboard/charts/engagement [post]
func (h *handlers) engagement(r *stdhttp.Request, in domain.RangeInput) (any, error) {
	return h.svc.Engagement(r.Context(), in)
}

// swagger:route POST /dashboard/charts/features Dashboard dashboardFeatures
// @Summary Feature distribution over the range
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param payload body domain.RangeInput true "Range"
// @Success 200 {array} analytics.FeatureSlice "ok"
// @Router /dashboard/charts/features [post]
func (h *handlers) features(r *stdhttp.Request, in domain.RangeInput) (any, error) {
	return h.svc.Features(r.Context(), in)
}

// swagger:route POST /dashboard/charts/hourly Dashboard dashboardHourly
// @Summary Average sessions per hour of day
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param payload body domain.RangeInput true "Range"
// @Success 200 {array} analytics.HourPoint "ok"
// @Router /dashboard/charts/hourly [post]
func (h *handlers) hourly(r *stdhttp.Request, in domain.RangeInput) (any, error) {
	return h.svc.Hourly(r.Context(), in)
}

// swagger:route POST /dashboard/leaders/orgs Dashboard dashboardOrgs
// @Summary Organization leaderboard
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param payload body domain.LeaderboardInput true "Range and limit"
// @Success 200 {array} analytics.OrgRow "ok"
// @Router /dashboard/leaders/orgs [post]
func (h *handlers) orgs(r *stdhttp.Request, in domain.LeaderboardInput) (any, error) {
	return h.svc.Organizations(r.Context(), in)
}

// swagger:route POST /dashboard/retention Dashboard dashboardRetention
// @Summary Cohort retention
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param payload body domain.RangeInput true "Range"
// @Success 200 {object} analytics.Retention "ok"
// @Router /dashboard/retention [post]
func (h *handlers) retention(r *stdhttp.Request, in domain.RangeInput) (any, error) {
	return h.svc.Retention(r.Context(), in)
}

// swagger:route POST /dashboard/overview Dashboard dashboardOverview
// @Summary Every dashboard dataset for one range
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param payload body domain.RangeInput true "Range"
// @Success 200 {object} domain.Overview "ok"
// @Failure 503 {object} httpkit.Envelope "data unavailable"
// @Router /dashboard/overview [post]
func (h *handlers) overview(r *stdhttp.Request, in domain.RangeInput) (any, error) {
	return h.svc.Overview(r.Context(), in)
}
