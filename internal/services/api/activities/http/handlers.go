// Package http provides http transport for the activity feed
package http

import (
	stdhttp "net/http"

	"twinlytics/internal/modkit/httpkit"
	"twinlytics/internal/services/api/activities/domain"
	svc "twinlytics/internal/services/api/activities/service"
)

// Register mounts activity endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.SearchInput](r, "/search", h.search)
	httpkit.Get(r, "/{id}", h.detail)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /activities/search Activities activitiesSearch
// @Summary Page through classified activities
// @Description Newest first. Filters combine; date bounds must be given together.
// @Tags Activities
// @Accept json
// @Produce json
// @Param payload body domain.SearchInput true "Filters and paging"
// @Success 200 {object} analytics.Feed "ok"
// @Failure 400 {object} httpkit.Envelope "invalid filter or page"
// @Failure 503 {object} httpkit.Envelope "data unavailable"
// @Router /activities/search [post]
func (h *handlers) search(r *stdhttp.Request, in domain.SearchInput) (any, error) {
	return h.svc.Search(r.Context(), in)
}

// swagger:route GET /activities/{id} Activities activitiesDetail
// @Summary Full thread of one activity
// @Tags Activities
// @Produce json
// @Param id path string true "Activity id"
// @Success 200 {object} analytics.Detail "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Failure 503 {object} httpkit.Envelope "data unavailable"
// @Router /activities/{id} [get]
func (h *handlers) detail(r *stdhttp.Request) (any, error) {
	return h.svc.Detail(r.Context(), httpkit.Param(r, "id"))
}
