// Package domain holds DTOs for the activities http and service contracts
package domain

import (
	"twinlytics/internal/core/window"
)

// SearchInput filters and pages the activity feed
// page and limit bounds are checked by the engine so they surface as InvalidPage,
// the dates by window.Parse as InvalidRange; a lone bound is an InvalidRange too
type SearchInput struct {
	Page      *int   `json:"page,omitempty"       example:"1"`
	Limit     int    `json:"limit,omitempty"      example:"20"`
	Type      string `json:"type,omitempty"       validate:"omitempty,max=32"  example:"document"`
	User      string `json:"user,omitempty"       validate:"omitempty,max=320" example:"ada@"`
	StartDate string `json:"start_date,omitempty" example:"2025-08-01"`
	EndDate   string `json:"end_date,omitempty"   example:"2025-08-31"`
}

// PageOr returns the requested page, or def when none was sent
func (in SearchInput) PageOr(def int) int {
	if in.Page == nil {
		return def
	}
	return *in.Page
}

// Range returns the optional date filter; nil when no bound was given
func (in SearchInput) Range() (*window.Range, error) {
	if in.StartDate == "" && in.EndDate == "" {
		return nil, nil
	}
	r, err := window.Parse(in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
