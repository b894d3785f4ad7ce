// Package domain holds DTOs for the dashboard http and service contracts
package domain

import (
	"twinlytics/internal/core/analytics"
	"twinlytics/internal/core/window"
)

// RangeInput is an inclusive calendar range in UTC days
// both dates are required; format and order are checked by Range
type RangeInput struct {
	StartDate string `json:"start_date" example:"2025-08-01"`
	EndDate   string `json:"end_date"   example:"2025-08-31"`
}

// Range parses the input; a missing, malformed or inverted date is an InvalidRange error
func (in RangeInput) Range() (window.Range, error) {
	return window.Parse(in.StartDate, in.EndDate)
}

// LeaderboardInput ranks organizations over a range
type LeaderboardInput struct {
	RangeInput
	Limit int `json:"limit,omitempty" validate:"omitempty,min=1,max=100" example:"5"`
}

// Overview bundles every dashboard dataset for one range
type Overview struct {
	Range         RangeInput                   `json:"range"`
	Metrics       analytics.Metrics            `json:"metrics"`
	ActiveUsers   []analytics.DailyActivePoint `json:"activeUsers"`
	Conversations []analytics.VolumePoint      `json:"conversations"`
	Engagement    []analytics.EngagementPoint  `json:"engagement"`
	Features      []analytics.FeatureSlice     `json:"features"`
	Hourly        []analytics.HourPoint        `json:"hourly"`
	Organizations []analytics.OrgRow           `json:"organizations"`
	Retention     analytics.Retention          `json:"retention"`
}
