package analytics

import (
	"context"
	"time"

	"twinlytics/internal/core/window"
	ptime "twinlytics/internal/platform/time"
)

// PowerUserSessions is the lifetime session count that marks a habitual user
const PowerUserSessions = 10

// Retention summarizes how the users first seen in a range came back
type Retention struct {
	Day1               int     `json:"day1"               example:"42"`
	Day7               int     `json:"day7"               example:"35"`
	Day30              int     `json:"day30"              example:"20"`
	SessionsPerUser    float64 `json:"sessionsPerUser"    example:"3.4"`
	PowerUsersPercent  int     `json:"powerUsersPercent"  example:"12"`
	AvgSessionDuration string  `json:"avgSessionDuration" example:"4m 12s"`
	CohortSize         int     `json:"cohortSize"         example:"50"`
	ActiveUsers        int     `json:"activeUsers"        example:"64"`
}

type userHistory struct {
	cohort   time.Time
	lifetime int
	day1     bool
	day7     bool
	day30    bool
}

// Retention computes cohort return rates and habit ratios for r
// cohorts come from lifetime history up to now; session counts stay inside r
func (e *Engine) Retention(ctx context.Context, r window.Range, now time.Time) (Retention, error) {
	starts, err := e.src.SessionStarts(ctx, window.Span{Until: now})
	if err != nil {
		return Retention{}, unavailable(err, "retention.starts")
	}
	sessions, err := e.src.Sessions(ctx, r.Span())
	if err != nil {
		return Retention{}, unavailable(err, "retention.sessions")
	}

	hist := map[string]*userHistory{}
	for _, s := range starts {
		if s.StartedAt.After(now) {
			continue
		}
		d := window.Truncate(s.StartedAt)
		h := hist[s.UserID]
		if h == nil {
			h = &userHistory{cohort: d}
			hist[s.UserID] = h
		}
		if d.Before(h.cohort) {
			h.cohort = d
		}
		h.lifetime++
	}
	for _, s := range starts {
		if s.StartedAt.After(now) {
			continue
		}
		h := hist[s.UserID]
		off := window.DaysBetween(h.cohort, s.StartedAt)
		if off == 1 {
			h.day1 = true
		}
		if off >= 1 && off <= 7 {
			h.day7 = true
		}
		if off >= 1 && off <= 30 {
			h.day30 = true
		}
	}

	var cohort, d1, d7, d30 int
	for _, h := range hist {
		if !r.Contains(h.cohort) {
			continue
		}
		cohort++
		if h.day1 {
			d1++
		}
		if h.day7 {
			d7++
		}
		if h.day30 {
			d30++
		}
	}

	active := map[string]struct{}{}
	var inRange, timed int
	var durSum int64
	for _, s := range sessions {
		if !r.Contains(s.StartedAt) {
			continue
		}
		inRange++
		active[s.UserID] = struct{}{}
		// unfinished sessions have no duration and stay out of the average
		if s.DurationSeconds != nil {
			timed++
			durSum += *s.DurationSeconds
		}
	}
	power := 0
	for uid := range active {
		if h := hist[uid]; h != nil && h.lifetime >= PowerUserSessions {
			power++
		}
	}

	var avgDur int64
	if timed > 0 {
		avgDur = durSum / int64(timed)
	}

	return Retention{
		Day1:               percent(d1, cohort),
		Day7:               percent(d7, cohort),
		Day30:              percent(d30, cohort),
		SessionsPerUser:    round1(ratio(inRange, len(active))),
		PowerUsersPercent:  percent(power, len(active)),
		AvgSessionDuration: ptime.MinSec(avgDur),
		CohortSize:         cohort,
		ActiveUsers:        len(active),
	}, nil
}

// firstUse returns the earliest start per non-empty key
func firstUse(starts []SessionStart, key func(SessionStart) string) map[string]time.Time {
	out := map[string]time.Time{}
	for _, s := range starts {
		k := key(s)
		if k == "" {
			continue
		}
		if cur, ok := out[k]; !ok || s.StartedAt.Before(cur) {
			out[k] = s.StartedAt
		}
	}
	return out
}
