package analytics

import (
	"context"

	"twinlytics/internal/core/window"
)

// Metric is one headline value with its period-over-period change
type Metric struct {
	Label  string  `json:"label"  example:"Active Users"`
	Value  int     `json:"value"  example:"42"`
	Change float64 `json:"change" example:"12.5"`
}

// Metrics are the four dashboard headline numbers
type Metrics struct {
	ActiveUsers   Metric `json:"active_users"`
	Conversations Metric `json:"conversations"`
	Documents     Metric `json:"documents"`
	Installations Metric `json:"installations"`
}

// ChangePercent compares cur against prev
// growth from zero is reported as 100 and zero to zero as 0
func ChangePercent(cur, prev int) float64 {
	if prev == 0 {
		if cur == 0 {
			return 0
		}
		return 100
	}
	return round1(float64(cur-prev) / float64(prev) * 100)
}

type periodCounts struct {
	users    map[string]struct{}
	sessions int
	docs     int
	twins    int
}

// Metrics computes the headline numbers for r against the preceding period
func (e *Engine) Metrics(ctx context.Context, r window.Range) (Metrics, error) {
	prev := r.Previous()
	both := r.Union(prev).Span()

	sessions, err := e.src.Sessions(ctx, both)
	if err != nil {
		return Metrics{}, unavailable(err, "metrics.sessions")
	}
	docs, err := e.src.Documents(ctx, both)
	if err != nil {
		return Metrics{}, unavailable(err, "metrics.documents")
	}
	// first use of a twin can sit anywhere before the window end
	starts, err := e.src.SessionStarts(ctx, window.Span{Until: r.Span().Until})
	if err != nil {
		return Metrics{}, unavailable(err, "metrics.starts")
	}

	cur := periodCounts{users: map[string]struct{}{}}
	old := periodCounts{users: map[string]struct{}{}}

	for _, s := range sessions {
		switch {
		case r.Contains(s.StartedAt):
			cur.sessions++
			cur.users[s.UserID] = struct{}{}
		case prev.Contains(s.StartedAt):
			old.sessions++
			old.users[s.UserID] = struct{}{}
		}
	}
	for _, d := range docs {
		switch {
		case r.Contains(d.CreatedAt):
			cur.docs++
		case prev.Contains(d.CreatedAt):
			old.docs++
		}
	}
	for _, first := range firstUse(starts, func(s SessionStart) string { return s.TwinID }) {
		switch {
		case r.Contains(first):
			cur.twins++
		case prev.Contains(first):
			old.twins++
		}
	}

	return Metrics{
		ActiveUsers:   metric("Active Users", len(cur.users), len(old.users)),
		Conversations: metric("Conversations", cur.sessions, old.sessions),
		Documents:     metric("Documents Drafted", cur.docs, old.docs),
		Installations: metric("Twin Installations", cur.twins, old.twins),
	}, nil
}

func metric(label string, cur, prev int) Metric {
	return Metric{Label: label, Value: cur, Change: ChangePercent(cur, prev)}
}
