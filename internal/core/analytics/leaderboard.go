package analytics

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"twinlytics/internal/core/window"
)

// DefaultLeaderboardLimit is used when the caller passes no positive limit
const DefaultLeaderboardLimit = 5

// UnknownOrganization groups users with a blank organization
const UnknownOrganization = "Unknown"

// OrgRow is one organization on the leaderboard
type OrgRow struct {
	Name                 string  `json:"name"                 example:"Acme Corp"`
	ActiveUsers          int     `json:"activeUsers"          example:"8"`
	TotalActivities      int     `json:"totalActivities"      example:"412"`
	AvgActivitiesPerUser float64 `json:"avgActivitiesPerUser" example:"51.5"`
}

// OrgLeaderboard ranks organizations by total activity in r
// a session contributes itself plus its messages, documents and queries
func (e *Engine) OrgLeaderboard(ctx context.Context, r window.Range, limit int) ([]OrgRow, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	sessions, err := e.src.Sessions(ctx, r.Span())
	if err != nil {
		return nil, unavailable(err, "leaderboard.orgs")
	}

	type acc struct {
		users map[string]struct{}
		total int
	}
	byOrg := map[string]*acc{}
	for _, s := range sessions {
		if !r.Contains(s.StartedAt) {
			continue
		}
		name := strings.TrimSpace(s.Organization)
		if name == "" {
			name = UnknownOrganization
		}
		a := byOrg[name]
		if a == nil {
			a = &acc{users: map[string]struct{}{}}
			byOrg[name] = a
		}
		a.users[s.UserID] = struct{}{}
		a.total += 1 + s.Messages + s.Documents + s.Queries
	}

	rows := make([]OrgRow, 0, len(byOrg))
	for name, a := range byOrg {
		rows = append(rows, OrgRow{
			Name:                 name,
			ActiveUsers:          len(a.users),
			TotalActivities:      a.total,
			AvgActivitiesPerUser: round1(ratio(a.total, len(a.users))),
		})
	}
	slices.SortFunc(rows, func(x, y OrgRow) int {
		if c := cmp.Compare(y.TotalActivities, x.TotalActivities); c != 0 {
			return c
		}
		return cmp.Compare(x.Name, y.Name)
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}
