package analytics

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"twinlytics/internal/core/window"
	perr "twinlytics/internal/platform/errors"
	ptime "twinlytics/internal/platform/time"
)

const (
	// DefaultFeedLimit applies when a feed request carries no limit
	DefaultFeedLimit = 100
	// MaxFeedLimit caps any feed page
	MaxFeedLimit = 100
)

// Activity is the feed view of one session
type Activity struct {
	ID            string    `json:"id"            example:"8c7b3f8e-2f43-4a55-9d0f-1f0e0d8a9b11"`
	Type          Kind      `json:"type"          example:"document"`
	User          string    `json:"user"          example:"ada@example.com"`
	UserName      string    `json:"userName"      example:"Ada Lovelace"`
	Organization  string    `json:"organization"  example:"Acme Corp"`
	TwinName      string    `json:"twinName"      example:"Ada's Twin"`
	TwinOwner     string    `json:"twinOwner"     example:"ada@example.com"`
	Action        string    `json:"action"        example:"Quarterly report draft"`
	Time          string    `json:"time"          example:"5 min ago"`
	StartedAt     time.Time `json:"startedAt"`
	Duration      string    `json:"duration"      example:"4m 12s"`
	Platform      string    `json:"platform"      example:"web"`
	Device        string    `json:"device"        example:"desktop"`
	MessageCount  int       `json:"messageCount"  example:"12"`
	DocumentCount int       `json:"documentCount" example:"1"`
	QueryCount    int       `json:"queryCount"    example:"0"`
	HasDocuments  bool      `json:"hasDocuments"  example:"true"`
	HasQueries    bool      `json:"hasQueries"    example:"false"`
}

// Classify assigns the single activity type of a session
// shared beats document, document beats query, and anything else is a conversation
func Classify(s Session) Kind {
	switch {
	case s.SharedTwin():
		return KindShared
	case s.Documents > 0:
		return KindDocument
	case s.Queries > 0:
		return KindQuery
	default:
		return KindConversation
	}
}

// ParseKind maps a filter value onto a Kind; blank means KindAll
func ParseKind(v string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(v))); k {
	case "":
		return KindAll, nil
	case KindAll, KindConversation, KindDocument, KindQuery, KindShared:
		return k, nil
	default:
		return "", perr.WithField(perr.Newf(perr.ErrorCodeValidation, "unknown activity type %q", v), "type")
	}
}

// NewActivity renders a session for the feed relative to now
func NewActivity(s Session, now time.Time) Activity {
	kind := Classify(s)
	a := Activity{
		ID:            s.ID,
		Type:          kind,
		User:          s.UserEmail,
		UserName:      s.UserName,
		Organization:  s.Organization,
		TwinName:      s.TwinName,
		Action:        action(s, kind),
		Time:          ptime.Ago(now, s.StartedAt),
		StartedAt:     s.StartedAt.UTC(),
		Duration:      "N/A",
		Platform:      s.Platform,
		Device:        s.Device,
		MessageCount:  s.Messages,
		DocumentCount: s.Documents,
		QueryCount:    s.Queries,
		HasDocuments:  s.Documents > 0,
		HasQueries:    s.Queries > 0,
	}
	if kind == KindShared {
		a.TwinOwner = cmp.Or(s.TwinOwnerEmail, s.TwinOwnerName)
	}
	if s.DurationSeconds != nil && *s.DurationSeconds > 0 {
		a.Duration = ptime.MinSec(*s.DurationSeconds)
	}
	return a
}

func action(s Session, kind Kind) string {
	if t := strings.TrimSpace(s.Title); t != "" {
		return t
	}
	if t := strings.TrimSpace(s.Topic); t != "" {
		return t
	}
	twin := cmp.Or(s.TwinName, "a twin")
	switch kind {
	case KindShared:
		return fmt.Sprintf("Used %s shared by %s", twin, cmp.Or(s.TwinOwnerName, s.TwinOwnerEmail, "another user"))
	case KindDocument:
		return fmt.Sprintf("Drafted %s with %s", plural(s.Documents, "document"), twin)
	case KindQuery:
		return fmt.Sprintf("Retrieved information with %s (%s)", twin, plural(s.Queries, "query"))
	default:
		return fmt.Sprintf("Conversation with %s (%s)", twin, plural(s.Messages, "message"))
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	if strings.HasSuffix(noun, "y") {
		return fmt.Sprintf("%d %sies", n, strings.TrimSuffix(noun, "y"))
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// FeedFilter is the closed set of feed options
// Limit 0 selects the engine default, anything above the cap is clamped
type FeedFilter struct {
	Kind  Kind
	User  string
	Range *window.Range
	Page  int
	Limit int
}

// Feed is one page of classified activities
type Feed struct {
	Items      []Activity `json:"items"`
	Total      int        `json:"total"       example:"45"`
	Page       int        `json:"page"        example:"1"`
	Limit      int        `json:"limit"       example:"20"`
	TotalPages int        `json:"total_pages" example:"3"`
	HasNext    bool       `json:"has_next"    example:"true"`
	HasPrev    bool       `json:"has_prev"    example:"false"`
}

// pageSize validates page and limit before any port call
func (e *Engine) pageSize(f FeedFilter) (int, error) {
	if f.Page < 1 {
		return 0, perr.WithField(perr.InvalidPagef("page must be >= 1, got %d", f.Page), "page")
	}
	switch {
	case f.Limit < 0:
		return 0, perr.WithField(perr.InvalidPagef("limit must be >= 0, got %d", f.Limit), "limit")
	case f.Limit == 0:
		return e.feedDefault, nil
	case f.Limit > e.feedMax:
		return e.feedMax, nil
	}
	return f.Limit, nil
}

// Activities filters, sorts and pages the session feed
func (e *Engine) Activities(ctx context.Context, f FeedFilter, now time.Time) (Feed, error) {
	limit, err := e.pageSize(f)
	if err != nil {
		return Feed{}, err
	}
	kind := cmp.Or(f.Kind, KindAll)

	var span window.Span
	if f.Range != nil {
		span = f.Range.Span()
	}
	sessions, err := e.src.Sessions(ctx, span)
	if err != nil {
		return Feed{}, unavailable(err, "feed.sessions")
	}

	needle := ""
	fold := cases.Fold()
	if u := strings.TrimSpace(f.User); u != "" {
		needle = fold.String(u)
	}

	kept := make([]Session, 0, len(sessions))
	for _, s := range sessions {
		if f.Range != nil && !f.Range.Contains(s.StartedAt) {
			continue
		}
		if kind != KindAll && Classify(s) != kind {
			continue
		}
		if needle != "" && !strings.Contains(fold.String(s.UserEmail), needle) {
			continue
		}
		kept = append(kept, s)
	}
	slices.SortStableFunc(kept, func(a, b Session) int {
		if c := b.StartedAt.Compare(a.StartedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	total := len(kept)
	pages := (total + limit - 1) / limit
	out := Feed{
		Items:      []Activity{},
		Total:      total,
		Page:       f.Page,
		Limit:      limit,
		TotalPages: pages,
		HasNext:    f.Page < pages,
		HasPrev:    f.Page > 1,
	}
	from := (f.Page - 1) * limit
	if from >= total {
		return out, nil
	}
	to := min(from+limit, total)
	out.Items = make([]Activity, 0, to-from)
	for _, s := range kept[from:to] {
		out.Items = append(out.Items, NewActivity(s, now))
	}
	return out, nil
}
