package analytics

import (
	"context"
	"time"

	"twinlytics/internal/core/window"
)

// DailyActivePoint is one day of the active users chart
// Average is the mean over every returned day and repeats on each point
type DailyActivePoint struct {
	Date        string  `json:"date"        example:"2025-08-01"`
	Label       string  `json:"label"       example:"8/1"`
	ActiveUsers int     `json:"activeUsers" example:"12"`
	Average     float64 `json:"average"     example:"9.4"`
}

// VolumePoint is one day of the conversation and message volume chart
type VolumePoint struct {
	Date             string  `json:"date"             example:"2025-08-01"`
	Label            string  `json:"label"            example:"8/1"`
	Conversations    int     `json:"conversations"    example:"31"`
	Messages         int     `json:"messages"         example:"240"`
	AvgConversations float64 `json:"avgConversations" example:"27.3"`
	AvgMessages      float64 `json:"avgMessages"      example:"211.9"`
}

// EngagementPoint is one day of feature engagement
type EngagementPoint struct {
	Date               string `json:"date"               example:"2025-08-01"`
	Label              string `json:"label"              example:"8/1"`
	QuestionAsked      int    `json:"questionAsked"      example:"14"`
	InfoRetrieved      int    `json:"infoRetrieved"      example:"9"`
	DocumentsDrafted   int    `json:"documentsDrafted"   example:"3"`
	SharedInteractions int    `json:"sharedInteractions" example:"2"`
}

// FeatureSlice is one wedge of the feature distribution
type FeatureSlice struct {
	Key   string `json:"key"   example:"question_asked"`
	Name  string `json:"name"  example:"Questions Asked"`
	Value int    `json:"value" example:"140"`
}

// HourPoint is the typical session count for one hour of the day
type HourPoint struct {
	Hour  int     `json:"hour"  example:"14"`
	Value float64 `json:"value" example:"3.57"`
}

// DailyActiveUsers counts distinct session initiators per day, zero filled
func (e *Engine) DailyActiveUsers(ctx context.Context, r window.Range) ([]DailyActivePoint, error) {
	sessions, err := e.src.Sessions(ctx, r.Span())
	if err != nil {
		return nil, unavailable(err, "series.daily_active")
	}

	perDay := make([]map[string]struct{}, r.Days())
	for _, s := range sessions {
		i, ok := r.Index(s.StartedAt)
		if !ok {
			continue
		}
		if perDay[i] == nil {
			perDay[i] = map[string]struct{}{}
		}
		perDay[i][s.UserID] = struct{}{}
	}

	out := make([]DailyActivePoint, 0, r.Days())
	total := 0
	i := 0
	for d := range r.Buckets() {
		n := len(perDay[i])
		total += n
		out = append(out, DailyActivePoint{Date: dateKey(d), Label: window.Label(d), ActiveUsers: n})
		i++
	}
	avg := round1(ratio(total, len(out)))
	for i := range out {
		out[i].Average = avg
	}
	return out, nil
}

// ConversationSeries counts sessions and messages per day with constant averages
func (e *Engine) ConversationSeries(ctx context.Context, r window.Range) ([]VolumePoint, error) {
	span := r.Span()
	sessions, err := e.src.Sessions(ctx, span)
	if err != nil {
		return nil, unavailable(err, "series.conversation.sessions")
	}
	msgs, err := e.src.Messages(ctx, span)
	if err != nil {
		return nil, unavailable(err, "series.conversation.messages")
	}

	convs := bucketCount(r, len(sessions), func(i int) time.Time { return sessions[i].StartedAt })
	perMsg := bucketCount(r, len(msgs), func(i int) time.Time { return msgs[i].CreatedAt })

	out := make([]VolumePoint, 0, r.Days())
	var sumC, sumM int
	i := 0
	for d := range r.Buckets() {
		sumC += convs[i]
		sumM += perMsg[i]
		out = append(out, VolumePoint{
			Date:          dateKey(d),
			Label:         window.Label(d),
			Conversations: convs[i],
			Messages:      perMsg[i],
		})
		i++
	}
	avgC, avgM := round1(ratio(sumC, len(out))), round1(ratio(sumM, len(out)))
	for i := range out {
		out[i].AvgConversations = avgC
		out[i].AvgMessages = avgM
	}
	return out, nil
}

// engagementCounts holds the per-day feature counters for a range
type engagementCounts struct {
	questions []int
	retrieved []int
	drafted   []int
	shared    []int
}

func (e *Engine) engagement(ctx context.Context, r window.Range) (engagementCounts, error) {
	span := r.Span()
	msgs, err := e.src.Messages(ctx, span)
	if err != nil {
		return engagementCounts{}, unavailable(err, "series.engagement.messages")
	}
	queries, err := e.src.Queries(ctx, span)
	if err != nil {
		return engagementCounts{}, unavailable(err, "series.engagement.queries")
	}
	docs, err := e.src.Documents(ctx, span)
	if err != nil {
		return engagementCounts{}, unavailable(err, "series.engagement.documents")
	}
	sessions, err := e.src.Sessions(ctx, span)
	if err != nil {
		return engagementCounts{}, unavailable(err, "series.engagement.sessions")
	}

	asked := make([]time.Time, 0, len(msgs))
	for _, m := range msgs {
		if m.Type == MessageQuery {
			asked = append(asked, m.CreatedAt)
		}
	}
	shared := make([]time.Time, 0, len(sessions))
	for _, s := range sessions {
		if s.SharedTwin() {
			shared = append(shared, s.StartedAt)
		}
	}

	return engagementCounts{
		questions: bucketCount(r, len(asked), func(i int) time.Time { return asked[i] }),
		retrieved: bucketCount(r, len(queries), func(i int) time.Time { return queries[i].CreatedAt }),
		drafted:   bucketCount(r, len(docs), func(i int) time.Time { return docs[i].CreatedAt }),
		shared:    bucketCount(r, len(shared), func(i int) time.Time { return shared[i] }),
	}, nil
}

// EngagementSeries reports per-day feature usage
// questionAsked counts query tagged messages while infoRetrieved counts query records
func (e *Engine) EngagementSeries(ctx context.Context, r window.Range) ([]EngagementPoint, error) {
	c, err := e.engagement(ctx, r)
	if err != nil {
		return nil, err
	}
	out := make([]EngagementPoint, 0, r.Days())
	i := 0
	for d := range r.Buckets() {
		out = append(out, EngagementPoint{
			Date:               dateKey(d),
			Label:              window.Label(d),
			QuestionAsked:      c.questions[i],
			InfoRetrieved:      c.retrieved[i],
			DocumentsDrafted:   c.drafted[i],
			SharedInteractions: c.shared[i],
		})
		i++
	}
	return out, nil
}

// FeatureDistribution sums the engagement counters over the whole range
func (e *Engine) FeatureDistribution(ctx context.Context, r window.Range) ([]FeatureSlice, error) {
	c, err := e.engagement(ctx, r)
	if err != nil {
		return nil, err
	}
	return []FeatureSlice{
		{Key: "question_asked", Name: "Questions Asked", Value: sum(c.questions)},
		{Key: "info_retrieved", Name: "Information Retrieved", Value: sum(c.retrieved)},
		{Key: "document_drafted", Name: "Documents Drafted", Value: sum(c.drafted)},
		{Key: "shared_interaction", Name: "Shared Twin Usage", Value: sum(c.shared)},
	}, nil
}

// HourlyActivity averages session starts per hour of day over the range days
func (e *Engine) HourlyActivity(ctx context.Context, r window.Range) ([]HourPoint, error) {
	sessions, err := e.src.Sessions(ctx, r.Span())
	if err != nil {
		return nil, unavailable(err, "series.hourly")
	}
	var perHour [24]int
	for _, s := range sessions {
		if r.Contains(s.StartedAt) {
			perHour[s.StartedAt.UTC().Hour()]++
		}
	}
	days := r.Days()
	out := make([]HourPoint, 0, 24)
	for h := range window.Hours() {
		out = append(out, HourPoint{Hour: h, Value: round2(ratio(perHour[h], days))})
	}
	return out, nil
}

// bucketCount tallies n instants into the day slots of r, ignoring strays
func bucketCount(r window.Range, n int, at func(int) time.Time) []int {
	out := make([]int, r.Days())
	for i := 0; i < n; i++ {
		if idx, ok := r.Index(at(i)); ok {
			out[idx]++
		}
	}
	return out
}

func sum(xs []int) int {
	n := 0
	for _, x := range xs {
		n += x
	}
	return n
}
