package analytics

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"
	"unicode/utf8"

	ptime "twinlytics/internal/platform/time"
)

// PreviewRunes bounds the document preview embedded in a thread
const PreviewRunes = 500

// DocumentMarker is a document shown inline under the message that triggered it
type DocumentMarker struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"      example:"report"`
	Title     string    `json:"title"     example:"Q3 summary"`
	Preview   string    `json:"preview"`
	WordCount int       `json:"wordCount" example:"812"`
	CreatedAt time.Time `json:"createdAt"`
}

// QueryMarker is a retrieval shown inline under the message that triggered it
type QueryMarker struct {
	ID            string    `json:"id"`
	Text          string    `json:"text"          example:"latest churn numbers"`
	Type          string    `json:"type"          example:"search"`
	ResultCount   int       `json:"resultCount"   example:"7"`
	RetrievedInfo string    `json:"retrievedInfo" example:"Found 7 results"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ThreadMessage is a message plus the side effects it triggered
type ThreadMessage struct {
	ID        string           `json:"id"`
	Sender    Sender           `json:"sender"    example:"user"`
	Content   string           `json:"content"`
	Type      MessageType      `json:"type"      example:"general"`
	Time      string           `json:"time"      example:"03:04 PM"`
	CreatedAt time.Time        `json:"createdAt"`
	Documents []DocumentMarker `json:"documents,omitempty"`
	Queries   []QueryMarker    `json:"queries,omitempty"`
}

// Owner identifies the owner of a shared twin
type Owner struct {
	ID    string `json:"id"`
	Email string `json:"email" example:"grace@example.com"`
	Name  string `json:"name"  example:"Grace Hopper"`
}

// Detail is an activity with its full ordered thread
// Documents and Queries hold the markers no message triggered
type Detail struct {
	Activity
	Messages           []ThreadMessage  `json:"messages"`
	Documents          []DocumentMarker `json:"documents"`
	Queries            []QueryMarker    `json:"queries"`
	Owner              *Owner           `json:"owner,omitempty"`
	InteractionSummary string           `json:"interactionSummary,omitempty"`
}

// ActivityDetail assembles the thread of one session
func (e *Engine) ActivityDetail(ctx context.Context, id string, now time.Time) (Detail, error) {
	s, err := e.src.Session(ctx, id)
	if err != nil {
		return Detail{}, unavailable(err, "detail.session")
	}
	th, err := e.src.Thread(ctx, s.ID)
	if err != nil {
		return Detail{}, unavailable(err, "detail.thread")
	}

	// counts follow the thread actually returned
	s.Messages, s.Documents, s.Queries = len(th.Messages), len(th.Documents), len(th.Queries)

	msgs := slices.Clone(th.Messages)
	slices.SortStableFunc(msgs, func(a, b Message) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	known := make(map[string]int, len(msgs))
	out := Detail{
		Activity:  NewActivity(s, now),
		Messages:  make([]ThreadMessage, 0, len(msgs)),
		Documents: []DocumentMarker{},
		Queries:   []QueryMarker{},
	}
	for i, m := range msgs {
		known[m.ID] = i
		out.Messages = append(out.Messages, ThreadMessage{
			ID:        m.ID,
			Sender:    m.Sender,
			Content:   m.Content,
			Type:      m.Type,
			Time:      ptime.Clock(m.CreatedAt.UTC()),
			CreatedAt: m.CreatedAt.UTC(),
		})
	}

	docs := slices.Clone(th.Documents)
	slices.SortStableFunc(docs, func(a, b Document) int { return a.CreatedAt.Compare(b.CreatedAt) })
	for _, d := range docs {
		mk := documentMarker(d)
		if i, ok := known[d.MessageID]; ok && d.MessageID != "" {
			out.Messages[i].Documents = append(out.Messages[i].Documents, mk)
			continue
		}
		out.Documents = append(out.Documents, mk)
	}

	qs := slices.Clone(th.Queries)
	slices.SortStableFunc(qs, func(a, b Query) int { return a.CreatedAt.Compare(b.CreatedAt) })
	for _, q := range qs {
		mk := QueryMarker{
			ID:            q.ID,
			Text:          q.Text,
			Type:          q.Type,
			ResultCount:   q.ResultCount,
			RetrievedInfo: fmt.Sprintf("Found %d results", q.ResultCount),
			CreatedAt:     q.CreatedAt.UTC(),
		}
		if i, ok := known[q.MessageID]; ok && q.MessageID != "" {
			out.Messages[i].Queries = append(out.Messages[i].Queries, mk)
			continue
		}
		out.Queries = append(out.Queries, mk)
	}

	if s.SharedTwin() {
		out.Owner = &Owner{ID: s.TwinOwnerID, Email: s.TwinOwnerEmail, Name: s.TwinOwnerName}
		out.InteractionSummary = fmt.Sprintf("Used %s's Twin", cmp.Or(s.TwinOwnerEmail, s.TwinOwnerName))
	}
	return out, nil
}

func documentMarker(d Document) DocumentMarker {
	return DocumentMarker{
		ID:        d.ID,
		Type:      d.Type,
		Title:     d.Title,
		Preview:   preview(d.Content, PreviewRunes),
		WordCount: d.WordCount,
		CreatedAt: d.CreatedAt.UTC(),
	}
}

// preview cuts s to n runes and marks the cut with an ellipsis
func preview(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n]) + "..."
}
