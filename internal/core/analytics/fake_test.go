package analytics

import (
	"context"
	"fmt"
	"time"

	"twinlytics/internal/core/window"
	perr "twinlytics/internal/platform/errors"
)

// memSource is an in-memory Source keyed by session id
type memSource struct {
	sessions []Session
	messages []Message
	docs     []Document
	queries  []Query

	err   error
	calls int
}

func (m *memSource) fail() error {
	m.calls++
	return m.err
}

func (m *memSource) Sessions(ctx context.Context, span window.Span) ([]Session, error) {
	if err := m.fail(); err != nil {
		return nil, err
	}
	var out []Session
	for _, s := range m.sessions {
		if span.Contains(s.StartedAt) {
			out = append(out, m.counted(s))
		}
	}
	return out, nil
}

// counted fills child counts the way a store join would
func (m *memSource) counted(s Session) Session {
	if s.Messages+s.Documents+s.Queries > 0 {
		return s
	}
	for _, x := range m.messages {
		if x.SessionID == s.ID {
			s.Messages++
		}
	}
	for _, x := range m.docs {
		if x.SessionID == s.ID {
			s.Documents++
		}
	}
	for _, x := range m.queries {
		if x.SessionID == s.ID {
			s.Queries++
		}
	}
	return s
}

func (m *memSource) Messages(ctx context.Context, span window.Span) ([]Message, error) {
	if err := m.fail(); err != nil {
		return nil, err
	}
	var out []Message
	for _, x := range m.messages {
		if span.Contains(x.CreatedAt) {
			out = append(out, x)
		}
	}
	return out, nil
}

func (m *memSource) Documents(ctx context.Context, span window.Span) ([]Document, error) {
	if err := m.fail(); err != nil {
		return nil, err
	}
	var out []Document
	for _, x := range m.docs {
		if span.Contains(x.CreatedAt) {
			out = append(out, x)
		}
	}
	return out, nil
}

func (m *memSource) Queries(ctx context.Context, span window.Span) ([]Query, error) {
	if err := m.fail(); err != nil {
		return nil, err
	}
	var out []Query
	for _, x := range m.queries {
		if span.Contains(x.CreatedAt) {
			out = append(out, x)
		}
	}
	return out, nil
}

func (m *memSource) SessionStarts(ctx context.Context, span window.Span) ([]SessionStart, error) {
	if err := m.fail(); err != nil {
		return nil, err
	}
	var out []SessionStart
	for _, s := range m.sessions {
		if span.Contains(s.StartedAt) {
			out = append(out, SessionStart{UserID: s.UserID, TwinID: s.TwinID, StartedAt: s.StartedAt})
		}
	}
	return out, nil
}

func (m *memSource) Session(ctx context.Context, id string) (Session, error) {
	if err := m.fail(); err != nil {
		return Session{}, err
	}
	for _, s := range m.sessions {
		if s.ID == id {
			return m.counted(s), nil
		}
	}
	return Session{}, perr.NotFoundf("session %s not found", id)
}

func (m *memSource) Thread(ctx context.Context, sessionID string) (Thread, error) {
	if err := m.fail(); err != nil {
		return Thread{}, err
	}
	var th Thread
	for _, x := range m.messages {
		if x.SessionID == sessionID {
			th.Messages = append(th.Messages, x)
		}
	}
	for _, x := range m.docs {
		if x.SessionID == sessionID {
			th.Documents = append(th.Documents, x)
		}
	}
	for _, x := range m.queries {
		if x.SessionID == sessionID {
			th.Queries = append(th.Queries, x)
		}
	}
	return th, nil
}

func at(date string, hour int) time.Time {
	d, err := time.Parse(window.DateLayout, date)
	if err != nil {
		panic(err)
	}
	return d.Add(time.Duration(hour) * time.Hour)
}

func sess(id, user, twin, date string, hour int) Session {
	return Session{ID: id, UserID: user, TwinID: twin, TwinOwnerID: user, StartedAt: at(date, hour), UserEmail: user + "@example.com"}
}

func secs(n int64) *int64 { return &n }

func sid(i int) string { return fmt.Sprintf("s%03d", i) }
