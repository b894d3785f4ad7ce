// Package analyticstest provides an in-memory analytics.Source for tests
package analyticstest

import (
	"context"
	"sync/atomic"
	"time"

	"twinlytics/internal/core/analytics"
	"twinlytics/internal/core/window"
	perr "twinlytics/internal/platform/errors"
)

// Source serves fixed rows; session child counts are used as given
// Err, when set, is returned by every call
type Source struct {
	SessionRows  []analytics.Session
	MessageRows  []analytics.Message
	DocumentRows []analytics.Document
	QueryRows    []analytics.Query

	Err error

	calls atomic.Int64
}

var _ analytics.Source = (*Source)(nil)

// Calls reports how many port calls were made
func (s *Source) Calls() int { return int(s.calls.Load()) }

func (s *Source) enter(ctx context.Context) error {
	s.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.Err
}

func within[T any](rows []T, span window.Span, at func(T) time.Time) []T {
	var out []T
	for _, r := range rows {
		if span.Contains(at(r)) {
			out = append(out, r)
		}
	}
	return out
}

func (s *Source) Sessions(ctx context.Context, span window.Span) ([]analytics.Session, error) {
	if err := s.enter(ctx); err != nil {
		return nil, err
	}
	return within(s.SessionRows, span, func(x analytics.Session) time.Time { return x.StartedAt }), nil
}

func (s *Source) Messages(ctx context.Context, span window.Span) ([]analytics.Message, error) {
	if err := s.enter(ctx); err != nil {
		return nil, err
	}
	return within(s.MessageRows, span, func(x analytics.Message) time.Time { return x.CreatedAt }), nil
}

func (s *Source) Documents(ctx context.Context, span window.Span) ([]analytics.Document, error) {
	if err := s.enter(ctx); err != nil {
		return nil, err
	}
	return within(s.DocumentRows, span, func(x analytics.Document) time.Time { return x.CreatedAt }), nil
}

func (s *Source) Queries(ctx context.Context, span window.Span) ([]analytics.Query, error) {
	if err := s.enter(ctx); err != nil {
		return nil, err
	}
	return within(s.QueryRows, span, func(x analytics.Query) time.Time { return x.CreatedAt }), nil
}

func (s *Source) SessionStarts(ctx context.Context, span window.Span) ([]analytics.SessionStart, error) {
	if err := s.enter(ctx); err != nil {
		return nil, err
	}
	var out []analytics.SessionStart
	for _, x := range within(s.SessionRows, span, func(x analytics.Session) time.Time { return x.StartedAt }) {
		out = append(out, analytics.SessionStart{UserID: x.UserID, TwinID: x.TwinID, StartedAt: x.StartedAt})
	}
	return out, nil
}

func (s *Source) Session(ctx context.Context, id string) (analytics.Session, error) {
	if err := s.enter(ctx); err != nil {
		return analytics.Session{}, err
	}
	for _, x := range s.SessionRows {
		if x.ID == id {
			return x, nil
		}
	}
	return analytics.Session{}, perr.WithField(perr.NotFoundf("activity %s not found", id), "id")
}

func (s *Source) Thread(ctx context.Context, sessionID string) (analytics.Thread, error) {
	if err := s.enter(ctx); err != nil {
		return analytics.Thread{}, err
	}
	var th analytics.Thread
	for _, x := range s.MessageRows {
		if x.SessionID == sessionID {
			th.Messages = append(th.Messages, x)
		}
	}
	for _, x := range s.DocumentRows {
		if x.SessionID == sessionID {
			th.Documents = append(th.Documents, x)
		}
	}
	for _, x := range s.QueryRows {
		if x.SessionID == sessionID {
			th.Queries = append(th.Queries, x)
		}
	}
	return th, nil
}
