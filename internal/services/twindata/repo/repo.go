// Package repo reads twin conversation facts for the analytics engine
//
// The SQL is written once for Postgres and SQLite: placeholders are $1..$n,
// each used once and numbered in order of appearance, and ids are text
package repo

import (
	"context"
	"strconv"
	"strings"
	"time"

	"twinlytics/internal/core/analytics"
	"twinlytics/internal/core/window"
	"twinlytics/internal/modkit/repokit"
	perr "twinlytics/internal/platform/errors"
	"twinlytics/internal/platform/store"
)

// NewSQL constructs a binder over the relational store (Postgres or SQLite)
func NewSQL() repokit.Binder[analytics.Source] {
	return repokit.BindFunc[analytics.Source](func(q repokit.Queryer) analytics.Source {
		return &sqlStore{q: q}
	})
}

type sqlStore struct {
	q repokit.Queryer
}

var _ analytics.Source = (*sqlStore)(nil)

// where accumulates AND conditions, writing each ? in cond as ph(argument number)
type where struct {
	conds []string
	args  []any
	ph    func(n int) string
}

// numberedWhere renders $1..$n for Postgres and SQLite
func numberedWhere() *where {
	return &where{ph: func(n int) string { return "$" + strconv.Itoa(n) }}
}

// positionalWhere renders plain ? for ClickHouse
func positionalWhere() *where {
	return &where{ph: func(int) string { return "?" }}
}

func (w *where) add(cond string, v any) {
	w.args = append(w.args, v)
	w.conds = append(w.conds, strings.Replace(cond, "?", w.ph(len(w.args)), 1))
}

func (w *where) span(col string, s window.Span) {
	if !s.From.IsZero() {
		w.add(col+" >= ?", s.From.UTC())
	}
	if !s.Until.IsZero() {
		w.add(col+" < ?", s.Until.UTC())
	}
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

const sessionCols = `
	s.id, s.user_id, COALESCE(s.twin_id, ''), s.started_at,
	COALESCE(s.title, ''), COALESCE(s.topic, ''), COALESCE(s.platform, ''), COALESCE(s.device_type, ''),
	s.duration_seconds,
	u.email, COALESCE(u.full_name, ''), COALESCE(u.organization, ''), COALESCE(u.department, ''),
	COALESCE(t.name, ''), COALESCE(t.owner_id, ''), COALESCE(o.email, ''), COALESCE(o.full_name, ''),
	(SELECT COUNT(*) FROM messages m WHERE m.session_id = s.id),
	(SELECT COUNT(*) FROM documents d WHERE d.session_id = s.id),
	(SELECT COUNT(*) FROM queries x WHERE x.session_id = s.id)
FROM sessions s
JOIN users u ON u.id = s.user_id
LEFT JOIN twins t ON t.id = s.twin_id
LEFT JOIN users o ON o.id = t.owner_id`

func scanSession(r store.Row) (analytics.Session, error) {
	var s analytics.Session
	err := r.Scan(
		&s.ID, &s.UserID, &s.TwinID, &s.StartedAt,
		&s.Title, &s.Topic, &s.Platform, &s.Device,
		&s.DurationSeconds,
		&s.UserEmail, &s.UserName, &s.Organization, &s.Department,
		&s.TwinName, &s.TwinOwnerID, &s.TwinOwnerEmail, &s.TwinOwnerName,
		&s.Messages, &s.Documents, &s.Queries,
	)
	s.StartedAt = s.StartedAt.UTC()
	return s, err
}

// Sessions returns sessions started inside span with denormalized user, twin and child counts
func (r *sqlStore) Sessions(ctx context.Context, span window.Span) ([]analytics.Session, error) {
	w := numberedWhere()
	w.span("s.started_at", span)
	return store.Many(ctx, r.q, scanSession, "SELECT"+sessionCols+w.String()+" ORDER BY s.started_at, s.id", w.args...)
}

// Session looks up one session by id
func (r *sqlStore) Session(ctx context.Context, id string) (analytics.Session, error) {
	s, err := store.One(ctx, r.q, scanSession, "SELECT"+sessionCols+" WHERE s.id = $1", id)
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		return s, perr.WithField(perr.NotFoundf("activity %s not found", id), "id")
	}
	return s, err
}

// SessionStarts returns the minimal lifetime history rows inside span
func (r *sqlStore) SessionStarts(ctx context.Context, span window.Span) ([]analytics.SessionStart, error) {
	w := numberedWhere()
	w.span("started_at", span)
	return store.Many(ctx, r.q, func(row store.Row) (analytics.SessionStart, error) {
		var s analytics.SessionStart
		err := row.Scan(&s.UserID, &s.TwinID, &s.StartedAt)
		s.StartedAt = s.StartedAt.UTC()
		return s, err
	}, "SELECT user_id, COALESCE(twin_id, ''), started_at FROM sessions"+w.String()+" ORDER BY started_at", w.args...)
}

const messageCols = `SELECT id, session_id, sender, content, COALESCE(message_type, 'general'), created_at FROM messages`

func scanMessage(r store.Row) (analytics.Message, error) {
	var (
		m      analytics.Message
		sender string
		typ    string
	)
	err := r.Scan(&m.ID, &m.SessionID, &sender, &m.Content, &typ, &m.CreatedAt)
	m.Sender, m.Type = analytics.Sender(sender), analytics.MessageType(typ)
	m.CreatedAt = m.CreatedAt.UTC()
	return m, err
}

// Messages returns messages created inside span
func (r *sqlStore) Messages(ctx context.Context, span window.Span) ([]analytics.Message, error) {
	w := numberedWhere()
	w.span("created_at", span)
	return store.Many(ctx, r.q, scanMessage, messageCols+w.String()+" ORDER BY created_at, id", w.args...)
}

const documentCols = `SELECT id, session_id, COALESCE(message_id, ''), COALESCE(document_type, ''), title, content,
	COALESCE(word_count, 0), created_at FROM documents`

func scanDocument(r store.Row) (analytics.Document, error) {
	var d analytics.Document
	err := r.Scan(&d.ID, &d.SessionID, &d.MessageID, &d.Type, &d.Title, &d.Content, &d.WordCount, &d.CreatedAt)
	d.CreatedAt = d.CreatedAt.UTC()
	return d, err
}

// Documents returns documents created inside span
func (r *sqlStore) Documents(ctx context.Context, span window.Span) ([]analytics.Document, error) {
	w := numberedWhere()
	w.span("created_at", span)
	return store.Many(ctx, r.q, scanDocument, documentCols+w.String()+" ORDER BY created_at, id", w.args...)
}

const queryCols = `SELECT id, session_id, COALESCE(message_id, ''), query_text, COALESCE(query_type, ''),
	COALESCE(results_count, 0), created_at FROM queries`

func scanQuery(r store.Row) (analytics.Query, error) {
	var x analytics.Query
	err := r.Scan(&x.ID, &x.SessionID, &x.MessageID, &x.Text, &x.Type, &x.ResultCount, &x.CreatedAt)
	x.CreatedAt = x.CreatedAt.UTC()
	return x, err
}

// Queries returns queries created inside span
func (r *sqlStore) Queries(ctx context.Context, span window.Span) ([]analytics.Query, error) {
	w := numberedWhere()
	w.span("created_at", span)
	return store.Many(ctx, r.q, scanQuery, queryCols+w.String()+" ORDER BY created_at, id", w.args...)
}

// Thread returns every message, document and query of one session
func (r *sqlStore) Thread(ctx context.Context, sessionID string) (analytics.Thread, error) {
	var (
		th  analytics.Thread
		err error
	)
	if th.Messages, err = store.Many(ctx, r.q, scanMessage, messageCols+" WHERE session_id = $1 ORDER BY created_at, id", sessionID); err != nil {
		return th, err
	}
	if th.Documents, err = store.Many(ctx, r.q, scanDocument, documentCols+" WHERE session_id = $1 ORDER BY created_at, id", sessionID); err != nil {
		return th, err
	}
	th.Queries, err = store.Many(ctx, r.q, scanQuery, queryCols+" WHERE session_id = $1 ORDER BY created_at, id", sessionID)
	return th, err
}

// StatementTimeout returns a begin hook that bounds every Postgres statement in the tx
func StatementTimeout(d time.Duration) repokit.BeginHook {
	return func(ctx context.Context, q repokit.Queryer) error {
		if d <= 0 {
			return nil
		}
		_, err := q.Exec(ctx, "SET LOCAL statement_timeout = "+strconv.FormatInt(d.Milliseconds(), 10))
		return err
	}
}
