package repo

import (
	"context"
	"errors"

	"twinlytics/internal/core/analytics"
	"twinlytics/internal/core/window"
	"twinlytics/internal/modkit/repokit"
	perr "twinlytics/internal/platform/errors"
	"twinlytics/internal/platform/store"
)

// NewHybrid reads windowed messages, documents and queries from ClickHouse
// and everything else from the relational store
func NewHybrid(c store.Clickhouse) repokit.Binder[analytics.Source] {
	if c == nil {
		panic("twindata: nil clickhouse")
	}
	return repokit.BindFunc[analytics.Source](func(q repokit.Queryer) analytics.Source {
		return &hybridStore{sqlStore: sqlStore{q: q}, ch: chQuerier{c}}
	})
}

type hybridStore struct {
	sqlStore
	ch chQuerier
}

var _ analytics.Source = (*hybridStore)(nil)

const (
	chMessages = `SELECT id, session_id, sender, content, message_type, created_at FROM twinlytics.messages`

	chDocuments = `SELECT id, session_id, ifNull(message_id, ''), document_type, title, content,
	toInt64(word_count), created_at FROM twinlytics.documents`

	chQueries = `SELECT id, session_id, ifNull(message_id, ''), query_text, query_type,
	toInt64(results_count), created_at FROM twinlytics.queries`
)

// Messages returns messages created inside span from ClickHouse
func (h *hybridStore) Messages(ctx context.Context, span window.Span) ([]analytics.Message, error) {
	w := positionalWhere()
	w.span("created_at", span)
	return store.Many(ctx, h.ch, scanMessage, chMessages+w.String()+" ORDER BY created_at, id", w.args...)
}

// Documents returns documents created inside span from ClickHouse
func (h *hybridStore) Documents(ctx context.Context, span window.Span) ([]analytics.Document, error) {
	w := positionalWhere()
	w.span("created_at", span)
	return store.Many(ctx, h.ch, scanCHDocument, chDocuments+w.String()+" ORDER BY created_at, id", w.args...)
}

// Queries returns queries created inside span from ClickHouse
func (h *hybridStore) Queries(ctx context.Context, span window.Span) ([]analytics.Query, error) {
	w := positionalWhere()
	w.span("created_at", span)
	return store.Many(ctx, h.ch, scanCHQuery, chQueries+w.String()+" ORDER BY created_at, id", w.args...)
}

// the native driver only scans Int64 into int64 destinations
func scanCHDocument(r store.Row) (analytics.Document, error) {
	var (
		d  analytics.Document
		wc int64
	)
	err := r.Scan(&d.ID, &d.SessionID, &d.MessageID, &d.Type, &d.Title, &d.Content, &wc, &d.CreatedAt)
	d.WordCount = int(wc)
	d.CreatedAt = d.CreatedAt.UTC()
	return d, err
}

func scanCHQuery(r store.Row) (analytics.Query, error) {
	var (
		x analytics.Query
		n int64
	)
	err := r.Scan(&x.ID, &x.SessionID, &x.MessageID, &x.Text, &x.Type, &n, &x.CreatedAt)
	x.ResultCount = int(n)
	x.CreatedAt = x.CreatedAt.UTC()
	return x, err
}

var errReadOnly = errors.New("twindata: clickhouse seam is read only")

// chQuerier lifts the read-only ClickHouse seam onto store.RowQuerier
type chQuerier struct{ c store.Clickhouse }

func (q chQuerier) Exec(context.Context, string, ...any) (store.CommandTag, error) {
	return nil, errReadOnly
}

func (q chQuerier) Query(ctx context.Context, sql string, args ...any) (store.Rows, error) {
	return q.c.Query(ctx, sql, args...)
}

func (q chQuerier) QueryRow(ctx context.Context, sql string, args ...any) store.Row {
	rows, err := q.c.Query(ctx, sql, args...)
	if err != nil {
		return errRow{err}
	}
	return &firstRow{rows: rows}
}

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

type firstRow struct{ rows store.Rows }

func (r *firstRow) Scan(dest ...any) error {
	defer r.rows.Close()
	if !r.rows.Next() {
		if err := r.rows.Err(); err != nil {
			return err
		}
		return perr.ErrNotFound
	}
	return r.rows.Scan(dest...)
}
