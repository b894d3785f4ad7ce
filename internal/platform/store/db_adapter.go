package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// dbAdapter implements TxRunner over database/sql for the sqlite backend
// database/sql has no tracer hook so every statement is timed here
type dbAdapter struct {
	db *sql.DB
	probe
}

// sqlConn is the query surface shared by *sql.DB and *sql.Tx
type sqlConn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (a *dbAdapter) Ping(ctx context.Context) error {
	if a == nil || a.db == nil {
		return errors.New("sqlite: nil adapter")
	}
	return a.db.PingContext(ctx)
}

func (a *dbAdapter) Close() error { return a.db.Close() }

func (a *dbAdapter) Exec(ctx context.Context, q string, args ...any) (CommandTag, error) {
	return dbQuerier{c: a.db, a: a}.Exec(ctx, q, args...)
}

func (a *dbAdapter) Query(ctx context.Context, q string, args ...any) (Rows, error) {
	return dbQuerier{c: a.db, a: a}.Query(ctx, q, args...)
}

func (a *dbAdapter) QueryRow(ctx context.Context, q string, args ...any) Row {
	return dbQuerier{c: a.db, a: a}.QueryRow(ctx, q, args...)
}

// Tx runs fn in a read only transaction; the engine never writes through this seam
func (a *dbAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return err
	}
	if err := fn(dbQuerier{c: tx, a: a}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

type dbQuerier struct {
	c sqlConn
	a *dbAdapter
}

func (d dbQuerier) Exec(ctx context.Context, q string, args ...any) (CommandTag, error) {
	start := time.Now()
	res, err := d.c.ExecContext(ctx, q, args...)
	d.a.emit(ctx, q, args, start, err)
	if err != nil {
		return nil, err
	}
	return resultTag{res}, nil
}

func (d dbQuerier) Query(ctx context.Context, q string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := d.c.QueryContext(ctx, q, args...)
	d.a.emit(ctx, q, args, start, err)
	if err != nil {
		return nil, err
	}
	return sqlRows{r: rs}, nil
}

func (d dbQuerier) QueryRow(ctx context.Context, q string, args ...any) Row {
	start := time.Now()
	r := d.c.QueryRowContext(ctx, q, args...)
	return tracedRow{
		r: r,
		after: func(scanErr error) {
			if errors.Is(scanErr, sql.ErrNoRows) {
				scanErr = nil
			}
			d.a.emit(ctx, q, args, start, scanErr)
		},
	}
}

// tracedRow reports the statement once Scan has run
type tracedRow struct {
	r     *sql.Row
	after func(error)
}

func (x tracedRow) Scan(dst ...any) error {
	err := x.r.Scan(dst...)
	x.after(err)
	return err
}

type sqlRows struct{ r *sql.Rows }

func (x sqlRows) Next() bool            { return x.r.Next() }
func (x sqlRows) Scan(dst ...any) error { return x.r.Scan(dst...) }
func (x sqlRows) Err() error            { return x.r.Err() }
func (x sqlRows) Close()                { _ = x.r.Close() }
func (x sqlRows) Columns() []string {
	cols, err := x.r.Columns()
	if err != nil {
		return nil
	}
	return cols
}

// resultTag renders sql.Result like a pg command tag
type resultTag struct{ r sql.Result }

func (t resultTag) RowsAffected() int64 {
	n, err := t.r.RowsAffected()
	if err != nil {
		return 0
	}
	return n
}

func (t resultTag) String() string { return fmt.Sprintf("ROWS %d", t.RowsAffected()) }
