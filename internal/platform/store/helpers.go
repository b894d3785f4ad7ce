package store

import (
	"context"

	perr "twinlytics/internal/platform/errors"
)

// One scans exactly one row into T
// no row is perr.ErrNotFound, more than one is a DB error
func One[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), sql string, args ...any) (T, error) {
	var zero T
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return zero, perr.FromPostgres(err, "query one")
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return zero, perr.FromPostgres(err, "query one")
		}
		return zero, perr.ErrNotFound
	}
	item, err := scan(rows)
	if err != nil {
		return zero, perr.FromPostgres(err, "scan one")
	}
	if rows.Next() {
		return zero, perr.New(perr.ErrorCodeDB, "expected 1 row, got more")
	}
	return item, perr.FromPostgres(rows.Err(), "query one")
}

// Many scans every row into T in result order
func Many[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), sql string, args ...any) ([]T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, perr.FromPostgres(err, "query many")
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, perr.FromPostgres(err, "scan many")
		}
		out = append(out, item)
	}
	return out, perr.FromPostgres(rows.Err(), "query many")
}
