package errors

import (
	"context"
	stderrs "errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// sqlstate is what the read path makes of one Postgres error code
type sqlstate struct {
	code  ErrorCode
	retry bool
}

// states lists the SQLSTATEs the read path treats specially; anything else is ErrorCodeDB
var states = map[string]sqlstate{
	"22001": {code: ErrorCodeValidation},               // string_data_right_truncation
	"22P02": {code: ErrorCodeValidation},               // invalid_text_representation, a bad uuid cast
	"40001": {code: ErrorCodeDB, retry: true},          // serialization_failure
	"40P01": {code: ErrorCodeDB, retry: true},          // deadlock_detected
	"55P03": {code: ErrorCodeDB, retry: true},          // lock_not_available
	"57014": {code: ErrorCodeUnavailable},              // query_canceled, statement_timeout fired
	"57P01": {code: ErrorCodeUnavailable},              // admin_shutdown
	"57P03": {code: ErrorCodeUnavailable, retry: true}, // cannot_connect_now
	"53300": {code: ErrorCodeUnavailable},              // too_many_connections
}

// lockHints match drivers that only report contention as text, sqlite mostly
var lockHints = []string{
	"deadlock detected",
	"could not serialize access",
	"database is locked",
	"canceling statement due to lock timeout",
}

// ExtractPgError finds a *pgconn.PgError at the root of err
func ExtractPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	ok := stderrs.As(Root(err), &pgErr)
	return pgErr, ok
}

// DBErrorCode classifies a Postgres failure; ok is false without a PgError
func DBErrorCode(err error) (ErrorCode, bool) {
	pgErr, ok := ExtractPgError(err)
	if !ok {
		return ErrorCodeUnknown, false
	}
	if st, known := states[pgErr.Code]; known {
		return st.code, true
	}
	return ErrorCodeDB, true
}

// FromPostgres gives a store error its code; errors already classified pass through
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	if _, ok := As(err); ok {
		return err
	}
	code, _ := DBErrorCode(err)
	if code == ErrorCodeUnknown {
		code = ErrorCodeDB
	}
	return Wrap(err, code, msg)
}

// IsRetryable reports transient contention; a cancelled or expired ctx never is
func IsRetryable(err error) bool {
	if err == nil || stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}
	if pgErr, ok := ExtractPgError(err); ok {
		return states[pgErr.Code].retry
	}
	msg := strings.ToLower(Root(err).Error())
	for _, h := range lockHints {
		if strings.Contains(msg, h) {
			return true
		}
	}
	return false
}
