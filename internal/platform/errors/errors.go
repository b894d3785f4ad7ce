// Package errors is the structured error type every layer returns
// import it as perr
package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies a failure for callers, metrics and the wire
type ErrorCode uint16

const (
	ErrorCodeUnknown ErrorCode = iota
	// ErrorCodePanic marks a panic caught by the recover middleware
	ErrorCodePanic
	// ErrorCodeUnavailable means the twin data backend cannot answer right now
	ErrorCodeUnavailable
	ErrorCodeValidation
	ErrorCodeJSON
	ErrorCodeNotFound
	// ErrorCodeDB is a store failure that retrying will not fix
	ErrorCodeDB
	// ErrorCodeInvalidRange is a malformed or inverted date window
	ErrorCodeInvalidRange
	// ErrorCodeInvalidPage is a page or limit out of bounds
	ErrorCodeInvalidPage
)

var codes = [...]struct {
	name   string
	status int
}{
	ErrorCodeUnknown:      {"unknown", http.StatusInternalServerError},
	ErrorCodePanic:        {"panic", http.StatusInternalServerError},
	ErrorCodeUnavailable:  {"unavailable", http.StatusServiceUnavailable},
	ErrorCodeValidation:   {"validation", http.StatusBadRequest},
	ErrorCodeJSON:         {"invalid_json", http.StatusBadRequest},
	ErrorCodeNotFound:     {"not_found", http.StatusNotFound},
	ErrorCodeDB:           {"db", http.StatusInternalServerError},
	ErrorCodeInvalidRange: {"invalid_range", http.StatusBadRequest},
	ErrorCodeInvalidPage:  {"invalid_page", http.StatusBadRequest},
}

func (c ErrorCode) known() bool { return int(c) < len(codes) }

// String is the wire name; out of range codes render as unknown
func (c ErrorCode) String() string {
	if !c.known() {
		return codes[ErrorCodeUnknown].name
	}
	return codes[c].name
}

// MarshalText writes the wire name
func (c ErrorCode) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText reads a wire name back; unknown names decode as ErrorCodeUnknown
func (c *ErrorCode) UnmarshalText(b []byte) error {
	*c = ErrorCodeUnknown
	for i, info := range codes {
		if info.name == string(b) {
			*c = ErrorCode(i)
			break
		}
	}
	return nil
}

// HTTPStatusCode maps a code to its response status
func HTTPStatusCode(c ErrorCode) int {
	if !c.known() {
		return http.StatusInternalServerError
	}
	return codes[c].status
}

// ErrNotFound is what single row lookups return when nothing matches
var ErrNotFound = New(ErrorCodeNotFound, "not found")

// Error carries a developer message, a machine code and optionally the offending input field
type Error struct {
	code  ErrorCode
	msg   string
	field string
	op    string
	cause error
}

func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.cause == nil:
		return e.msg
	default:
		return e.msg + ": " + e.cause.Error()
	}
}

func (e *Error) Unwrap() error { return e.cause }

func (e *Error) Code() ErrorCode { return e.code }

func (e *Error) Field() string { return e.field }

// Op names the engine operation that failed, eg "detail.thread"
func (e *Error) Op() string { return e.op }

// Wire is the error half of the response envelope
type Wire struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

// WireFrom renders any error; foreign ones become unknown with their text
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	e, ok := As(err)
	if !ok {
		return Wire{Code: ErrorCodeUnknown, Message: err.Error()}
	}
	return Wire{Code: e.code, Message: e.msg, Field: e.field}
}

// As finds the outermost *Error in err's chain
func As(err error) (*Error, bool) {
	var e *Error
	ok := stderrs.As(err, &e)
	return e, ok
}

// Root unwraps to the innermost cause
func Root(err error) error {
	for err != nil {
		next := stderrs.Unwrap(err)
		if next == nil {
			break
		}
		err = next
	}
	return err
}

// CodeOf is ErrorCodeUnknown for anything that is not an *Error
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

func HTTPStatus(err error) int { return HTTPStatusCode(CodeOf(err)) }

// Label is the metrics outcome for err: "ok" or the code's wire name
func Label(err error) string {
	if err == nil {
		return "ok"
	}
	return CodeOf(err).String()
}

// with copies the outermost *Error and applies fn; foreign errors pass through
func with(err error, fn func(*Error)) error {
	e, ok := As(err)
	if !ok {
		return err
	}
	c := *e
	fn(&c)
	return &c
}

// WithField names the request field err is about
func WithField(err error, field string) error {
	return with(err, func(e *Error) { e.field = field })
}

// WithOp tags err with the operation that produced it
func WithOp(err error, op string) error {
	return with(err, func(e *Error) { e.op = op })
}

func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

func Newf(code ErrorCode, format string, a ...any) error {
	return New(code, fmt.Sprintf(format, a...))
}

// Wrap keeps cause reachable through errors.Is and errors.As
func Wrap(cause error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, cause: cause}
}

func NotFoundf(format string, a ...any) error { return Newf(ErrorCodeNotFound, format, a...) }

func JSONErrf(format string, a ...any) error { return Newf(ErrorCodeJSON, format, a...) }

func PanicErrf(format string, a ...any) error { return Newf(ErrorCodePanic, format, a...) }

func InvalidRangef(format string, a ...any) error { return Newf(ErrorCodeInvalidRange, format, a...) }

func InvalidPagef(format string, a ...any) error { return Newf(ErrorCodeInvalidPage, format, a...) }
