// Package bind decodes JSON request bodies and validates them with struct tags
package bind

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entrans "github.com/go-playground/validator/v10/translations/en"

	perr "twinlytics/internal/platform/errors"
	"twinlytics/internal/platform/logger"
)

// DefaultMaxBytes caps a body when Limits leaves MaxBytes at zero
const DefaultMaxBytes = 1 << 20

// messages override the stock english text for tags the request types use
var messages = map[string]string{
	"min":           "{0} must be at least {1}",
	"max":           "{0} must be at most {1}",
	"datetime":      "{0} must be a date like {1}",
	"required_with": "{0} is required when {1} is set",
}

// Validator pairs go-playground/validator with an english translator
// field names in messages are the json names
type Validator struct {
	v  *validator.Validate
	tr ut.Translator
}

var shared = sync.OnceValue(newValidator)

// Default returns the process wide validator
func Default() *Validator { return shared() }

func newValidator() *Validator {
	loc := en.New()
	tr, _ := ut.New(loc, loc).GetTranslator("en")

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	if err := entrans.RegisterDefaultTranslations(v, tr); err != nil {
		logger.Named("bind").Warn().Err(err).Msg("default translations not registered")
	}
	for tag, text := range messages {
		_ = v.RegisterTranslation(tag, tr,
			func(t ut.Translator) error { return t.Add(tag, text, true) },
			func(t ut.Translator, fe validator.FieldError) string {
				s, _ := t.T(tag, fe.Field(), fe.Param())
				return s
			},
		)
	}
	return &Validator{v: v, tr: tr}
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "", "-":
		return f.Name
	}
	return name
}

// Struct validates s and reports the first failing field as ErrorCodeValidation
func (v *Validator) Struct(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) || len(fields) == 0 {
		logger.Named("bind").Error().Err(err).Msg("validator misuse")
		return perr.Wrap(err, perr.ErrorCodeValidation, "validation error")
	}
	fe := fields[0]
	return perr.WithField(perr.New(perr.ErrorCodeValidation, fe.Translate(v.tr)), fe.Field())
}

// Limits tunes Body; the zero value is strict with a 1MB cap
type Limits struct {
	MaxBytes     int64
	AllowUnknown bool
	AllowEmpty   bool
}

// bodyless methods decode an absent body into the zero value
func bodyless(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodDelete, http.MethodOptions:
		return true
	}
	return false
}

// Body decodes r's JSON body into T and validates it
// decode failures are ErrorCodeJSON, tag failures ErrorCodeValidation with the field set
func Body[T any](r *http.Request, lim ...Limits) (T, error) {
	var (
		out T
		l   Limits
	)
	if len(lim) > 0 {
		l = lim[0]
	}
	if l.MaxBytes <= 0 {
		l.MaxBytes = DefaultMaxBytes
	}
	if r.Body == nil || r.Body == http.NoBody {
		return out, empty(r, l)
	}
	defer r.Body.Close()

	dec := json.NewDecoder(io.LimitReader(r.Body, l.MaxBytes))
	if !l.AllowUnknown {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(&out); err != nil {
		if errors.Is(err, io.EOF) {
			return out, empty(r, l)
		}
		return out, perr.JSONErrf("invalid JSON: %v", err)
	}
	if dec.More() {
		return out, perr.JSONErrf("unexpected trailing data")
	}
	return out, Default().Struct(out)
}

func empty(r *http.Request, l Limits) error {
	if l.AllowEmpty || bodyless(r.Method) {
		return nil
	}
	return perr.JSONErrf("empty body")
}
