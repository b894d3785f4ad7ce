package module

import (
	"strings"
	"time"

	"twinlytics/internal/platform/config"
	dom "twinlytics/internal/services/twindata/domain"
)

// Options controls backend selection and the read guard
type Options struct {
	Backend         string
	QueryTimeout    time.Duration
	BreakerFailures int
	BreakerOpenFor  time.Duration
}

// FromConfig reads SERVICE_DATA_BACKEND and the TWINDATA_ prefix
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("TWINDATA_")
	return Options{
		Backend:         strings.ToLower(cfg.MayEnum("SERVICE_DATA_BACKEND", dom.BackendPostgres, dom.BackendPostgres, dom.BackendSQLite)),
		QueryTimeout:    c.MayDuration("QUERY_TIMEOUT", 10*time.Second),
		BreakerFailures: c.MayInt("BREAKER_FAILURES", 5),
		BreakerOpenFor:  c.MayDuration("BREAKER_OPEN_FOR", 30*time.Second),
	}
}
