package module

import "twinlytics/internal/platform/config"

// Options controls feed paging
type Options struct {
	DefaultLimit int
	MaxLimit     int
}

// FromConfig reads ACTIVITIES_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("ACTIVITIES_")
	return Options{
		DefaultLimit: c.MayInt("DEFAULT_LIMIT", 100),
		MaxLimit:     c.MayInt("MAX_LIMIT", 100),
	}
}
