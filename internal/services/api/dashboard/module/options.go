package module

import "twinlytics/internal/platform/config"

// Options controls dashboard defaults
type Options struct {
	LeaderboardLimit int
}

// FromConfig reads DASHBOARD_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("DASHBOARD_")
	return Options{
		LeaderboardLimit: c.MayInt("LEADERBOARD_LIMIT", 5),
	}
}
