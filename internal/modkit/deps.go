package modkit

import (
	"twinlytics/internal/modkit/repokit"
	"twinlytics/internal/platform/config"
	"twinlytics/internal/platform/logger"
	"twinlytics/internal/platform/store"
)

// Deps holds the shared dependencies handed to every module
// any store seam may be nil when that backend is not configured
type Deps struct {
	Log  logger.Logger
	Cfg  config.Conf
	PG   repokit.TxRunner
	CH   store.Clickhouse
	Lite repokit.TxRunner
}

