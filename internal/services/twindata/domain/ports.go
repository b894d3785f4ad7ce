// Package domain defines the ports of the twin data module
package domain

import "twinlytics/internal/core/analytics"

// Backends the module can read from
const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// SourcePort is the guarded read port the analytics modules consume
type SourcePort = analytics.Source

// HealthPort reports which backend serves reads and how the breaker stands
type HealthPort interface {
	Backend() string
	Breaker() string
}
