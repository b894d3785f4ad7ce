package store

import "time"

// Config aggregates per backend configuration
type Config struct {
	AppName string

	PG   PGConfig
	CH   CHConfig
	Lite SQLiteConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// startup ping loop, defaults 20 attempts and 3s per ping
	ConnectRetries int
	PingTimeout    time.Duration
}

// CHConfig configures clickhouse connectivity
type CHConfig struct {
	Enabled bool
	URL     string

	// ClientName and ClientTag identify this process in system.query_log
	ClientName string
	ClientTag  string
}

// SQLiteConfig configures the embedded sqlite backend
type SQLiteConfig struct {
	Enabled  bool
	Path     string
	ReadOnly bool
	MaxConns int
	LogSQL   bool

	SlowQueryMs int
}
