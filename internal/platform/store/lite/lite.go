// Package lite provides an embedded SQLite client through database/sql
package lite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 driver
)

// DriverName is the database/sql driver registered by go-sqlite3
const DriverName = "sqlite3"

// Config configures the sqlite handle
type Config struct {
	// Path is a file path or ":memory:"
	Path string
	// ReadOnly opens the file with mode=ro
	ReadOnly bool
	// MaxConns caps open connections; in-memory databases are pinned to one
	MaxConns int
}

// Lite is an sqlite handle
type Lite struct {
	DB *sql.DB
}

// DSN renders the go-sqlite3 connection string for cfg
func DSN(cfg Config) string {
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		path = ":memory:"
	}
	q := url.Values{}
	q.Set("_busy_timeout", "5000")
	q.Set("_foreign_keys", "on")
	switch {
	case cfg.ReadOnly:
		q.Set("mode", "ro")
	case path != ":memory:":
		q.Set("_journal_mode", "WAL")
	}
	return fmt.Sprintf("file:%s?%s", path, q.Encode())
}

// Open opens the database and verifies it answers
func Open(ctx context.Context, cfg Config) (*Lite, error) {
	db, err := sql.Open(DriverName, DSN(cfg))
	if err != nil {
		return nil, err
	}
	switch {
	case cfg.Path == "" || cfg.Path == ":memory:":
		// every pooled connection would get its own empty in-memory database
		db.SetMaxOpenConns(1)
	case cfg.MaxConns > 0:
		db.SetMaxOpenConns(cfg.MaxConns)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Lite{DB: db}, nil
}

// Close closes the handle
func (l *Lite) Close() error {
	if l == nil || l.DB == nil {
		return nil
	}
	return l.DB.Close()
}
