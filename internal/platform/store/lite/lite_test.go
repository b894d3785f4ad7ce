package lite

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func TestDSN(t *testing.T) {
	t.Parallel()

	mem := DSN(Config{})
	if !strings.HasPrefix(mem, "file::memory:?") || strings.Contains(mem, "_journal_mode") {
		t.Fatalf("memory dsn = %q", mem)
	}
	ro := DSN(Config{Path: "/data/twin.db", ReadOnly: true})
	if !strings.Contains(ro, "mode=ro") || strings.Contains(ro, "_journal_mode") {
		t.Fatalf("read only dsn = %q", ro)
	}
	rw := DSN(Config{Path: "/data/twin.db"})
	if !strings.HasPrefix(rw, "file:/data/twin.db?") || !strings.Contains(rw, "_journal_mode=WAL") {
		t.Fatalf("file dsn = %q", rw)
	}
}

func TestOpen_MemoryRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	l, err := Open(ctx, Config{Path: ":memory:"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer l.Close()

	if _, err := l.DB.ExecContext(ctx, `CREATE TABLE t (v INTEGER)`); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := l.DB.ExecContext(ctx, `INSERT INTO t (v) VALUES (?)`, 7); err != nil {
		t.Fatalf("insert: %v", err)
	}
	var v int
	if err := l.DB.QueryRowContext(ctx, `SELECT v FROM t`).Scan(&v); err != nil || v != 7 {
		t.Fatalf("select v=%d err=%v", v, err)
	}
}

func TestOpen_File(t *testing.T) {
	t.Parallel()

	l, err := Open(context.Background(), Config{Path: filepath.Join(t.TempDir(), "twin.db"), MaxConns: 2})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	var nilLite *Lite
	if err := nilLite.Close(); err != nil {
		t.Fatalf("nil Close: %v", err)
	}
}
