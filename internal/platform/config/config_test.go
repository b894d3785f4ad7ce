package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	kit "twinlytics/internal/platform/testkit"
)

func TestPrefix(t *testing.T) {
	t.Parallel()

	c := New().Prefix("CORE_").Prefix("API_")
	if got := c.key("PORT"); got != "CORE_API_PORT" {
		t.Fatalf("key = %q", got)
	}
}

func TestMustString(t *testing.T) {
	c := New().Prefix("CFGT_")
	t.Setenv("CFGT_DBURL", "  postgres://localhost/twins ")
	if got := c.MustString("DBURL"); got != "postgres://localhost/twins" {
		t.Fatalf("MustString = %q", got)
	}
	t.Setenv("CFGT_BLANK", "   ")
	kit.MustPanic(t, func() { _ = c.MustString("BLANK") })
	kit.MustPanic(t, func() { _ = c.MustString("MISSING") })
}

func TestMay(t *testing.T) {
	c := New().Prefix("CFGT_")
	t.Setenv("CFGT_INFLIGHT", "8")
	t.Setenv("CFGT_INFLIGHT_BAD", "eight")
	t.Setenv("CFGT_SWAGGER", "false")
	t.Setenv("CFGT_SWAGGER_BAD", "nah")
	t.Setenv("CFGT_TIMEOUT", "250ms")
	t.Setenv("CFGT_TIMEOUT_BAD", "soon")
	t.Setenv("CFGT_PATH", " twins.db ")

	if got := c.MayInt("INFLIGHT", 32); got != 8 {
		t.Fatalf("MayInt = %d", got)
	}
	if got := c.MayInt("INFLIGHT_BAD", 32); got != 32 {
		t.Fatalf("MayInt bad = %d", got)
	}
	if got := c.MayBool("SWAGGER", true); got {
		t.Fatalf("MayBool = %v", got)
	}
	if got := c.MayBool("SWAGGER_BAD", true); !got {
		t.Fatalf("MayBool bad = %v", got)
	}
	if got := c.MayDuration("TIMEOUT", time.Second); got != 250*time.Millisecond {
		t.Fatalf("MayDuration = %v", got)
	}
	if got := c.MayDuration("TIMEOUT_BAD", time.Second); got != time.Second {
		t.Fatalf("MayDuration bad = %v", got)
	}
	if got := c.MayString("PATH", "x.db"); got != "twins.db" {
		t.Fatalf("MayString = %q", got)
	}
	if got := c.MayString("NOPE", "x.db"); got != "x.db" {
		t.Fatalf("MayString default = %q", got)
	}
}

func TestMayCSV(t *testing.T) {
	c := New().Prefix("CFGT_")
	def := []string{"*"}

	cases := []struct {
		name, val string
		want      []string
	}{
		{"unset", "", def},
		{"blanks only", " , ,  ,", def},
		{"trimmed", " https://a.example , ,https://b.example", []string{"https://a.example", "https://b.example"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("CFGT_ORIGINS", tc.val)
			if diff := cmp.Diff(tc.want, c.MayCSV("ORIGINS", def)); diff != "" {
				t.Fatalf("MayCSV (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMayEnum(t *testing.T) {
	c := New().Prefix("CFGT_")

	if got := c.MayEnum("BACKEND", "postgres", "postgres", "sqlite"); got != "postgres" {
		t.Fatalf("default = %q", got)
	}
	if got := c.MayEnum("BACKEND", "", "postgres", "sqlite"); got != "" {
		t.Fatalf("empty default = %q", got)
	}
	t.Setenv("CFGT_BACKEND", "SQLite")
	if got := c.MayEnum("BACKEND", "postgres", "postgres", "sqlite"); got != "SQLite" {
		t.Fatalf("case folded = %q", got)
	}
	t.Setenv("CFGT_BACKEND", "mysql")
	kit.MustPanic(t, func() { _ = c.MayEnum("BACKEND", "postgres", "postgres", "sqlite") })
}

func TestLoadDotenv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("DOTENV_FRESH=from-file\nDOTENV_SET=from-file\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("DOTENV_SET", "from-env")
	t.Setenv("DOTENV_FRESH", "")
	os.Unsetenv("DOTENV_FRESH")

	if err := LoadDotenv(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadDotenv: %v", err)
	}
	if got := os.Getenv("DOTENV_FRESH"); got != "from-file" {
		t.Fatalf("DOTENV_FRESH = %q", got)
	}
	if got := os.Getenv("DOTENV_SET"); got != "from-env" {
		t.Fatalf("existing env overwritten: %q", got)
	}
	if err := LoadDotenv(filepath.Join(dir, "nope.env")); err != nil {
		t.Fatalf("LoadDotenv nothing present: %v", err)
	}
}
