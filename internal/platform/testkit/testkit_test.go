package testkit

import "testing"

var dial = func() string { return "real" }

func TestMustPanic(t *testing.T) {
	t.Parallel()
	MustPanic(t, func() { panic("boom") })
}

func TestMustContain(t *testing.T) {
	t.Parallel()
	MustContain(t, `{"level":"info","component":"dashboard"}`, `"component":"dashboard"`)
}

func TestSwapRestores(t *testing.T) {
	t.Run("swapped", func(t *testing.T) {
		Serial(t)
		Swap(t, &dial, func() string { return "fake" })
		if got := dial(); got != "fake" {
			t.Fatalf("dial = %q", got)
		}
	})
	if got := dial(); got != "real" {
		t.Fatalf("dial after cleanup = %q", got)
	}
}
