package module

import (
	"sync"
	"testing"
)

// registry tests share global state and do not run in parallel

func TestRegistry_NamesSortedAndDeduped(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	for _, n := range []string{"meta", "dashboard", "twindata", "activities", "dashboard"} {
		Register(n)
	}
	got := Names()
	want := []string{"activities", "dashboard", "meta", "twindata"}
	if len(got) != len(want) {
		t.Fatalf("names = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("names = %v, want %v", got, want)
		}
	}
}

func TestRegistry_Reset(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	Register("meta")
	Reset()
	if got := Names(); len(got) != 0 {
		t.Fatalf("names after reset = %v", got)
	}
}

func TestRegistry_ConcurrentUse(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() { defer wg.Done(); Register("dashboard") }()
		go func() { defer wg.Done(); _ = Names() }()
	}
	wg.Wait()
	if got := Names(); len(got) != 1 || got[0] != "dashboard" {
		t.Fatalf("names = %v", got)
	}
}
