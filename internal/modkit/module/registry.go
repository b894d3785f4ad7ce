package module

import (
	"slices"
	"sync"
)

var (
	mu      sync.RWMutex
	mounted = map[string]struct{}{}
)

// Register records a module as mounted
func Register(name string) {
	mu.Lock()
	mounted[name] = struct{}{}
	mu.Unlock()
}

// Names lists the mounted modules in name order
func Names() []string {
	mu.RLock()
	out := make([]string, 0, len(mounted))
	for n := range mounted {
		out = append(out, n)
	}
	mu.RUnlock()
	slices.Sort(out)
	return out
}

// Reset clears the registry for tests
func Reset() {
	mu.Lock()
	mounted = map[string]struct{}{}
	mu.Unlock()
}
