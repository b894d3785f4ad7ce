package repokit

import (
	"context"
	"fmt"
	"time"
)

// GuardTimeout bounds the startup dependency check
const GuardTimeout = 5 * time.Second

type guarder interface {
	Guard(context.Context) error
}

// Guard runs the store's own guard under GuardTimeout
// the API refuses to start when any configured backend fails it
func Guard(ctx context.Context, st guarder) error {
	ctx, cancel := context.WithTimeout(ctx, GuardTimeout)
	defer cancel()
	if err := st.Guard(ctx); err != nil {
		return fmt.Errorf("dependency guard failed: %w", err)
	}
	return nil
}
