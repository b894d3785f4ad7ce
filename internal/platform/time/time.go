// Package time contains time related helpers
package time

import (
	"fmt"
	"time"
)

// Ago renders the gap between then and now as a short relative label
// future instants read as "Just now"
func Ago(now, then time.Time) string {
	secs := int64(now.Sub(then) / time.Second)
	switch {
	case secs < 60:
		return "Just now"
	case secs < 3600:
		return fmt.Sprintf("%d min ago", secs/60)
	case secs < 86400:
		return fmt.Sprintf("%dh ago", secs/3600)
	default:
		return fmt.Sprintf("%dd ago", secs/86400)
	}
}

// MinSec renders whole seconds as "Xm Ys"
func MinSec(seconds int64) string {
	if seconds <= 0 {
		return "0m 0s"
	}
	return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
}

// Clock renders the wall time of t as 03:04 PM
func Clock(t time.Time) string { return t.Format("03:04 PM") }
