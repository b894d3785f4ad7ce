package time

import (
	"testing"
	"time"
)

func TestAgo(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		then time.Time
		want string
	}{
		{now.Add(-30 * time.Second), "Just now"},
		{now.Add(time.Hour), "Just now"},
		{now.Add(-59 * time.Second), "Just now"},
		{now.Add(-60 * time.Second), "1 min ago"},
		{now.Add(-59 * time.Minute), "59 min ago"},
		{now.Add(-2 * time.Hour), "2h ago"},
		{now.Add(-23*time.Hour - 59*time.Minute), "23h ago"},
		{now.Add(-72 * time.Hour), "3d ago"},
	}
	for _, c := range cases {
		if got := Ago(now, c.then); got != c.want {
			t.Fatalf("Ago(%v) = %q, want %q", now.Sub(c.then), got, c.want)
		}
	}
}

func TestMinSecAndClock(t *testing.T) {
	t.Parallel()

	if got := MinSec(0); got != "0m 0s" {
		t.Fatalf("MinSec(0) = %q", got)
	}
	if got := MinSec(125); got != "2m 5s" {
		t.Fatalf("MinSec(125) = %q", got)
	}
	if got := Clock(time.Date(2025, 1, 1, 15, 4, 0, 0, time.UTC)); got != "03:04 PM" {
		t.Fatalf("Clock = %q", got)
	}
}
