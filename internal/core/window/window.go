// Package window normalizes calendar date ranges and enumerates their buckets
//
// Dates are whole UTC days. A Range is inclusive on both ends, while the Span handed
// to storage is half open so a session at 23:59:59.999 on the end day still counts
package window

import (
	"iter"
	"strings"
	"time"

	perr "twinlytics/internal/platform/errors"
)

// DateLayout is the textual date form accepted on every boundary
const DateLayout = "2006-01-02"

// Day is one calendar day
const Day = 24 * time.Hour

// MaxDays bounds the length of a Range, roughly one century
const MaxDays = 36600

// Range is an inclusive run of calendar days
type Range struct {
	Start time.Time
	End   time.Time
}

// Span is a half open instant interval [From, Until)
// a zero bound means the side is open
type Span struct {
	From  time.Time
	Until time.Time
}

// Parse validates two YYYY-MM-DD strings and returns the Range they bound
func Parse(start, end string) (Range, error) {
	s, err := time.Parse(DateLayout, strings.TrimSpace(start))
	if err != nil {
		return Range{}, perr.WithField(perr.InvalidRangef("start date %q is not a valid YYYY-MM-DD date", start), "start_date")
	}
	e, err := time.Parse(DateLayout, strings.TrimSpace(end))
	if err != nil {
		return Range{}, perr.WithField(perr.InvalidRangef("end date %q is not a valid YYYY-MM-DD date", end), "end_date")
	}
	return New(s, e)
}

// New builds a Range from two instants, truncating both to their UTC day
func New(start, end time.Time) (Range, error) {
	s, e := Truncate(start), Truncate(end)
	if s.After(e) {
		return Range{}, perr.InvalidRangef("start date %s is after end date %s", s.Format(DateLayout), e.Format(DateLayout))
	}
	r := Range{Start: s, End: e}
	if n := r.Days(); n > MaxDays {
		return Range{}, perr.InvalidRangef("range spans %d days, at most %d allowed", n, MaxDays)
	}
	return r, nil
}

// MustParse is Parse for fixtures and constants
func MustParse(start, end string) Range {
	r, err := Parse(start, end)
	if err != nil {
		panic(err)
	}
	return r
}

// Truncate returns midnight UTC of the day t falls on
func Truncate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// dayNumber counts whole days since the Unix epoch; time.Duration would saturate
// after about 292 years
func dayNumber(t time.Time) int64 {
	return Truncate(t).Unix() / 86400
}

// DaysBetween is the number of calendar days from a's day to b's day
func DaysBetween(a, b time.Time) int {
	return int(dayNumber(b) - dayNumber(a))
}

// Days is the inclusive day count D = end - start + 1
func (r Range) Days() int {
	return DaysBetween(r.Start, r.End) + 1
}

// Previous returns the immediately preceding range of equal length
func (r Range) Previous() Range {
	return Range{Start: r.Start.AddDate(0, 0, -r.Days()), End: r.Start.AddDate(0, 0, -1)}
}

// Span converts the inclusive day range into the storage interval
func (r Range) Span() Span {
	return Span{From: r.Start, Until: r.End.Add(Day)}
}

// Union returns the smallest range covering both r and o
func (r Range) Union(o Range) Range {
	out := r
	if o.Start.Before(out.Start) {
		out.Start = o.Start
	}
	if o.End.After(out.End) {
		out.End = o.End
	}
	return out
}

// Contains reports whether instant t falls on one of the range days
func (r Range) Contains(t time.Time) bool {
	return r.Span().Contains(t)
}

// Index returns the zero based day offset of t within the range
func (r Range) Index(t time.Time) (int, bool) {
	if !r.Contains(t) {
		return 0, false
	}
	return DaysBetween(r.Start, t), true
}

// Buckets yields every day of the range in ascending order
// the sequence is lazy and can be ranged over any number of times
func (r Range) Buckets() iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
			if !yield(d) {
				return
			}
		}
	}
}

// String renders the range as start..end
func (r Range) String() string {
	return r.Start.Format(DateLayout) + ".." + r.End.Format(DateLayout)
}

// Contains reports whether t is inside the span, honoring open bounds
func (s Span) Contains(t time.Time) bool {
	if !s.From.IsZero() && t.Before(s.From) {
		return false
	}
	if !s.Until.IsZero() && !t.Before(s.Until) {
		return false
	}
	return true
}

// Open reports whether the span has no bounds at all
func (s Span) Open() bool { return s.From.IsZero() && s.Until.IsZero() }

// Hours yields the 24 hours of a day, 0 through 23
func Hours() iter.Seq[int] {
	return func(yield func(int) bool) {
		for h := 0; h < 24; h++ {
			if !yield(h) {
				return
			}
		}
	}
}

// Label renders a day as M/D for chart axes
func Label(d time.Time) string {
	return d.Format("1/2")
}
