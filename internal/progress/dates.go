package progress

import (
	"iter"
	"time"
)

// DateLayout is the calendar-date format used for map keys and query params.
const DateLayout = "2006-01-02"

// Day returns midnight of t's calendar date in t's location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DayKey returns the YYYY-MM-DD key of t's calendar date.
func DayKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDay parses a YYYY-MM-DD string into midnight UTC.
func ParseDay(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// AddDays moves t by n calendar days, keeping midnight in t's location.
// Built from date components rather than 24h durations so DST shifts cannot
// land on the wrong day.
func AddDays(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+n, 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the number of calendar days from a to b (negative when
// b is before a). Only the calendar dates matter, not the clock or zone.
// Counted on Unix seconds: a time.Duration caps out near 292 years.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int((ub.Unix() - ua.Unix()) / secondsPerDay)
}

const secondsPerDay = 24 * 60 * 60

// EachDay yields every calendar date from start to end inclusive, in start's
// location. The sequence is empty when end is before start and can be ranged
// over any number of times.
func EachDay(start, end time.Time) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		n := DaysBetween(start, end)
		for i := 0; i <= n; i++ {
			if !yield(AddDays(start, i)) {
				return
			}
		}
	}
}
