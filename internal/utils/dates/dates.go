// Package dates pins the whole service to one canonical calendar.
// Both the live completion path and the nightly recalculation derive
// "today" from the same configured location, so a completion and the job
// that later recounts it can never disagree about which day it fell on.
package dates

import "time"

// DayOf truncates t to midnight of its calendar day in loc.
func DayOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// Today returns the current calendar day in loc.
func Today(loc *time.Location) time.Time {
	return DayOf(time.Now(), loc)
}

// PrevDay returns the calendar day immediately before day d.
func PrevDay(d time.Time) time.Time {
	return d.AddDate(0, 0, -1)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// MonthRange returns the half-open [first, next-month-first) interval for
// the given month in loc.
func MonthRange(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return from, from.AddDate(0, 1, 0)
}
