package timecalc

import (
	"fmt"
	"time"
)

// Week lists the weekdays in ISO order, Monday first.
var Week = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

// FormatDuration formats seconds as zero-padded HH.MM.SS.
func FormatDuration(seconds int64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d.%02d.%02d", h, m, s)
}

// FormatElapsed formats seconds as a human-readable string like "1h 1m 1s" or "30s".
func FormatElapsed(seconds int64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}

// WeekRange returns the Monday starting the ISO week containing t and the
// Monday starting the following week. The range is half-open.
func WeekRange(t time.Time) (time.Time, time.Time) {
	// Go's weekday: Sunday=0, Monday=1, …, Saturday=6
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7 // treat Sunday as 7 (ISO)
	}
	monday := StartOfDay(t.AddDate(0, 0, -(wd - 1)))
	next := time.Date(monday.Year(), monday.Month(), monday.Day()+7, 0, 0, 0, 0, t.Location())
	return monday, next
}

// ISOWeekLabel returns a label like "2026-W09".
func ISOWeekLabel(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// StartOfDay returns 00:00:00 of the same day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// IsToday reports whether ts falls on the calendar date of now, both read in
// now's location.
func IsToday(ts, now time.Time) bool {
	return SameDay(ts.In(now.Location()), now)
}

// IsThisWeek reports whether ts falls within the ISO week containing now.
func IsThisWeek(ts, now time.Time) bool {
	from, to := WeekRange(now)
	local := ts.In(now.Location())
	return !local.Before(from) && local.Before(to)
}

// WeekdayOf returns the weekday of ts in loc.
func WeekdayOf(ts time.Time, loc *time.Location) time.Weekday {
	return ts.In(loc).Weekday()
}
