/*
Package calendar provides day-granularity date arithmetic and the Norwegian
public-holiday calendar.

PURPOSE:
  Everything in the leave engine runs on calendar dates at local midnight.
  This package owns the two primitives the rest of the system builds on:

  1. Date math: add/subtract days and weeks, day and week differences.
  2. Holidays: fixed-date and Easter-relative Norwegian holidays, with a
     per-year cache (see holidays.go).

WEEK ROUNDING POLICY:
  WeeksBetween rounds UP. A partial week counts as a full week. This is
  deliberate: the planner uses "weeks" for gap and duration reporting, and
  understating a gap understates financial risk. A 1-day gap and a 7-day
  gap both report as one week.

NO TIME ZONES:
  All dates are normalized to midnight UTC. Callers are responsible for
  reducing their inputs to a consistent calendar-day representation before
  they reach this package; nothing here converts between zones.

SEE ALSO:
  - holidays.go: Holiday computation and caching
  - leave/builder.go: Main consumer of the arithmetic
*/
package calendar

import "time"

// DateKeyFormat is the canonical string form for calendar days.
const DateKeyFormat = "2006-01-02"

// Date constructs a calendar day at midnight UTC.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Normalize truncates a timestamp to its calendar day at midnight UTC.
func Normalize(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// DateKey renders a date as "YYYY-MM-DD".
func DateKey(t time.Time) string {
	return t.Format(DateKeyFormat)
}

// ParseDateKey parses a "YYYY-MM-DD" string into a calendar day.
func ParseDateKey(s string) (time.Time, error) {
	t, err := time.Parse(DateKeyFormat, s)
	if err != nil {
		return time.Time{}, err
	}
	return Normalize(t), nil
}

// =============================================================================
// ARITHMETIC
// =============================================================================

// AddDays returns the date n days after t (n may be negative).
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// AddWeeks returns the date n weeks after t.
func AddWeeks(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n*7)
}

// SubtractWeeks returns the date n weeks before t.
func SubtractWeeks(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, -n*7)
}

// DaysBetween returns the number of calendar days from 'from' to 'to'.
// Negative when 'to' precedes 'from'.
func DaysBetween(from, to time.Time) int {
	return int(Normalize(to).Sub(Normalize(from)).Hours() / 24)
}

// WeeksBetween returns the number of weeks from 'from' to 'to', rounding
// any partial week UP. Returns 0 when the dates coincide, and 0 for
// negative spans (callers clamp before asking for weeks).
func WeeksBetween(from, to time.Time) int {
	days := DaysBetween(from, to)
	if days <= 0 {
		return 0
	}
	return (days + 6) / 7
}

// IsWeekend reports whether the date falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
