package calendar

import (
	"sync"
	"time"
)

// Holiday is a single Norwegian public holiday.
type Holiday struct {
	Date time.Time
	Name string
}

// Calendar computes and caches Norwegian public holidays.
//
// Holidays for a year are immutable facts, so the per-year cache is
// populated lazily and never invalidated. The cache is mutex-guarded
// because the calendar is shared by HTTP handlers.
type Calendar struct {
	mu    sync.Mutex
	years map[int][]Holiday
}

// NewCalendar returns an empty calendar; years are computed on demand.
func NewCalendar() *Calendar {
	return &Calendar{years: make(map[int][]Holiday)}
}

// easterSunday computes Easter Sunday for a year using the Anonymous
// Gregorian (computus) algorithm.
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h+l-7*m+114)%31 + 1)

	return Date(year, time.Month(month), day)
}

// computeYear builds the 12 statutory holidays: 5 fixed dates plus 7
// Easter-relative days.
func computeYear(year int) []Holiday {
	easter := easterSunday(year)

	holidays := []Holiday{
		{Date: Date(year, time.January, 1), Name: "Første nyttårsdag"},
		{Date: Date(year, time.May, 1), Name: "Arbeidernes dag"},
		{Date: Date(year, time.May, 17), Name: "Grunnlovsdagen"},
		{Date: Date(year, time.December, 25), Name: "Første juledag"},
		{Date: Date(year, time.December, 26), Name: "Andre juledag"},

		{Date: AddDays(easter, -3), Name: "Skjærtorsdag"},
		{Date: AddDays(easter, -2), Name: "Langfredag"},
		{Date: easter, Name: "Første påskedag"},
		{Date: AddDays(easter, 1), Name: "Andre påskedag"},
		{Date: AddDays(easter, 39), Name: "Kristi himmelfartsdag"},
		{Date: AddDays(easter, 49), Name: "Første pinsedag"},
		{Date: AddDays(easter, 50), Name: "Andre pinsedag"},
	}
	return holidays
}

// HolidaysForYear returns all holidays for a year, cached.
func (c *Calendar) HolidaysForYear(year int) []Holiday {
	c.mu.Lock()
	defer c.mu.Unlock()

	if hs, ok := c.years[year]; ok {
		return hs
	}
	hs := computeYear(year)
	c.years[year] = hs
	return hs
}

// HolidayMap returns a "YYYY-MM-DD" keyed map of holiday names for all
// holidays in [start, end] inclusive.
func (c *Calendar) HolidayMap(start, end time.Time) map[string]string {
	start = Normalize(start)
	end = Normalize(end)

	out := make(map[string]string)
	for year := start.Year(); year <= end.Year(); year++ {
		for _, h := range c.HolidaysForYear(year) {
			if h.Date.Before(start) || h.Date.After(end) {
				continue
			}
			out[DateKey(h.Date)] = h.Name
		}
	}
	return out
}

// IsHoliday reports whether a date is a public holiday.
func (c *Calendar) IsHoliday(t time.Time) bool {
	t = Normalize(t)
	for _, h := range c.HolidaysForYear(t.Year()) {
		if h.Date.Equal(t) {
			return true
		}
	}
	return false
}

// IsWorkday reports whether a date is a working day: a weekday that is
// not a public holiday.
func (c *Calendar) IsWorkday(t time.Time) bool {
	return !IsWeekend(t) && !c.IsHoliday(t)
}

// WorkdaysBetween counts working days in [start, end), end exclusive.
// This is the number of vacation days needed to bridge the interval.
func (c *Calendar) WorkdaysBetween(start, end time.Time) int {
	start = Normalize(start)
	end = Normalize(end)

	count := 0
	for d := start; d.Before(end); d = AddDays(d, 1) {
		if c.IsWorkday(d) {
			count++
		}
	}
	return count
}
