// Package calendar provides day-of-year arithmetic and day-of-year indexed
// threshold curves for the calendars climate datasets are published on:
// the standard Gregorian calendar and the fixed-length noleap, all-leap
// and 360-day model calendars.
package calendar

import (
	"fmt"
	"time"
)

// Calendar identifies the year structure a dataset or curve is indexed on.
type Calendar int

const (
	// Standard is the proleptic Gregorian calendar: 365 days, 366 in
	// leap years. All time.Time values are on this calendar.
	Standard Calendar = iota
	// NoLeap is the fixed 365-day model calendar.
	NoLeap
	// AllLeap is the fixed 366-day model calendar.
	AllLeap
	// Day360 is the fixed 360-day model calendar of twelve 30-day months.
	Day360
)

func (c Calendar) String() string {
	switch c {
	case Standard:
		return "standard"
	case NoLeap:
		return "noleap"
	case AllLeap:
		return "all_leap"
	case Day360:
		return "360_day"
	}
	return fmt.Sprintf("calendar(%d)", int(c))
}

// ParseCalendar parses a CF-convention calendar name. Common aliases
// (gregorian, 365_day, 366_day) are accepted.
func ParseCalendar(s string) (Calendar, error) {
	switch s {
	case "standard", "gregorian", "proleptic_gregorian":
		return Standard, nil
	case "noleap", "365_day":
		return NoLeap, nil
	case "all_leap", "366_day":
		return AllLeap, nil
	case "360_day":
		return Day360, nil
	}
	return Standard, fmt.Errorf("unknown calendar %q", s)
}

// MaxDaysInYear returns the largest day-of-year the calendar can label.
func (c Calendar) MaxDaysInYear() int {
	switch c {
	case NoLeap:
		return 365
	case Day360:
		return 360
	default:
		return 366
	}
}

// DaysInYear returns the number of days in the given year under the
// calendar. Only Standard varies by year.
func (c Calendar) DaysInYear(year int) int {
	switch c {
	case Standard:
		if IsLeapYear(year) {
			return 366
		}
		return 365
	case NoLeap:
		return 365
	case AllLeap:
		return 366
	case Day360:
		return 360
	}
	return 365
}

// IsLeapYear reports whether year is a Gregorian leap year.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DayOfYear returns the 1-based day of year of t on the standard calendar,
// 1 through 365 or 366.
func DayOfYear(t time.Time) int {
	return t.YearDay()
}

// DayOfYears returns the day of year for each timestamp, in order.
func DayOfYears(times []time.Time) []int {
	out := make([]int, len(times))
	for i, t := range times {
		out[i] = t.YearDay()
	}
	return out
}
