package calendar

import (
	"fmt"
	"sort"
	"time"
)

// Align looks up one curve value per requested day-of-year and returns
// them in the same order, one output per input. Days present in the curve
// are returned exactly; missing days are linearly interpolated between
// the nearest labeled neighbors, wrapping across the end of the curve's
// year so that querying day 366 against a 365-day curve yields a value
// between the day-365 and day-1 entries rather than an error.
//
// An unlabeled (or nil) curve cannot be aligned and returns
// CalendarMismatchError. Requested days must lie in 1..366.
func Align(c *Curve, doys []int) ([]float64, error) {
	if c == nil || !c.Labeled() {
		return nil, &CalendarMismatchError{Reason: "threshold curve has no day-of-year labeling"}
	}
	out := make([]float64, len(doys))
	for i, d := range doys {
		v, err := c.at(d)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// AlignTimes aligns the curve to the day-of-year of each timestamp,
// producing the per-timestamp threshold series indicator comparisons
// consume.
func AlignTimes(c *Curve, times []time.Time) ([]float64, error) {
	return Align(c, DayOfYears(times))
}

func (c *Curve) at(d int) (float64, error) {
	if d < 1 || d > 366 {
		return 0, fmt.Errorf("day-of-year %d out of range 1..366", d)
	}
	i := sort.SearchInts(c.days, d)
	if i < len(c.days) && c.days[i] == d {
		return c.values[i], nil
	}
	if len(c.days) == 1 {
		return c.values[0], nil
	}

	// Interpolate between nearest labeled neighbors. The wrap length is
	// the curve calendar's year, extended when the queried day lies past
	// it (a 366-day target against a shorter model calendar).
	year := c.calendar.MaxDaysInYear()
	if d > year {
		year = d
	}
	var loDay, hiDay int
	var loVal, hiVal float64
	if i == 0 {
		loDay = c.days[len(c.days)-1] - year
		loVal = c.values[len(c.values)-1]
	} else {
		loDay = c.days[i-1]
		loVal = c.values[i-1]
	}
	if i == len(c.days) {
		hiDay = c.days[0] + year
		hiVal = c.values[0]
	} else {
		hiDay = c.days[i]
		hiVal = c.values[i]
	}
	t := float64(d-loDay) / float64(hiDay-loDay)
	return loVal + t*(hiVal-loVal), nil
}
