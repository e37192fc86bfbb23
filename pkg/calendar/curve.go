package calendar

import (
	"fmt"
	"sort"
)

// CalendarMismatchError reports a threshold curve that cannot be aligned
// to a target series because it lacks day-of-year labeling.
type CalendarMismatchError struct {
	Reason string
}

func (e *CalendarMismatchError) Error() string {
	return "calendar mismatch: " + e.Reason
}

// Curve is a day-of-year indexed set of threshold values under a declared
// calendar, typically a percentile climatology (one threshold per day of
// year). Day keys are unique and within the calendar's range; a curve
// need not cover every day. Curves are immutable once constructed.
type Curve struct {
	calendar Calendar
	days     []int     // sorted ascending; nil for an unlabeled curve
	values   []float64 // parallel to days
}

// NewCurve builds a labeled curve from day-of-year keys and their values.
// Days must be unique and within 1..cal.MaxDaysInYear(); the pairs are
// sorted by day internally, so input order does not matter. The slices
// are copied.
func NewCurve(cal Calendar, days []int, values []float64) (*Curve, error) {
	if len(days) == 0 {
		return nil, fmt.Errorf("curve needs at least one day")
	}
	if len(days) != len(values) {
		return nil, fmt.Errorf("curve has %d days but %d values", len(days), len(values))
	}

	idx := make([]int, len(days))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return days[idx[a]] < days[idx[b]] })

	c := &Curve{
		calendar: cal,
		days:     make([]int, len(days)),
		values:   make([]float64, len(values)),
	}
	maxDay := cal.MaxDaysInYear()
	for i, j := range idx {
		d := days[j]
		if d < 1 || d > maxDay {
			return nil, fmt.Errorf("day-of-year %d out of range 1..%d for %s calendar", d, maxDay, cal)
		}
		if i > 0 && c.days[i-1] == d {
			return nil, fmt.Errorf("duplicate day-of-year %d in curve", d)
		}
		c.days[i] = d
		c.values[i] = values[j]
	}
	return c, nil
}

// UnlabeledCurve builds a curve that carries values but no day-of-year
// keys. Such curves come out of snapshots written before day labels were
// recorded; they can be stored and inspected but alignment rejects them
// with CalendarMismatchError.
func UnlabeledCurve(cal Calendar, values []float64) *Curve {
	return &Curve{calendar: cal, values: append([]float64(nil), values...)}
}

// Calendar returns the calendar the curve's day keys are declared on.
func (c *Curve) Calendar() Calendar { return c.calendar }

// Labeled reports whether the curve carries day-of-year keys.
func (c *Curve) Labeled() bool { return c.days != nil }

// Len returns the number of entries in the curve.
func (c *Curve) Len() int { return len(c.values) }

// Days returns the sorted day-of-year keys, or nil for an unlabeled
// curve. The slice is shared; callers must not modify it.
func (c *Curve) Days() []int { return c.days }

// Values returns the curve values in day order. The slice is shared;
// callers must not modify it.
func (c *Curve) Values() []float64 { return c.values }

// Value returns the value stored for an exact day key.
func (c *Curve) Value(day int) (float64, bool) {
	i := sort.SearchInts(c.days, day)
	if i < len(c.days) && c.days[i] == day {
		return c.values[i], true
	}
	return 0, false
}

// MapValues returns a new curve with f applied to every value, keeping
// days and calendar. Used for unit conversion of climatologies.
func (c *Curve) MapValues(f func(float64) float64) *Curve {
	out := &Curve{calendar: c.calendar, days: c.days, values: make([]float64, len(c.values))}
	for i, v := range c.values {
		out.values[i] = f(v)
	}
	return out
}
