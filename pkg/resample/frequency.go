// Package resample groups ordered daily series into calendar periods
// (annual, anchored annual, quarterly, monthly) and reduces each group to
// one statistic. Period codes follow the spellings climate tooling uses:
// YS, AS-JUL, QS-DEC, MS.
package resample

import (
	"fmt"
	"strings"
	"time"
)

// PeriodUnit is the length class of a resampling period.
type PeriodUnit int

const (
	Annual PeriodUnit = iota
	Quarterly
	Monthly
)

// Frequency describes a resampling period: a unit plus, for annual and
// quarterly units, the anchor month the first period of a year starts on.
// QS-DEC (quarters starting December, March, June, September) yields the
// usual meteorological seasons; AS-JUL yields July-to-June years for
// southern-hemisphere winters.
type Frequency struct {
	Unit   PeriodUnit
	Anchor time.Month
}

var monthAbbrev = map[string]time.Month{
	"JAN": time.January, "FEB": time.February, "MAR": time.March,
	"APR": time.April, "MAY": time.May, "JUN": time.June,
	"JUL": time.July, "AUG": time.August, "SEP": time.September,
	"OCT": time.October, "NOV": time.November, "DEC": time.December,
}

// ParseFrequency parses a period code: YS or AS (annual, optional
// -MON anchor), QS (quarterly, optional -MON anchor), MS (monthly).
// Bare Y, A, Q and M are accepted as aliases; all groups are labeled by
// period start regardless of spelling.
func ParseFrequency(s string) (Frequency, error) {
	code := strings.ToUpper(strings.TrimSpace(s))
	anchor := ""
	if i := strings.IndexByte(code, '-'); i >= 0 {
		code, anchor = code[:i], code[i+1:]
	}

	var f Frequency
	switch code {
	case "YS", "AS", "Y", "A":
		f = Frequency{Unit: Annual, Anchor: time.January}
	case "QS", "Q":
		f = Frequency{Unit: Quarterly, Anchor: time.January}
	case "MS", "M":
		if anchor != "" {
			return Frequency{}, fmt.Errorf("monthly frequency takes no anchor month: %q", s)
		}
		return Frequency{Unit: Monthly, Anchor: time.January}, nil
	default:
		return Frequency{}, fmt.Errorf("unknown frequency %q", s)
	}

	if anchor != "" {
		m, ok := monthAbbrev[anchor]
		if !ok {
			return Frequency{}, fmt.Errorf("unknown anchor month %q in frequency %q", anchor, s)
		}
		f.Anchor = m
	}
	return f, nil
}

func (f Frequency) String() string {
	switch f.Unit {
	case Annual:
		if f.Anchor == time.January {
			return "YS"
		}
		return "AS-" + strings.ToUpper(f.Anchor.String()[:3])
	case Quarterly:
		if f.Anchor == time.January {
			return "QS"
		}
		return "QS-" + strings.ToUpper(f.Anchor.String()[:3])
	case Monthly:
		return "MS"
	}
	return fmt.Sprintf("frequency(%d)", int(f.Unit))
}

// PeriodStart returns the start of the period containing t, in t's
// location at midnight.
func (f Frequency) PeriodStart(t time.Time) time.Time {
	switch f.Unit {
	case Annual:
		y := t.Year()
		if t.Month() < f.Anchor {
			y--
		}
		return time.Date(y, f.Anchor, 1, 0, 0, 0, 0, t.Location())
	case Quarterly:
		monthsIn := (int(t.Month()) - int(f.Anchor) + 12) % 3
		return time.Date(t.Year(), t.Month()-time.Month(monthsIn), 1, 0, 0, 0, 0, t.Location())
	default: // Monthly
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	}
}

// Next returns the start of the period following the one starting at
// start.
func (f Frequency) Next(start time.Time) time.Time {
	switch f.Unit {
	case Annual:
		return start.AddDate(1, 0, 0)
	case Quarterly:
		return start.AddDate(0, 3, 0)
	default:
		return start.AddDate(0, 1, 0)
	}
}
