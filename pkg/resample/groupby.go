package resample

import "time"

// Group is one calendar period of a grouped series: a label (the period
// start) and a half-open index range [Start, End) into the source series.
// Concatenating the ranges of consecutive groups reproduces the source
// order exactly.
type Group struct {
	Label time.Time
	Start int
	End   int
}

// Empty reports whether the period contains no observations. Statistics
// for empty periods are undefined rather than zero; callers substitute
// their missing-value representation.
func (g Group) Empty() bool { return g.Start >= g.End }

// Len returns the number of observations in the period.
func (g Group) Len() int { return g.End - g.Start }

// GroupBy partitions ordered timestamps into calendar periods. Every
// period from the one containing the first timestamp through the one
// containing the last is emitted, including interior periods that contain
// no observations. Timestamps must be sorted ascending, as in a Series.
func GroupBy(times []time.Time, f Frequency) []Group {
	if len(times) == 0 {
		return nil
	}
	last := f.PeriodStart(times[len(times)-1])

	var groups []Group
	idx := 0
	for cur := f.PeriodStart(times[0]); !cur.After(last); cur = f.Next(cur) {
		next := f.Next(cur)
		start := idx
		for idx < len(times) && times[idx].Before(next) {
			idx++
		}
		groups = append(groups, Group{Label: cur, Start: start, End: idx})
	}
	return groups
}
