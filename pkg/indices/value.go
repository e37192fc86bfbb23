// Package indices implements standardized daily climate indicators in
// the ETCCDI style: threshold-exceedance counts, spell statistics built
// on run-length analysis, percentile-relative indicators against
// day-of-year climatologies, and rolling-accumulation extremes. Each
// indicator validates the dimensions of its inputs, converts thresholds
// into the series' declared units, groups the series into calendar
// periods and reduces each period to one value.
package indices

import "time"

// Value is one period's indicator result, labeled by the period start.
// Valid is false when the period contained no usable observations;
// "no data" is distinct from a computed zero.
type Value struct {
	Period time.Time
	Value  float64
	Valid  bool
}

// Computed builds a defined result for a period.
func Computed(period time.Time, v float64) Value {
	return Value{Period: period, Value: v, Valid: true}
}

// NoData marks a period whose statistic is undefined.
func NoData(period time.Time) Value {
	return Value{Period: period}
}
