package indices

import (
	"fmt"

	"github.com/chrissnell/climdex/pkg/calendar"
	"github.com/chrissnell/climdex/pkg/resample"
	"github.com/chrissnell/climdex/pkg/timeseries"
	"github.com/chrissnell/climdex/pkg/units"
)

// perPeriodCount reduces day flags to a per-period count of flagged days.
func perPeriodCount(groups []resample.Group, flags []bool) []Value {
	counts := resample.Reduce(groups, flags, resample.CountTrue)
	out := make([]Value, len(groups))
	for i, g := range groups {
		if g.Empty() {
			out[i] = NoData(g.Label)
			continue
		}
		out[i] = Computed(g.Label, float64(counts[i]))
	}
	return out
}

// perPeriodRun reduces day flags with a run-length statistic.
func perPeriodRun(groups []resample.Group, flags []bool, fn func([]bool) int) []Value {
	runs := resample.Reduce(groups, flags, fn)
	out := make([]Value, len(groups))
	for i, g := range groups {
		if g.Empty() {
			out[i] = NoData(g.Label)
			continue
		}
		out[i] = Computed(g.Label, float64(runs[i]))
	}
	return out
}

// perPeriodRunErr is perPeriodRun for run statistics that can fail, such
// as the windowed statistics rejecting a non-positive window.
func perPeriodRunErr(groups []resample.Group, flags []bool, fn func([]bool) (int, error)) ([]Value, error) {
	runs, err := resample.ReduceErr(groups, flags, fn)
	if err != nil {
		return nil, err
	}
	out := make([]Value, len(groups))
	for i, g := range groups {
		if g.Empty() {
			out[i] = NoData(g.Label)
			continue
		}
		out[i] = Computed(g.Label, float64(runs[i]))
	}
	return out, nil
}

// perPeriodFloat reduces raw values with a statistic that reports whether
// it is defined; undefined periods (empty, or all missing) become NoData.
func perPeriodFloat(groups []resample.Group, values []float64, fn func([]float64) (float64, bool)) []Value {
	out := make([]Value, len(groups))
	for i, g := range groups {
		v, ok := fn(values[g.Start:g.End])
		if !ok {
			out[i] = NoData(g.Label)
			continue
		}
		out[i] = Computed(g.Label, v)
	}
	return out
}

// sameTimes checks that two input series are on identical timestamps, a
// precondition for day-wise conjunction of their flags.
func sameTimes(a, b *timeseries.Series) error {
	if a.Len() != b.Len() {
		return fmt.Errorf("series lengths differ: %d vs %d", a.Len(), b.Len())
	}
	for i := 0; i < a.Len(); i++ {
		if !a.Time(i).Equal(b.Time(i)) {
			return fmt.Errorf("series timestamps differ at index %d: %s vs %s",
				i, a.Time(i).Format("2006-01-02"), b.Time(i).Format("2006-01-02"))
		}
	}
	return nil
}

// curveThresholds aligns a day-of-year climatology to the series and
// expresses the per-day thresholds in the series' unit.
func curveThresholds(curve *calendar.Curve, curveUnit units.Unit, s *timeseries.Series, seriesUnit units.Unit) ([]float64, error) {
	thresholds, err := calendar.AlignTimes(curve, s.Times())
	if err != nil {
		return nil, fmt.Errorf("aligning climatology: %w", err)
	}
	converted, err := units.ConvertSlice(thresholds, curveUnit, seriesUnit)
	if err != nil {
		return nil, fmt.Errorf("converting climatology thresholds: %w", err)
	}
	return converted, nil
}
