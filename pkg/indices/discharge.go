package indices

import (
	"fmt"

	"github.com/chrissnell/climdex/pkg/resample"
	"github.com/chrissnell/climdex/pkg/timeseries"
	"github.com/chrissnell/climdex/pkg/units"
)

// BaseFlowIndex returns, per period, the minimum centered 7-day moving
// average of daily discharge divided by the period's mean discharge, a
// dimensionless measure of how much of a river's flow is sustained base
// flow. The moving average is computed over the whole series before
// grouping. Periods without a complete 7-day window, or with zero mean
// flow, are undefined.
func BaseFlowIndex(q *timeseries.Series, unit units.Unit, freq resample.Frequency) ([]Value, error) {
	if err := units.RequireDimension(unit, units.Discharge); err != nil {
		return nil, fmt.Errorf("q: %w", err)
	}
	m7 := q.RollingMean(7, true)
	groups := resample.GroupBy(q.Times(), freq)

	out := make([]Value, len(groups))
	for i, g := range groups {
		low, okLow := resample.Min(m7.Values()[g.Start:g.End])
		mean, okMean := resample.Mean(q.Values()[g.Start:g.End])
		if !okLow || !okMean || mean == 0 {
			out[i] = NoData(g.Label)
			continue
		}
		out[i] = Computed(g.Label, low/mean)
	}
	return out, nil
}
