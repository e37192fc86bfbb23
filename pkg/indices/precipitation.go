package indices

import (
	"fmt"

	"github.com/chrissnell/climdex/pkg/resample"
	"github.com/chrissnell/climdex/pkg/runlength"
	"github.com/chrissnell/climdex/pkg/timeseries"
	"github.com/chrissnell/climdex/pkg/units"
)

// MaximumConsecutiveDryDays returns the length of the longest run of
// days per period with precipitation below thresh (conventionally
// 1 mm/day).
func MaximumConsecutiveDryDays(pr *timeseries.Series, unit units.Unit, thresh units.Quantity, freq resample.Frequency) ([]Value, error) {
	if err := units.RequireDimension(unit, units.PrecipRate); err != nil {
		return nil, fmt.Errorf("pr: %w", err)
	}
	t, err := thresh.To(unit)
	if err != nil {
		return nil, fmt.Errorf("threshold %s: %w", thresh, err)
	}
	groups := resample.GroupBy(pr.Times(), freq)
	return perPeriodRun(groups, pr.Below(t), runlength.LongestRun), nil
}

// PrecipAccumulation returns the total precipitation per period in mm,
// from a daily precipitation-rate series.
func PrecipAccumulation(pr *timeseries.Series, unit units.Unit, freq resample.Frequency) ([]Value, error) {
	mmday, err := toMmPerDay(pr, unit)
	if err != nil {
		return nil, err
	}
	// daily series: each mm/day value contributes one day's depth in mm
	groups := resample.GroupBy(pr.Times(), freq)
	return perPeriodFloat(groups, mmday.Values(), resample.Sum), nil
}

// MaxNDayPrecipAmount returns the highest precipitation accumulated over
// any window consecutive days in each period, in mm. The rolling sum is
// taken over the whole series before grouping, so accumulation windows
// may start in the previous period.
func MaxNDayPrecipAmount(pr *timeseries.Series, unit units.Unit, window int, freq resample.Frequency) ([]Value, error) {
	if window <= 0 {
		return nil, &runlength.InvalidWindowError{Window: window}
	}
	mmday, err := toMmPerDay(pr, unit)
	if err != nil {
		return nil, err
	}
	sums := mmday.RollingSum(window, false)
	groups := resample.GroupBy(pr.Times(), freq)
	return perPeriodFloat(groups, sums.Values(), resample.Max), nil
}

func toMmPerDay(pr *timeseries.Series, unit units.Unit) (*timeseries.Series, error) {
	if err := units.RequireDimension(unit, units.PrecipRate); err != nil {
		return nil, fmt.Errorf("pr: %w", err)
	}
	if unit == units.MmPerDay {
		return pr, nil
	}
	return pr.MapValues(func(v float64) float64 {
		c, _ := units.Convert(v, unit, units.MmPerDay)
		return c
	}), nil
}
