package indices

import (
	"fmt"

	"github.com/chrissnell/climdex/pkg/calendar"
	"github.com/chrissnell/climdex/pkg/resample"
	"github.com/chrissnell/climdex/pkg/runlength"
	"github.com/chrissnell/climdex/pkg/timeseries"
	"github.com/chrissnell/climdex/pkg/units"
)

// FrostDays returns the number of days per period with daily minimum
// temperature below 0 °C.
func FrostDays(tasmin *timeseries.Series, unit units.Unit, freq resample.Frequency) ([]Value, error) {
	if err := units.RequireDimension(unit, units.Temperature); err != nil {
		return nil, fmt.Errorf("tasmin: %w", err)
	}
	frz, err := units.Quantity{Value: 0, Unit: units.DegC}.To(unit)
	if err != nil {
		return nil, err
	}
	groups := resample.GroupBy(tasmin.Times(), freq)
	return perPeriodCount(groups, tasmin.Below(frz)), nil
}

// IceDays returns the number of days per period with daily maximum
// temperature below 0 °C.
func IceDays(tasmax *timeseries.Series, unit units.Unit, freq resample.Frequency) ([]Value, error) {
	if err := units.RequireDimension(unit, units.Temperature); err != nil {
		return nil, fmt.Errorf("tasmax: %w", err)
	}
	frz, err := units.Quantity{Value: 0, Unit: units.DegC}.To(unit)
	if err != nil {
		return nil, err
	}
	groups := resample.GroupBy(tasmax.Times(), freq)
	return perPeriodCount(groups, tasmax.Below(frz)), nil
}

// TropicalNights returns the number of days per period with daily
// minimum temperature above thresh (conventionally 20 °C).
func TropicalNights(tasmin *timeseries.Series, unit units.Unit, thresh units.Quantity, freq resample.Frequency) ([]Value, error) {
	if err := units.RequireDimension(unit, units.Temperature); err != nil {
		return nil, fmt.Errorf("tasmin: %w", err)
	}
	t, err := thresh.To(unit)
	if err != nil {
		return nil, fmt.Errorf("threshold %s: %w", thresh, err)
	}
	groups := resample.GroupBy(tasmin.Times(), freq)
	return perPeriodCount(groups, tasmin.Above(t)), nil
}

// ConsecutiveFrostDays returns the length of the longest run of days per
// period with daily minimum temperature below 0 °C. Years anchored at
// July (AS-JUL) keep northern-hemisphere winters inside one period.
func ConsecutiveFrostDays(tasmin *timeseries.Series, unit units.Unit, freq resample.Frequency) ([]Value, error) {
	if err := units.RequireDimension(unit, units.Temperature); err != nil {
		return nil, fmt.Errorf("tasmin: %w", err)
	}
	frz, err := units.Quantity{Value: 0, Unit: units.DegC}.To(unit)
	if err != nil {
		return nil, err
	}
	groups := resample.GroupBy(tasmin.Times(), freq)
	return perPeriodRun(groups, tasmin.Below(frz), runlength.LongestRun), nil
}

// HeatWaveFrequency returns the number of heat waves per period: spells
// of at least window consecutive days with daily minimum temperature
// above threshMin and daily maximum above threshMax on the same days.
// The two series must share timestamps.
func HeatWaveFrequency(tasmin, tasmax *timeseries.Series, minUnit, maxUnit units.Unit,
	threshMin, threshMax units.Quantity, window int, freq resample.Frequency) ([]Value, error) {

	flags, err := heatWaveFlags(tasmin, tasmax, minUnit, maxUnit, threshMin, threshMax)
	if err != nil {
		return nil, err
	}
	groups := resample.GroupBy(tasmin.Times(), freq)
	return perPeriodRunErr(groups, flags, func(g []bool) (int, error) {
		return runlength.WindowedRunCount(g, window)
	})
}

// HeatWaveMaxLength returns the length of the longest heat wave per
// period, where a heat wave needs daily minimum above threshMin and
// daily maximum above threshMax for at least window consecutive days.
// Periods whose longest spell is shorter than window yield 0.
func HeatWaveMaxLength(tasmin, tasmax *timeseries.Series, minUnit, maxUnit units.Unit,
	threshMin, threshMax units.Quantity, window int, freq resample.Frequency) ([]Value, error) {

	if window <= 0 {
		return nil, &runlength.InvalidWindowError{Window: window}
	}
	flags, err := heatWaveFlags(tasmin, tasmax, minUnit, maxUnit, threshMin, threshMax)
	if err != nil {
		return nil, err
	}
	groups := resample.GroupBy(tasmin.Times(), freq)
	out := perPeriodRun(groups, flags, runlength.LongestRun)
	for i := range out {
		if out[i].Valid && out[i].Value < float64(window) {
			out[i].Value = 0
		}
	}
	return out, nil
}

func heatWaveFlags(tasmin, tasmax *timeseries.Series, minUnit, maxUnit units.Unit,
	threshMin, threshMax units.Quantity) ([]bool, error) {

	if err := units.RequireDimension(minUnit, units.Temperature); err != nil {
		return nil, fmt.Errorf("tasmin: %w", err)
	}
	if err := units.RequireDimension(maxUnit, units.Temperature); err != nil {
		return nil, fmt.Errorf("tasmax: %w", err)
	}
	if err := sameTimes(tasmin, tasmax); err != nil {
		return nil, err
	}
	tmin, err := threshMin.To(minUnit)
	if err != nil {
		return nil, fmt.Errorf("tasmin threshold %s: %w", threshMin, err)
	}
	tmax, err := threshMax.To(maxUnit)
	if err != nil {
		return nil, fmt.Errorf("tasmax threshold %s: %w", threshMax, err)
	}
	return timeseries.And(tasmin.Above(tmin), tasmax.Above(tmax))
}

// ColdSpellDurationIndex returns the number of days per period belonging
// to cold spells: at least window consecutive days with daily minimum
// temperature below the day-of-year 10th percentile climatology tn10.
func ColdSpellDurationIndex(tasmin *timeseries.Series, unit units.Unit,
	tn10 *calendar.Curve, curveUnit units.Unit, window int, freq resample.Frequency) ([]Value, error) {

	if err := units.RequireDimension(unit, units.Temperature); err != nil {
		return nil, fmt.Errorf("tasmin: %w", err)
	}
	thresholds, err := curveThresholds(tn10, curveUnit, tasmin, unit)
	if err != nil {
		return nil, err
	}
	flags, err := tasmin.BelowEach(thresholds)
	if err != nil {
		return nil, err
	}
	groups := resample.GroupBy(tasmin.Times(), freq)
	return perPeriodRunErr(groups, flags, func(g []bool) (int, error) {
		return runlength.WindowedRunEvents(g, window)
	})
}

// WarmSpellDurationIndex returns the number of days per period belonging
// to warm spells: at least window consecutive days with daily maximum
// temperature above the day-of-year 90th percentile climatology tx90.
func WarmSpellDurationIndex(tasmax *timeseries.Series, unit units.Unit,
	tx90 *calendar.Curve, curveUnit units.Unit, window int, freq resample.Frequency) ([]Value, error) {

	if err := units.RequireDimension(unit, units.Temperature); err != nil {
		return nil, fmt.Errorf("tasmax: %w", err)
	}
	thresholds, err := curveThresholds(tx90, curveUnit, tasmax, unit)
	if err != nil {
		return nil, err
	}
	flags, err := tasmax.AboveEach(thresholds)
	if err != nil {
		return nil, err
	}
	groups := resample.GroupBy(tasmax.Times(), freq)
	return perPeriodRunErr(groups, flags, func(g []bool) (int, error) {
		return runlength.WindowedRunEvents(g, window)
	})
}

// TG90P returns the number of days per period with mean temperature
// above the day-of-year 90th percentile climatology.
func TG90P(tas *timeseries.Series, unit units.Unit, t90 *calendar.Curve, curveUnit units.Unit, freq resample.Frequency) ([]Value, error) {
	if err := units.RequireDimension(unit, units.Temperature); err != nil {
		return nil, fmt.Errorf("tas: %w", err)
	}
	thresholds, err := curveThresholds(t90, curveUnit, tas, unit)
	if err != nil {
		return nil, err
	}
	flags, err := tas.AboveEach(thresholds)
	if err != nil {
		return nil, err
	}
	return perPeriodCount(resample.GroupBy(tas.Times(), freq), flags), nil
}

// TG10P returns the number of days per period with mean temperature
// below the day-of-year 10th percentile climatology.
func TG10P(tas *timeseries.Series, unit units.Unit, t10 *calendar.Curve, curveUnit units.Unit, freq resample.Frequency) ([]Value, error) {
	if err := units.RequireDimension(unit, units.Temperature); err != nil {
		return nil, fmt.Errorf("tas: %w", err)
	}
	thresholds, err := curveThresholds(t10, curveUnit, tas, unit)
	if err != nil {
		return nil, err
	}
	flags, err := tas.BelowEach(thresholds)
	if err != nil {
		return nil, err
	}
	return perPeriodCount(resample.GroupBy(tas.Times(), freq), flags), nil
}

// DailyFreezeThawCycles returns the number of days per period with daily
// maximum temperature above 0 °C and daily minimum below 0 °C. The two
// series must share timestamps.
func DailyFreezeThawCycles(tasmax, tasmin *timeseries.Series, maxUnit, minUnit units.Unit, freq resample.Frequency) ([]Value, error) {
	if err := units.RequireDimension(maxUnit, units.Temperature); err != nil {
		return nil, fmt.Errorf("tasmax: %w", err)
	}
	if err := units.RequireDimension(minUnit, units.Temperature); err != nil {
		return nil, fmt.Errorf("tasmin: %w", err)
	}
	if err := sameTimes(tasmax, tasmin); err != nil {
		return nil, err
	}
	frzMax, err := units.Quantity{Value: 0, Unit: units.DegC}.To(maxUnit)
	if err != nil {
		return nil, err
	}
	frzMin, err := units.Quantity{Value: 0, Unit: units.DegC}.To(minUnit)
	if err != nil {
		return nil, err
	}
	flags, err := timeseries.And(tasmax.Above(frzMax), tasmin.Below(frzMin))
	if err != nil {
		return nil, err
	}
	return perPeriodCount(resample.GroupBy(tasmax.Times(), freq), flags), nil
}
