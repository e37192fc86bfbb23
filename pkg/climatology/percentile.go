// Package climatology builds day-of-year percentile climatologies from
// multi-year reference series. The resulting curves are the thresholds
// percentile-relative indicators (cold spell duration, warm days and the
// like) compare daily observations against.
package climatology

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/chrissnell/climdex/pkg/calendar"
	"github.com/chrissnell/climdex/pkg/timeseries"
)

// PercentileDoY computes the q-quantile of the reference series for each
// day of year, pooling values whose day of year falls within a centered
// window of the target day across all reference years. The window wraps
// across the year boundary so early January days pool late December
// values. Standard practice is a 5-day window over a 30-year reference
// period.
//
// The curve is declared on the standard calendar when the reference
// contains a leap day, otherwise noleap. q must lie in (0, 1) and window
// must be a positive odd day count.
func PercentileDoY(ref *timeseries.Series, q float64, window int) (*calendar.Curve, error) {
	if ref == nil || ref.Len() == 0 {
		return nil, fmt.Errorf("reference series is empty")
	}
	if q <= 0 || q >= 1 {
		return nil, fmt.Errorf("quantile must be in (0, 1), got %v", q)
	}
	if window < 1 || window%2 == 0 {
		return nil, fmt.Errorf("window must be a positive odd day count, got %d", window)
	}

	byDay := make(map[int][]float64)
	for i := 0; i < ref.Len(); i++ {
		v := ref.Value(i)
		if math.IsNaN(v) {
			continue
		}
		d := calendar.DayOfYear(ref.Time(i))
		byDay[d] = append(byDay[d], v)
	}
	if len(byDay) == 0 {
		return nil, fmt.Errorf("reference series has no finite values")
	}

	cal := calendar.NoLeap
	if _, ok := byDay[366]; ok {
		cal = calendar.Standard
	}
	yearLen := cal.MaxDaysInYear()

	days := make([]int, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Ints(days)

	half := window / 2
	values := make([]float64, len(days))
	for i, d := range days {
		var pool []float64
		for off := -half; off <= half; off++ {
			dd := d + off
			for dd < 1 {
				dd += yearLen
			}
			for dd > yearLen {
				dd -= yearLen
			}
			pool = append(pool, byDay[dd]...)
		}
		sort.Float64s(pool)
		values[i] = stat.Quantile(q, stat.LinInterp, pool, nil)
	}

	return calendar.NewCurve(cal, days, values)
}
