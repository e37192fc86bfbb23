package indices

import (
	"testing"
	"time"

	"github.com/chrissnell/climdex/pkg/calendar"
	"github.com/chrissnell/climdex/pkg/resample"
	"github.com/chrissnell/climdex/pkg/timeseries"
)

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

// within reports whether d lies in the inclusive date range [from, to].
func within(d time.Time, from, to string) bool {
	return !d.Before(date(from)) && !d.After(date(to))
}

// genSeries builds a daily series from start through end inclusive with
// values produced by fn.
func genSeries(t *testing.T, start, end string, fn func(time.Time) float64) *timeseries.Series {
	t.Helper()
	var times []time.Time
	var values []float64
	for d := date(start); !d.After(date(end)); d = d.AddDate(0, 0, 1) {
		times = append(times, d)
		values = append(values, fn(d))
	}
	s, err := timeseries.New(times, values)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func freq(t *testing.T, code string) resample.Frequency {
	t.Helper()
	f, err := resample.ParseFrequency(code)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

// constantCurve builds a labeled curve with the same value on days 1..n.
func constantCurve(t *testing.T, cal calendar.Calendar, n int, v float64) *calendar.Curve {
	t.Helper()
	days := make([]int, n)
	values := make([]float64, n)
	for i := range days {
		days[i] = i + 1
		values[i] = v
	}
	c, err := calendar.NewCurve(cal, days, values)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

// checkValues asserts per-period results: one entry per want, all valid,
// values exact.
func checkResults(t *testing.T, got []Value, want []float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d periods, want %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].Valid {
			t.Errorf("period %s: no data, want %v", got[i].Period.Format("2006-01-02"), want[i])
			continue
		}
		if got[i].Value != want[i] {
			t.Errorf("period %s: got %v, want %v", got[i].Period.Format("2006-01-02"), got[i].Value, want[i])
		}
	}
}
