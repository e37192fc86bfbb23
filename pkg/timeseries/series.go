// Package timeseries defines the evenly-ordered series data model that
// indicator computation consumes: parallel timestamp and value slices with
// strictly increasing timestamps, plus the comparison and rolling-window
// operations indicators are composed from.
package timeseries

import (
	"fmt"
	"time"
)

// Series is an ordered sequence of timestamped float64 observations.
// Timestamps are strictly increasing; values may be NaN where an
// observation is missing. A Series is immutable once constructed.
type Series struct {
	times  []time.Time
	values []float64
}

// New builds a Series from parallel slices, which are copied. Timestamps
// must be strictly increasing.
func New(times []time.Time, values []float64) (*Series, error) {
	if len(times) != len(values) {
		return nil, fmt.Errorf("series has %d timestamps but %d values", len(times), len(values))
	}
	for i := 1; i < len(times); i++ {
		if !times[i].After(times[i-1]) {
			return nil, fmt.Errorf("timestamps not strictly increasing at index %d (%s then %s)",
				i, times[i-1].Format(time.RFC3339), times[i].Format(time.RFC3339))
		}
	}
	return &Series{
		times:  append([]time.Time(nil), times...),
		values: append([]float64(nil), values...),
	}, nil
}

// Len returns the number of observations.
func (s *Series) Len() int { return len(s.values) }

// Time returns the i-th timestamp.
func (s *Series) Time(i int) time.Time { return s.times[i] }

// Value returns the i-th value.
func (s *Series) Value(i int) float64 { return s.values[i] }

// Times returns the timestamps in order. The slice is shared; callers
// must not modify it.
func (s *Series) Times() []time.Time { return s.times }

// Values returns the values in order. The slice is shared; callers must
// not modify it.
func (s *Series) Values() []float64 { return s.values }

// Slice returns the sub-series over the half-open index range
// [start, end). The sub-series shares the parent's backing arrays.
func (s *Series) Slice(start, end int) *Series {
	return &Series{times: s.times[start:end], values: s.values[start:end]}
}

// MapValues returns a series with f applied to every value, on the same
// timestamps. Used for expressing a series in different units.
func (s *Series) MapValues(f func(float64) float64) *Series {
	out := make([]float64, len(s.values))
	for i, v := range s.values {
		out[i] = f(v)
	}
	return s.withValues(out)
}

// withValues builds a series carrying new values on the same timestamps.
func (s *Series) withValues(values []float64) *Series {
	return &Series{times: s.times, values: values}
}
