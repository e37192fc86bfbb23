package timeseries

import "math"

// RollingMean returns a series of window-sized moving averages on the
// same timestamps. With center true the window is centered on each
// timestamp (even windows take the extra element from the later side);
// otherwise it trails, ending at the timestamp. Positions whose window
// is incomplete or contains NaN yield NaN, so downstream reductions can
// skip them.
func (s *Series) RollingMean(window int, center bool) *Series {
	sums := s.rollingSums(window, center)
	for i, v := range sums {
		if !math.IsNaN(v) {
			sums[i] = v / float64(window)
		}
	}
	return s.withValues(sums)
}

// RollingSum returns a series of window-sized moving sums on the same
// timestamps, with the same windowing and NaN rules as RollingMean.
func (s *Series) RollingSum(window int, center bool) *Series {
	return s.withValues(s.rollingSums(window, center))
}

func (s *Series) rollingSums(window int, center bool) []float64 {
	if window < 1 {
		window = 1
	}
	n := len(s.values)
	out := make([]float64, n)

	lead := 0 // trailing: window covers [i-window+1, i]
	if center {
		lead = window / 2 // centered: window covers [i-(window-1)/2, i+window/2]
	}
	for i := 0; i < n; i++ {
		hi := i + lead
		lo := hi - window + 1
		if lo < 0 || hi >= n {
			out[i] = math.NaN()
			continue
		}
		sum := 0.0
		for j := lo; j <= hi; j++ {
			sum += s.values[j]
		}
		out[i] = sum // NaN inside the window propagates
	}
	return out
}
