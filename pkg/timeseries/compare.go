package timeseries

import "fmt"

// Above returns one flag per observation, true where the value exceeds
// threshold. NaN values compare false.
func (s *Series) Above(threshold float64) []bool {
	out := make([]bool, len(s.values))
	for i, v := range s.values {
		out[i] = v > threshold
	}
	return out
}

// Below returns one flag per observation, true where the value is less
// than threshold. NaN values compare false.
func (s *Series) Below(threshold float64) []bool {
	out := make([]bool, len(s.values))
	for i, v := range s.values {
		out[i] = v < threshold
	}
	return out
}

// AboveEach compares each observation against its own threshold, as
// produced by aligning a day-of-year curve to the series timestamps.
func (s *Series) AboveEach(thresholds []float64) ([]bool, error) {
	if len(thresholds) != len(s.values) {
		return nil, fmt.Errorf("got %d thresholds for %d observations", len(thresholds), len(s.values))
	}
	out := make([]bool, len(s.values))
	for i, v := range s.values {
		out[i] = v > thresholds[i]
	}
	return out, nil
}

// BelowEach compares each observation against its own threshold.
func (s *Series) BelowEach(thresholds []float64) ([]bool, error) {
	if len(thresholds) != len(s.values) {
		return nil, fmt.Errorf("got %d thresholds for %d observations", len(thresholds), len(s.values))
	}
	out := make([]bool, len(s.values))
	for i, v := range s.values {
		out[i] = v < thresholds[i]
	}
	return out, nil
}

// And combines two flag slices elementwise. Used for indicators that
// require two conditions on the same day, such as a heat wave needing
// both daily minimum and maximum above their thresholds.
func And(a, b []bool) ([]bool, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("flag slices differ in length: %d vs %d", len(a), len(b))
	}
	out := make([]bool, len(a))
	for i := range a {
		out[i] = a[i] && b[i]
	}
	return out, nil
}
