package resample

import (
	"fmt"
	"math"
)

// Reduce applies fn to each group's sub-slice of data and returns one
// result per group, in group order. The groups must come from GroupBy
// over timestamps parallel to data.
func Reduce[D, R any](groups []Group, data []D, fn func([]D) R) []R {
	out := make([]R, len(groups))
	for i, g := range groups {
		out[i] = fn(data[g.Start:g.End])
	}
	return out
}

// ReduceErr is Reduce for reducers that can fail; the first failure
// aborts and is returned with the offending period label.
func ReduceErr[D, R any](groups []Group, data []D, fn func([]D) (R, error)) ([]R, error) {
	out := make([]R, len(groups))
	for i, g := range groups {
		if g.Start < 0 || g.End > len(data) || g.Start > g.End {
			return nil, fmt.Errorf("group %s range [%d,%d) outside data of length %d",
				g.Label.Format("2006-01-02"), g.Start, g.End, len(data))
		}
		r, err := fn(data[g.Start:g.End])
		if err != nil {
			return nil, fmt.Errorf("period %s: %w", g.Label.Format("2006-01-02"), err)
		}
		out[i] = r
	}
	return out, nil
}

// Sum totals the finite values in xs. The second return is false when xs
// holds no finite value, in which case the statistic is undefined.
func Sum(xs []float64) (float64, bool) {
	total, any := 0.0, false
	for _, x := range xs {
		if math.IsNaN(x) {
			continue
		}
		total += x
		any = true
	}
	return total, any
}

// Mean averages the finite values in xs.
func Mean(xs []float64) (float64, bool) {
	total, n := 0.0, 0
	for _, x := range xs {
		if math.IsNaN(x) {
			continue
		}
		total += x
		n++
	}
	if n == 0 {
		return 0, false
	}
	return total / float64(n), true
}

// Min returns the smallest finite value in xs.
func Min(xs []float64) (float64, bool) {
	best, any := 0.0, false
	for _, x := range xs {
		if math.IsNaN(x) {
			continue
		}
		if !any || x < best {
			best = x
		}
		any = true
	}
	return best, any
}

// Max returns the largest finite value in xs.
func Max(xs []float64) (float64, bool) {
	best, any := 0.0, false
	for _, x := range xs {
		if math.IsNaN(x) {
			continue
		}
		if !any || x > best {
			best = x
		}
		any = true
	}
	return best, any
}

// CountTrue returns the number of set flags.
func CountTrue(flags []bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}
