// Package runlength provides run-length statistics over boolean event
// series: longest consecutive run, and counts of runs or run members that
// meet a minimum length. These are the building blocks for spell-based
// climate indicators (consecutive dry days, heat wave frequency, cold
// spell duration and the like).
//
// All functions make a single left-to-right pass, allocate nothing, and
// treat runs touching either end of the input as complete runs. They are
// pure: safe to call concurrently from per-group or per-station workers.
package runlength

import "fmt"

// InvalidWindowError reports a windowed run query with a non-positive
// window. Windows are minimum run lengths and must be >= 1.
type InvalidWindowError struct {
	Window int
}

func (e *InvalidWindowError) Error() string {
	return fmt.Sprintf("run window must be positive, got %d", e.Window)
}

// LongestRun returns the length of the longest consecutive run of true
// values in group. A run touching the start or end of the group counts in
// full. Empty and all-false groups yield 0; an all-true group of length n
// yields n.
func LongestRun(group []bool) int {
	longest, current := 0, 0
	for _, v := range group {
		if !v {
			current = 0
			continue
		}
		current++
		if current > longest {
			longest = current
		}
	}
	return longest
}

// WindowedRunCount returns the number of maximal true runs in group whose
// length is at least window. Each qualifying run counts exactly once
// regardless of how far it exceeds window, so with window <= 1 the result
// is simply the number of maximal runs. Returns InvalidWindowError when
// window <= 0.
func WindowedRunCount(group []bool, window int) (int, error) {
	if window <= 0 {
		return 0, &InvalidWindowError{Window: window}
	}
	count, current := 0, 0
	for _, v := range group {
		if v {
			current++
			continue
		}
		if current >= window {
			count++
		}
		current = 0
	}
	// flush a run touching the end of the group
	if current >= window {
		count++
	}
	return count, nil
}

// WindowedRunEvents returns the total number of true entries that belong
// to some maximal run of length at least window: a qualifying run of
// length L contributes L. With window == 1 this is the total number of
// true entries. Returns InvalidWindowError when window <= 0.
func WindowedRunEvents(group []bool, window int) (int, error) {
	if window <= 0 {
		return 0, &InvalidWindowError{Window: window}
	}
	total, current := 0, 0
	for _, v := range group {
		if v {
			current++
			continue
		}
		if current >= window {
			total += current
		}
		current = 0
	}
	if current >= window {
		total += current
	}
	return total, nil
}
