package runlength

import (
	"errors"
	"strings"
	"testing"
)

// seq builds a bool slice from a pattern string: 'T' is true, 'F' is
// false, spaces are ignored.
func seq(pattern string) []bool {
	pattern = strings.ReplaceAll(pattern, " ", "")
	out := make([]bool, len(pattern))
	for i, c := range pattern {
		out[i] = c == 'T'
	}
	return out
}

func TestLongestRun(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    int
	}{
		{"empty", "", 0},
		{"all false", "FFFFF", 0},
		{"single true", "FTF", 1},
		{"all true", "TTTTTTTTTT", 10},
		{"run touching start", "TTF", 2},
		{"run touching end", "FTT", 2},
		{"interior run", "FTTTF", 3},
		{"two runs picks longer", "TTTF TTTT F", 4},
		{"alternating", "TFTFTFT", 1},
		{"tie keeps max", "TTFTTFTT", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LongestRun(seq(tt.pattern)); got != tt.want {
				t.Errorf("LongestRun(%q) = %d, want %d", tt.pattern, got, tt.want)
			}
		})
	}
}

func TestLongestRunBoundedByLength(t *testing.T) {
	patterns := []string{"", "T", "F", "TTFT", "FFTTTFF", "TTTTT", "TFTTFTTTFT"}
	for _, p := range patterns {
		s := seq(p)
		if got := LongestRun(s); got > len(s) {
			t.Errorf("LongestRun(%q) = %d exceeds length %d", p, got, len(s))
		}
	}
}

func TestWindowedRunCount(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		window  int
		want    int
	}{
		{"empty", "", 1, 0},
		{"all false", "FFFF", 2, 0},
		{"qualifying and short run", "TTTF TTTT F", 4, 1},
		{"window one counts maximal runs", "TTTF TTTT F", 1, 2},
		{"all true single run", "TTTTTTTTTT", 3, 1},
		{"window longer than any run", "TTF TT", 3, 0},
		{"run touching end qualifies", "FF TTT", 3, 1},
		{"run touching start qualifies", "TTT FF", 3, 1},
		{"exact window length", "F TT F TT F", 2, 2},
		{"alternating window one", "TFTFTFT", 1, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := WindowedRunCount(seq(tt.pattern), tt.window)
			if err != nil {
				t.Fatalf("WindowedRunCount(%q, %d) error: %v", tt.pattern, tt.window, err)
			}
			if got != tt.want {
				t.Errorf("WindowedRunCount(%q, %d) = %d, want %d", tt.pattern, tt.window, got, tt.want)
			}
		})
	}
}

func TestWindowedRunEvents(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		window  int
		want    int
	}{
		{"empty", "", 1, 0},
		{"all false", "FFFF", 1, 0},
		{"qualifying run contributes full length", "TTTF TTTT F", 4, 4},
		{"window one totals all true", "TTTF TTTT F", 1, 7},
		{"all true", "TTTTTTTTTT", 3, 10},
		{"no qualifying run", "TTF TF T", 3, 0},
		{"two qualifying runs", "TTT F TTTT", 3, 7},
		{"run touching end", "FF TTT", 2, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := WindowedRunEvents(seq(tt.pattern), tt.window)
			if err != nil {
				t.Fatalf("WindowedRunEvents(%q, %d) error: %v", tt.pattern, tt.window, err)
			}
			if got != tt.want {
				t.Errorf("WindowedRunEvents(%q, %d) = %d, want %d", tt.pattern, tt.window, got, tt.want)
			}
		})
	}
}

func TestInvalidWindow(t *testing.T) {
	for _, window := range []int{0, -1, -10} {
		if _, err := WindowedRunCount(seq("TTT"), window); err == nil {
			t.Errorf("WindowedRunCount window %d: expected error", window)
		}
		_, err := WindowedRunEvents(seq("TTT"), window)
		if err == nil {
			t.Fatalf("WindowedRunEvents window %d: expected error", window)
		}
		var iw *InvalidWindowError
		if !errors.As(err, &iw) {
			t.Errorf("window %d: error %v is not InvalidWindowError", window, err)
		} else if iw.Window != window {
			t.Errorf("window %d: error reports window %d", window, iw.Window)
		}
	}
}

// naiveRuns returns the lengths of all maximal true runs, for cross-checking
// the single-pass implementations.
func naiveRuns(group []bool) []int {
	var runs []int
	current := 0
	for _, v := range group {
		if v {
			current++
		} else if current > 0 {
			runs = append(runs, current)
			current = 0
		}
	}
	if current > 0 {
		runs = append(runs, current)
	}
	return runs
}

func TestAgainstNaiveReference(t *testing.T) {
	patterns := []string{
		"", "T", "F", "TT", "TF", "FT",
		"TTTF TTTT F", "TFTFTFTF", "FFFFF", "TTTTT",
		"TTFFTTTFFFTTTTFT", "FTTTTTTF", "TFFTTFFFTTTFFFFTTTT",
	}
	for _, p := range patterns {
		s := seq(p)
		runs := naiveRuns(s)

		wantLongest := 0
		for _, r := range runs {
			if r > wantLongest {
				wantLongest = r
			}
		}
		if got := LongestRun(s); got != wantLongest {
			t.Errorf("LongestRun(%q) = %d, want %d", p, got, wantLongest)
		}

		for window := 1; window <= 6; window++ {
			wantCount, wantEvents := 0, 0
			for _, r := range runs {
				if r >= window {
					wantCount++
					wantEvents += r
				}
			}
			gotCount, err := WindowedRunCount(s, window)
			if err != nil {
				t.Fatalf("WindowedRunCount(%q, %d): %v", p, window, err)
			}
			if gotCount != wantCount {
				t.Errorf("WindowedRunCount(%q, %d) = %d, want %d", p, window, gotCount, wantCount)
			}
			gotEvents, err := WindowedRunEvents(s, window)
			if err != nil {
				t.Fatalf("WindowedRunEvents(%q, %d): %v", p, window, err)
			}
			if gotEvents != wantEvents {
				t.Errorf("WindowedRunEvents(%q, %d) = %d, want %d", p, window, gotEvents, wantEvents)
			}
		}
	}
}

func TestWindowMonotonicity(t *testing.T) {
	s := seq("TTFFTTTFFFTTTTFTTTTTTF")
	prevCount, prevEvents := -1, -1
	for window := 1; window <= 8; window++ {
		count, err := WindowedRunCount(s, window)
		if err != nil {
			t.Fatal(err)
		}
		events, err := WindowedRunEvents(s, window)
		if err != nil {
			t.Fatal(err)
		}
		if prevCount >= 0 && count > prevCount {
			t.Errorf("count increased from %d to %d at window %d", prevCount, count, window)
		}
		if prevEvents >= 0 && events > prevEvents {
			t.Errorf("events increased from %d to %d at window %d", prevEvents, events, window)
		}
		prevCount, prevEvents = count, events
	}
}
