package timeseries

import (
	"math"
	"testing"
	"time"
)

func day(t *testing.T, date string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

// days returns n consecutive daily timestamps starting at start.
func days(t *testing.T, start string, n int) []time.Time {
	t.Helper()
	first := day(t, start)
	out := make([]time.Time, n)
	for i := range out {
		out[i] = first.AddDate(0, 0, i)
	}
	return out
}

func mustSeries(t *testing.T, start string, values []float64) *Series {
	t.Helper()
	s, err := New(days(t, start, len(values)), values)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestNewValidation(t *testing.T) {
	ts := days(t, "2023-01-01", 3)

	if _, err := New(ts, []float64{1, 2}); err == nil {
		t.Error("length mismatch accepted")
	}

	dup := []time.Time{ts[0], ts[1], ts[1]}
	if _, err := New(dup, []float64{1, 2, 3}); err == nil {
		t.Error("duplicate timestamp accepted")
	}

	rev := []time.Time{ts[1], ts[0], ts[2]}
	if _, err := New(rev, []float64{1, 2, 3}); err == nil {
		t.Error("out-of-order timestamps accepted")
	}

	empty, err := New(nil, nil)
	if err != nil {
		t.Fatalf("empty series rejected: %v", err)
	}
	if empty.Len() != 0 {
		t.Errorf("empty series Len = %d", empty.Len())
	}
}

func TestNewCopiesInput(t *testing.T) {
	values := []float64{1, 2, 3}
	s, err := New(days(t, "2023-01-01", 3), values)
	if err != nil {
		t.Fatal(err)
	}
	values[0] = 99
	if s.Value(0) != 1 {
		t.Errorf("series aliases caller slice: Value(0) = %v", s.Value(0))
	}
}

func TestSlice(t *testing.T) {
	s := mustSeries(t, "2023-01-01", []float64{1, 2, 3, 4, 5})
	sub := s.Slice(1, 4)
	if sub.Len() != 3 {
		t.Fatalf("Slice len = %d, want 3", sub.Len())
	}
	if sub.Value(0) != 2 || sub.Value(2) != 4 {
		t.Errorf("Slice values = %v", sub.Values())
	}
	if !sub.Time(0).Equal(day(t, "2023-01-02")) {
		t.Errorf("Slice time = %s", sub.Time(0))
	}
}

func TestCompare(t *testing.T) {
	s := mustSeries(t, "2023-01-01", []float64{-2, 0, 3, math.NaN(), 5})

	above := s.Above(0)
	wantAbove := []bool{false, false, true, false, true}
	for i := range wantAbove {
		if above[i] != wantAbove[i] {
			t.Errorf("Above(0)[%d] = %v, want %v", i, above[i], wantAbove[i])
		}
	}

	below := s.Below(0)
	wantBelow := []bool{true, false, false, false, false}
	for i := range wantBelow {
		if below[i] != wantBelow[i] {
			t.Errorf("Below(0)[%d] = %v, want %v", i, below[i], wantBelow[i])
		}
	}
}

func TestCompareEach(t *testing.T) {
	s := mustSeries(t, "2023-01-01", []float64{1, 5, 3})

	above, err := s.AboveEach([]float64{0, 10, 3})
	if err != nil {
		t.Fatal(err)
	}
	wantAbove := []bool{true, false, false}
	for i := range wantAbove {
		if above[i] != wantAbove[i] {
			t.Errorf("AboveEach[%d] = %v, want %v", i, above[i], wantAbove[i])
		}
	}

	below, err := s.BelowEach([]float64{0, 10, 4})
	if err != nil {
		t.Fatal(err)
	}
	wantBelow := []bool{false, true, true}
	for i := range wantBelow {
		if below[i] != wantBelow[i] {
			t.Errorf("BelowEach[%d] = %v, want %v", i, below[i], wantBelow[i])
		}
	}

	if _, err := s.AboveEach([]float64{1}); err == nil {
		t.Error("AboveEach length mismatch accepted")
	}
}

func TestAnd(t *testing.T) {
	got, err := And([]bool{true, true, false, false}, []bool{true, false, true, false})
	if err != nil {
		t.Fatal(err)
	}
	want := []bool{true, false, false, false}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("And[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if _, err := And([]bool{true}, []bool{true, false}); err == nil {
		t.Error("And length mismatch accepted")
	}
}

func TestRollingSumTrailing(t *testing.T) {
	s := mustSeries(t, "2023-01-01", []float64{1, 2, 3, 4, 5})
	r := s.RollingSum(2, false)
	want := []float64{math.NaN(), 3, 5, 7, 9}
	checkValues(t, r.Values(), want)
	if !r.Time(0).Equal(s.Time(0)) {
		t.Error("rolling series dropped timestamps")
	}
}

func TestRollingMeanCentered(t *testing.T) {
	s := mustSeries(t, "2023-01-01", []float64{1, 2, 3, 4, 5})
	r := s.RollingMean(3, true)
	want := []float64{math.NaN(), 2, 3, 4, math.NaN()}
	checkValues(t, r.Values(), want)
}

func TestRollingNaNPropagates(t *testing.T) {
	s := mustSeries(t, "2023-01-01", []float64{1, 2, math.NaN(), 4, 5})
	r := s.RollingSum(2, false)
	want := []float64{math.NaN(), 3, math.NaN(), math.NaN(), 9}
	checkValues(t, r.Values(), want)
}

func TestRollingWindowOne(t *testing.T) {
	s := mustSeries(t, "2023-01-01", []float64{1, 2, 3})
	r := s.RollingMean(1, true)
	checkValues(t, r.Values(), []float64{1, 2, 3})
}

func checkValues(t *testing.T, got, want []float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d values, want %d", len(got), len(want))
	}
	for i := range want {
		if math.IsNaN(want[i]) {
			if !math.IsNaN(got[i]) {
				t.Errorf("[%d] = %v, want NaN", i, got[i])
			}
			continue
		}
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
