package resample

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestParseFrequency(t *testing.T) {
	tests := []struct {
		in   string
		want Frequency
	}{
		{"YS", Frequency{Annual, time.January}},
		{"ys", Frequency{Annual, time.January}},
		{"AS", Frequency{Annual, time.January}},
		{"AS-JUL", Frequency{Annual, time.July}},
		{"YS-JUL", Frequency{Annual, time.July}},
		{"QS", Frequency{Quarterly, time.January}},
		{"QS-DEC", Frequency{Quarterly, time.December}},
		{"MS", Frequency{Monthly, time.January}},
		{"M", Frequency{Monthly, time.January}},
	}
	for _, tt := range tests {
		got, err := ParseFrequency(tt.in)
		if err != nil {
			t.Errorf("ParseFrequency(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFrequency(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"", "W", "QS-XXX", "MS-JAN", "D"} {
		if _, err := ParseFrequency(bad); err == nil {
			t.Errorf("ParseFrequency(%q): expected error", bad)
		}
	}
}

func TestFrequencyString(t *testing.T) {
	tests := []struct {
		f    Frequency
		want string
	}{
		{Frequency{Annual, time.January}, "YS"},
		{Frequency{Annual, time.July}, "AS-JUL"},
		{Frequency{Quarterly, time.December}, "QS-DEC"},
		{Frequency{Monthly, time.January}, "MS"},
	}
	for _, tt := range tests {
		if got := tt.f.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
		back, err := ParseFrequency(tt.want)
		if err != nil || back != tt.f {
			t.Errorf("ParseFrequency(%q) = %+v, %v; want %+v", tt.want, back, err, tt.f)
		}
	}
}

func TestPeriodStart(t *testing.T) {
	tests := []struct {
		freq string
		date string
		want string
	}{
		{"YS", "2023-06-15", "2023-01-01"},
		{"YS", "2023-01-01", "2023-01-01"},
		{"AS-JUL", "2023-06-30", "2022-07-01"},
		{"AS-JUL", "2023-07-01", "2023-07-01"},
		{"AS-JUL", "2023-12-25", "2023-07-01"},
		{"QS-DEC", "2024-01-15", "2023-12-01"},
		{"QS-DEC", "2024-02-29", "2023-12-01"},
		{"QS-DEC", "2024-03-01", "2024-03-01"},
		{"QS-DEC", "2024-05-10", "2024-03-01"},
		{"QS-DEC", "2023-12-01", "2023-12-01"},
		{"MS", "2024-02-29", "2024-02-01"},
	}
	for _, tt := range tests {
		f, err := ParseFrequency(tt.freq)
		if err != nil {
			t.Fatal(err)
		}
		d, err := time.Parse("2006-01-02", tt.date)
		if err != nil {
			t.Fatal(err)
		}
		got := f.PeriodStart(d)
		if got.Format("2006-01-02") != tt.want {
			t.Errorf("%s PeriodStart(%s) = %s, want %s", tt.freq, tt.date, got.Format("2006-01-02"), tt.want)
		}
	}
}

func dailyTimes(t *testing.T, start, end string) []time.Time {
	t.Helper()
	s, err := time.Parse("2006-01-02", start)
	if err != nil {
		t.Fatal(err)
	}
	e, err := time.Parse("2006-01-02", end)
	if err != nil {
		t.Fatal(err)
	}
	var out []time.Time
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}

func TestGroupByAnnual(t *testing.T) {
	times := dailyTimes(t, "2022-01-01", "2023-12-31")
	f, _ := ParseFrequency("YS")
	groups := GroupBy(times, f)
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if groups[0].Label.Format("2006-01-02") != "2022-01-01" {
		t.Errorf("group 0 label %s", groups[0].Label.Format("2006-01-02"))
	}
	if groups[0].Len() != 365 {
		t.Errorf("2022 has %d days, want 365", groups[0].Len())
	}
	if groups[1].Len() != 365 {
		t.Errorf("2023 has %d days, want 365", groups[1].Len())
	}
	if groups[0].End != groups[1].Start {
		t.Error("groups are not contiguous")
	}
	if groups[1].End != len(times) {
		t.Error("groups do not cover the series")
	}
}

func TestGroupBySeasonSpansYearEnd(t *testing.T) {
	times := dailyTimes(t, "2022-12-01", "2023-03-05")
	f, _ := ParseFrequency("QS-DEC")
	groups := GroupBy(times, f)
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	// December through February in one winter group
	if groups[0].Label.Format("2006-01-02") != "2022-12-01" {
		t.Errorf("winter label %s", groups[0].Label.Format("2006-01-02"))
	}
	if groups[0].Len() != 31+31+28 {
		t.Errorf("winter has %d days, want 90", groups[0].Len())
	}
	if groups[1].Label.Format("2006-01-02") != "2023-03-01" {
		t.Errorf("spring label %s", groups[1].Label.Format("2006-01-02"))
	}
}

func TestGroupByEmitsEmptyInteriorPeriods(t *testing.T) {
	jan := dailyTimes(t, "2023-01-01", "2023-01-31")
	mar := dailyTimes(t, "2023-03-01", "2023-03-31")
	times := append(jan, mar...)
	f, _ := ParseFrequency("MS")
	groups := GroupBy(times, f)
	if len(groups) != 3 {
		t.Fatalf("got %d groups, want 3 (jan, feb, mar)", len(groups))
	}
	if !groups[1].Empty() {
		t.Errorf("february group not empty: %d observations", groups[1].Len())
	}
	if groups[0].Len() != 31 || groups[2].Len() != 31 {
		t.Errorf("group sizes %d, %d; want 31, 31", groups[0].Len(), groups[2].Len())
	}
}

func TestGroupByEmpty(t *testing.T) {
	f, _ := ParseFrequency("YS")
	if groups := GroupBy(nil, f); groups != nil {
		t.Errorf("GroupBy(nil) = %v", groups)
	}
}

func TestReduce(t *testing.T) {
	times := dailyTimes(t, "2023-01-01", "2023-01-10")
	data := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	groups := []Group{
		{Label: times[0], Start: 0, End: 5},
		{Label: times[5], Start: 5, End: 5},
		{Label: times[5], Start: 5, End: 10},
	}
	got := Reduce(groups, data, func(xs []int) int {
		total := 0
		for _, x := range xs {
			total += x
		}
		return total
	})
	want := []int{15, 0, 40}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Reduce[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestReduceErr(t *testing.T) {
	groups := []Group{{Start: 0, End: 2}, {Start: 2, End: 4}}
	data := []bool{true, true, false, true}

	boom := errors.New("boom")
	_, err := ReduceErr(groups, data, func(xs []bool) (int, error) {
		if !xs[0] {
			return 0, boom
		}
		return len(xs), nil
	})
	if !errors.Is(err, boom) {
		t.Errorf("ReduceErr error = %v, want wrapped boom", err)
	}

	got, err := ReduceErr(groups, data, func(xs []bool) (int, error) { return len(xs), nil })
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != 2 || got[1] != 2 {
		t.Errorf("ReduceErr = %v", got)
	}

	bad := []Group{{Start: 0, End: 99}}
	if _, err := ReduceErr(bad, data, func(xs []bool) (int, error) { return 0, nil }); err == nil {
		t.Error("out-of-range group accepted")
	}
}

func TestFloatReducers(t *testing.T) {
	xs := []float64{3, math.NaN(), 1, 2}

	if got, ok := Sum(xs); !ok || got != 6 {
		t.Errorf("Sum = %v, %v", got, ok)
	}
	if got, ok := Mean(xs); !ok || got != 2 {
		t.Errorf("Mean = %v, %v", got, ok)
	}
	if got, ok := Min(xs); !ok || got != 1 {
		t.Errorf("Min = %v, %v", got, ok)
	}
	if got, ok := Max(xs); !ok || got != 3 {
		t.Errorf("Max = %v, %v", got, ok)
	}

	for name, fn := range map[string]func([]float64) (float64, bool){
		"Sum": Sum, "Mean": Mean, "Min": Min, "Max": Max,
	} {
		if _, ok := fn(nil); ok {
			t.Errorf("%s(nil) reported a defined result", name)
		}
		if _, ok := fn([]float64{math.NaN(), math.NaN()}); ok {
			t.Errorf("%s(all NaN) reported a defined result", name)
		}
	}

	if got := CountTrue([]bool{true, false, true, true}); got != 3 {
		t.Errorf("CountTrue = %d, want 3", got)
	}
}
