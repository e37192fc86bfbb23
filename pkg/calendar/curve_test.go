package calendar

import (
	"math"
	"testing"
)

func TestNewCurveValidation(t *testing.T) {
	tests := []struct {
		name   string
		cal    Calendar
		days   []int
		values []float64
	}{
		{"empty", NoLeap, nil, nil},
		{"length mismatch", NoLeap, []int{1, 2}, []float64{1.0}},
		{"duplicate day", NoLeap, []int{1, 2, 2}, []float64{1, 2, 3}},
		{"day zero", NoLeap, []int{0, 1}, []float64{1, 2}},
		{"day past calendar", NoLeap, []int{1, 366}, []float64{1, 2}},
		{"day past 360 calendar", Day360, []int{361}, []float64{1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewCurve(tt.cal, tt.days, tt.values); err == nil {
				t.Errorf("NewCurve(%v) succeeded, want error", tt.days)
			}
		})
	}
}

func TestNewCurveSortsDays(t *testing.T) {
	c, err := NewCurve(NoLeap, []int{30, 10, 20}, []float64{3, 1, 2})
	if err != nil {
		t.Fatal(err)
	}
	days := c.Days()
	want := []int{10, 20, 30}
	for i := range want {
		if days[i] != want[i] {
			t.Fatalf("Days() = %v, want %v", days, want)
		}
	}
	for i, day := range want {
		v, ok := c.Value(day)
		if !ok {
			t.Fatalf("Value(%d) missing", day)
		}
		if v != float64(i+1) {
			t.Errorf("Value(%d) = %v, want %v", day, v, float64(i+1))
		}
	}
	if _, ok := c.Value(15); ok {
		t.Error("Value(15) present, want absent")
	}
}

func TestCurveCopiesInput(t *testing.T) {
	days := []int{1, 2}
	values := []float64{10, 20}
	c, err := NewCurve(NoLeap, days, values)
	if err != nil {
		t.Fatal(err)
	}
	values[0] = -1
	if v, _ := c.Value(1); v != 10 {
		t.Errorf("curve aliases caller slice: Value(1) = %v", v)
	}
}

func TestUnlabeledCurve(t *testing.T) {
	c := UnlabeledCurve(Standard, []float64{1, 2, 3})
	if c.Labeled() {
		t.Error("UnlabeledCurve reports Labeled")
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}
	labeled, err := NewCurve(Standard, []int{1}, []float64{1})
	if err != nil {
		t.Fatal(err)
	}
	if !labeled.Labeled() {
		t.Error("NewCurve result not Labeled")
	}
}

func TestMapValues(t *testing.T) {
	c, err := NewCurve(NoLeap, []int{1, 2, 3}, []float64{0, 100, 28})
	if err != nil {
		t.Fatal(err)
	}
	f := c.MapValues(func(v float64) float64 { return v*1.8 + 32 })
	want := []float64{32, 212, 82.4}
	for i, day := range []int{1, 2, 3} {
		got, _ := f.Value(day)
		if math.Abs(got-want[i]) > 1e-9 {
			t.Errorf("MapValues day %d = %v, want %v", day, got, want[i])
		}
	}
	// source curve untouched
	if v, _ := c.Value(1); v != 0 {
		t.Errorf("MapValues mutated source: Value(1) = %v", v)
	}
	if f.Calendar() != NoLeap {
		t.Errorf("MapValues calendar = %s, want noleap", f.Calendar())
	}
}
