package indices

import (
	"testing"
	"time"

	"github.com/chrissnell/climdex/pkg/calendar"
	"github.com/chrissnell/climdex/pkg/units"
)

func TestRegistryEntriesComplete(t *testing.T) {
	reg := Registry()
	wantNames := []string{
		"frost_days", "ice_days", "tropical_nights", "consecutive_frost_days",
		"heat_wave_frequency", "heat_wave_max_length",
		"cold_spell_duration_index", "warm_spell_duration_index",
		"tg90p", "tg10p", "daily_freezethaw_cycles",
		"maximum_consecutive_dry_days", "precip_accumulation",
		"max_n_day_precipitation_amount", "base_flow_index",
	}
	if len(reg) != len(wantNames) {
		t.Errorf("registry has %d entries, want %d", len(reg), len(wantNames))
	}
	for _, name := range wantNames {
		ind, ok := reg[name]
		if !ok {
			t.Errorf("registry missing %q", name)
			continue
		}
		if ind.Name != name {
			t.Errorf("%q entry carries name %q", name, ind.Name)
		}
		if ind.Summary == "" || ind.Units == "" || ind.DefaultFreq == "" {
			t.Errorf("%q entry has incomplete metadata: %+v", name, ind)
		}
		if len(ind.Requires) == 0 {
			t.Errorf("%q entry requires no variables", name)
		}
		if ind.Compute == nil {
			t.Errorf("%q entry has no compute function", name)
		}
	}
}

func TestRegistryComputeEndToEnd(t *testing.T) {
	tasmin := genSeries(t, "2021-01-01", "2021-12-31", func(d time.Time) float64 {
		if within(d, "2021-02-01", "2021-02-07") {
			return -3
		}
		return 5
	})
	in := map[Variable]Input{
		VarTasMin: {Series: tasmin, Unit: units.DegC},
	}

	got, err := Registry()["frost_days"].Compute(in, nil, Params{}, freq(t, "YS"))
	if err != nil {
		t.Fatal(err)
	}
	checkResults(t, got, []float64{7})
}

func TestRegistryThresholdOverride(t *testing.T) {
	tasmin := genSeries(t, "2021-01-01", "2021-12-31", func(d time.Time) float64 {
		if within(d, "2021-07-01", "2021-07-12") {
			return 22
		}
		return 15
	})
	in := map[Variable]Input{
		VarTasMin: {Series: tasmin, Unit: units.DegC},
	}
	entry := Registry()["tropical_nights"]

	got, err := entry.Compute(in, nil, Params{}, freq(t, "YS"))
	if err != nil {
		t.Fatal(err)
	}
	checkResults(t, got, []float64{12})

	got, err = entry.Compute(in, nil, Params{Threshold: "25 degC"}, freq(t, "YS"))
	if err != nil {
		t.Fatal(err)
	}
	checkResults(t, got, []float64{0})

	if _, err := entry.Compute(in, nil, Params{Threshold: "25 parsecs"}, freq(t, "YS")); err == nil {
		t.Error("unparseable threshold accepted")
	}
}

func TestRegistryMissingInput(t *testing.T) {
	if _, err := Registry()["frost_days"].Compute(map[Variable]Input{}, nil, Params{}, freq(t, "YS")); err == nil {
		t.Error("missing tasmin accepted")
	}
}

func TestRegistryCurveRequired(t *testing.T) {
	tasmin := genSeries(t, "2021-01-01", "2021-01-31", func(time.Time) float64 { return 5 })
	in := map[Variable]Input{
		VarTasMin: {Series: tasmin, Unit: units.DegC},
	}
	entry := Registry()["cold_spell_duration_index"]

	if _, err := entry.Compute(in, nil, Params{}, freq(t, "YS")); err == nil {
		t.Error("missing climatology accepted")
	}

	curve := constantCurve(t, calendar.NoLeap, 365, 0)
	got, err := entry.Compute(in, &CurveInput{Curve: curve, Unit: units.DegC}, Params{}, freq(t, "YS"))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d periods", len(got))
	}
}
