package indices

import (
	"fmt"

	"github.com/chrissnell/climdex/pkg/calendar"
	"github.com/chrissnell/climdex/pkg/resample"
	"github.com/chrissnell/climdex/pkg/timeseries"
	"github.com/chrissnell/climdex/pkg/units"
)

// Variable names a required daily input series, using the conventional
// short names climate datasets publish under.
type Variable string

const (
	VarTas       Variable = "tas"    // daily mean temperature
	VarTasMin    Variable = "tasmin" // daily minimum temperature
	VarTasMax    Variable = "tasmax" // daily maximum temperature
	VarPrecip    Variable = "pr"     // daily precipitation rate
	VarDischarge Variable = "q"      // daily mean discharge
)

// Input is a daily series with its declared unit.
type Input struct {
	Series *timeseries.Series
	Unit   units.Unit
}

// CurveInput is a day-of-year climatology with the unit its values are
// expressed in.
type CurveInput struct {
	Curve *calendar.Curve
	Unit  units.Unit
}

// Params carries the tunable parameters registry entries accept. Zero
// values select the indicator's conventional default.
type Params struct {
	Threshold    string // single-threshold indicators, "<value> <unit>"
	ThresholdMin string // tasmin threshold for two-variable spells
	ThresholdMax string // tasmax threshold for two-variable spells
	Window       int    // minimum spell length or accumulation window
}

// Indicator is one catalogue entry: the metadata tooling lists plus a
// compute closure binding named inputs to the typed indicator function.
type Indicator struct {
	Name        string
	Summary     string
	Units       string
	Requires    []Variable
	NeedsCurve  bool
	DefaultFreq string
	Compute     func(in map[Variable]Input, curve *CurveInput, p Params, freq resample.Frequency) ([]Value, error)
}

func need(in map[Variable]Input, v Variable) (Input, error) {
	i, ok := in[v]
	if !ok || i.Series == nil {
		return Input{}, fmt.Errorf("missing required input %q", v)
	}
	return i, nil
}

func needCurve(c *CurveInput) (*CurveInput, error) {
	if c == nil || c.Curve == nil {
		return nil, fmt.Errorf("indicator requires a day-of-year climatology")
	}
	return c, nil
}

func quantityOr(s, fallback string) (units.Quantity, error) {
	if s == "" {
		s = fallback
	}
	return units.ParseQuantity(s)
}

func windowOr(w, fallback int) int {
	if w == 0 {
		return fallback
	}
	return w
}

// Registry returns the indicator catalogue keyed by name. The returned
// map is freshly built and safe to modify.
func Registry() map[string]Indicator {
	entries := []Indicator{
		{
			Name:        "frost_days",
			Summary:     "Days with daily minimum temperature below 0 degC",
			Units:       "days",
			Requires:    []Variable{VarTasMin},
			DefaultFreq: "YS",
			Compute: func(in map[Variable]Input, _ *CurveInput, _ Params, freq resample.Frequency) ([]Value, error) {
				tn, err := need(in, VarTasMin)
				if err != nil {
					return nil, err
				}
				return FrostDays(tn.Series, tn.Unit, freq)
			},
		},
		{
			Name:        "ice_days",
			Summary:     "Days with daily maximum temperature below 0 degC",
			Units:       "days",
			Requires:    []Variable{VarTasMax},
			DefaultFreq: "YS",
			Compute: func(in map[Variable]Input, _ *CurveInput, _ Params, freq resample.Frequency) ([]Value, error) {
				tx, err := need(in, VarTasMax)
				if err != nil {
					return nil, err
				}
				return IceDays(tx.Series, tx.Unit, freq)
			},
		},
		{
			Name:        "tropical_nights",
			Summary:     "Days with daily minimum temperature above a threshold (default 20 degC)",
			Units:       "days",
			Requires:    []Variable{VarTasMin},
			DefaultFreq: "YS",
			Compute: func(in map[Variable]Input, _ *CurveInput, p Params, freq resample.Frequency) ([]Value, error) {
				tn, err := need(in, VarTasMin)
				if err != nil {
					return nil, err
				}
				thresh, err := quantityOr(p.Threshold, "20 degC")
				if err != nil {
					return nil, err
				}
				return TropicalNights(tn.Series, tn.Unit, thresh, freq)
			},
		},
		{
			Name:        "consecutive_frost_days",
			Summary:     "Longest run of days with daily minimum temperature below 0 degC",
			Units:       "days",
			Requires:    []Variable{VarTasMin},
			DefaultFreq: "AS-JUL",
			Compute: func(in map[Variable]Input, _ *CurveInput, _ Params, freq resample.Frequency) ([]Value, error) {
				tn, err := need(in, VarTasMin)
				if err != nil {
					return nil, err
				}
				return ConsecutiveFrostDays(tn.Series, tn.Unit, freq)
			},
		},
		{
			Name:        "heat_wave_frequency",
			Summary:     "Number of spells of at least window days with tasmin and tasmax above their thresholds",
			Units:       "events",
			Requires:    []Variable{VarTasMin, VarTasMax},
			DefaultFreq: "YS",
			Compute: func(in map[Variable]Input, _ *CurveInput, p Params, freq resample.Frequency) ([]Value, error) {
				tn, err := need(in, VarTasMin)
				if err != nil {
					return nil, err
				}
				tx, err := need(in, VarTasMax)
				if err != nil {
					return nil, err
				}
				tmin, err := quantityOr(p.ThresholdMin, "22 degC")
				if err != nil {
					return nil, err
				}
				tmax, err := quantityOr(p.ThresholdMax, "30 degC")
				if err != nil {
					return nil, err
				}
				return HeatWaveFrequency(tn.Series, tx.Series, tn.Unit, tx.Unit, tmin, tmax, windowOr(p.Window, 3), freq)
			},
		},
		{
			Name:        "heat_wave_max_length",
			Summary:     "Longest heat wave of at least window days, 0 when no spell qualifies",
			Units:       "days",
			Requires:    []Variable{VarTasMin, VarTasMax},
			DefaultFreq: "YS",
			Compute: func(in map[Variable]Input, _ *CurveInput, p Params, freq resample.Frequency) ([]Value, error) {
				tn, err := need(in, VarTasMin)
				if err != nil {
					return nil, err
				}
				tx, err := need(in, VarTasMax)
				if err != nil {
					return nil, err
				}
				tmin, err := quantityOr(p.ThresholdMin, "22 degC")
				if err != nil {
					return nil, err
				}
				tmax, err := quantityOr(p.ThresholdMax, "30 degC")
				if err != nil {
					return nil, err
				}
				return HeatWaveMaxLength(tn.Series, tx.Series, tn.Unit, tx.Unit, tmin, tmax, windowOr(p.Window, 3), freq)
			},
		},
		{
			Name:        "cold_spell_duration_index",
			Summary:     "Days in spells of at least window days with tasmin below the day-of-year 10th percentile",
			Units:       "days",
			Requires:    []Variable{VarTasMin},
			NeedsCurve:  true,
			DefaultFreq: "YS",
			Compute: func(in map[Variable]Input, curve *CurveInput, p Params, freq resample.Frequency) ([]Value, error) {
				tn, err := need(in, VarTasMin)
				if err != nil {
					return nil, err
				}
				c, err := needCurve(curve)
				if err != nil {
					return nil, err
				}
				return ColdSpellDurationIndex(tn.Series, tn.Unit, c.Curve, c.Unit, windowOr(p.Window, 6), freq)
			},
		},
		{
			Name:        "warm_spell_duration_index",
			Summary:     "Days in spells of at least window days with tasmax above the day-of-year 90th percentile",
			Units:       "days",
			Requires:    []Variable{VarTasMax},
			NeedsCurve:  true,
			DefaultFreq: "YS",
			Compute: func(in map[Variable]Input, curve *CurveInput, p Params, freq resample.Frequency) ([]Value, error) {
				tx, err := need(in, VarTasMax)
				if err != nil {
					return nil, err
				}
				c, err := needCurve(curve)
				if err != nil {
					return nil, err
				}
				return WarmSpellDurationIndex(tx.Series, tx.Unit, c.Curve, c.Unit, windowOr(p.Window, 6), freq)
			},
		},
		{
			Name:        "tg90p",
			Summary:     "Days with mean temperature above the day-of-year 90th percentile",
			Units:       "days",
			Requires:    []Variable{VarTas},
			NeedsCurve:  true,
			DefaultFreq: "YS",
			Compute: func(in map[Variable]Input, curve *CurveInput, _ Params, freq resample.Frequency) ([]Value, error) {
				tg, err := need(in, VarTas)
				if err != nil {
					return nil, err
				}
				c, err := needCurve(curve)
				if err != nil {
					return nil, err
				}
				return TG90P(tg.Series, tg.Unit, c.Curve, c.Unit, freq)
			},
		},
		{
			Name:        "tg10p",
			Summary:     "Days with mean temperature below the day-of-year 10th percentile",
			Units:       "days",
			Requires:    []Variable{VarTas},
			NeedsCurve:  true,
			DefaultFreq: "YS",
			Compute: func(in map[Variable]Input, curve *CurveInput, _ Params, freq resample.Frequency) ([]Value, error) {
				tg, err := need(in, VarTas)
				if err != nil {
					return nil, err
				}
				c, err := needCurve(curve)
				if err != nil {
					return nil, err
				}
				return TG10P(tg.Series, tg.Unit, c.Curve, c.Unit, freq)
			},
		},
		{
			Name:        "daily_freezethaw_cycles",
			Summary:     "Days with daily maximum above 0 degC and daily minimum below 0 degC",
			Units:       "days",
			Requires:    []Variable{VarTasMax, VarTasMin},
			DefaultFreq: "YS",
			Compute: func(in map[Variable]Input, _ *CurveInput, _ Params, freq resample.Frequency) ([]Value, error) {
				tx, err := need(in, VarTasMax)
				if err != nil {
					return nil, err
				}
				tn, err := need(in, VarTasMin)
				if err != nil {
					return nil, err
				}
				return DailyFreezeThawCycles(tx.Series, tn.Series, tx.Unit, tn.Unit, freq)
			},
		},
		{
			Name:        "maximum_consecutive_dry_days",
			Summary:     "Longest run of days with precipitation below a threshold (default 1 mm/day)",
			Units:       "days",
			Requires:    []Variable{VarPrecip},
			DefaultFreq: "YS",
			Compute: func(in map[Variable]Input, _ *CurveInput, p Params, freq resample.Frequency) ([]Value, error) {
				pr, err := need(in, VarPrecip)
				if err != nil {
					return nil, err
				}
				thresh, err := quantityOr(p.Threshold, "1 mm/day")
				if err != nil {
					return nil, err
				}
				return MaximumConsecutiveDryDays(pr.Series, pr.Unit, thresh, freq)
			},
		},
		{
			Name:        "precip_accumulation",
			Summary:     "Total precipitation per period",
			Units:       "mm",
			Requires:    []Variable{VarPrecip},
			DefaultFreq: "YS",
			Compute: func(in map[Variable]Input, _ *CurveInput, _ Params, freq resample.Frequency) ([]Value, error) {
				pr, err := need(in, VarPrecip)
				if err != nil {
					return nil, err
				}
				return PrecipAccumulation(pr.Series, pr.Unit, freq)
			},
		},
		{
			Name:        "max_n_day_precipitation_amount",
			Summary:     "Highest precipitation accumulated over window consecutive days (default 5)",
			Units:       "mm",
			Requires:    []Variable{VarPrecip},
			DefaultFreq: "YS",
			Compute: func(in map[Variable]Input, _ *CurveInput, p Params, freq resample.Frequency) ([]Value, error) {
				pr, err := need(in, VarPrecip)
				if err != nil {
					return nil, err
				}
				return MaxNDayPrecipAmount(pr.Series, pr.Unit, windowOr(p.Window, 5), freq)
			},
		},
		{
			Name:        "base_flow_index",
			Summary:     "Minimum centered 7-day mean discharge over mean discharge",
			Units:       "1",
			Requires:    []Variable{VarDischarge},
			DefaultFreq: "YS",
			Compute: func(in map[Variable]Input, _ *CurveInput, _ Params, freq resample.Frequency) ([]Value, error) {
				q, err := need(in, VarDischarge)
				if err != nil {
					return nil, err
				}
				return BaseFlowIndex(q.Series, q.Unit, freq)
			},
		},
	}

	out := make(map[string]Indicator, len(entries))
	for _, ind := range entries {
		out[ind.Name] = ind
	}
	return out
}
