// Package units provides the measurement units and conversions the
// indicator catalogue needs: temperatures, precipitation rates and
// amounts, and discharge. Conversions are linear, or affine for
// temperatures; converting across dimensions is an error. Indicator
// entry points use RequireDimension to validate their inputs before any
// computation runs.
package units

import (
	"fmt"
	"strings"
)

// Dimension classifies units that convert among each other.
type Dimension int

const (
	Dimensionless Dimension = iota
	Temperature
	PrecipRate
	Length
	Discharge
)

func (d Dimension) String() string {
	switch d {
	case Dimensionless:
		return "dimensionless"
	case Temperature:
		return "temperature"
	case PrecipRate:
		return "precipitation rate"
	case Length:
		return "length"
	case Discharge:
		return "discharge"
	}
	return fmt.Sprintf("dimension(%d)", int(d))
}

// Unit is a measurement unit with a fixed dimension. Conversion maps a
// value onto the dimension's base unit (K, mm/day, mm, m3/s) by
// value*scale + offset; only temperatures use the offset.
type Unit struct {
	name   string
	dim    Dimension
	scale  float64
	offset float64
}

var (
	One = Unit{"1", Dimensionless, 1, 0}

	Kelvin = Unit{"K", Temperature, 1, 0}
	DegC   = Unit{"degC", Temperature, 1, 273.15}
	DegF   = Unit{"degF", Temperature, 5.0 / 9.0, 273.15 - 32.0*5.0/9.0}

	MmPerDay      = Unit{"mm/day", PrecipRate, 1, 0}
	MmPerHour     = Unit{"mm/h", PrecipRate, 24, 0}
	InPerDay      = Unit{"in/day", PrecipRate, 25.4, 0}
	KgPerM2PerSec = Unit{"kg m-2 s-1", PrecipRate, 86400, 0}

	Mm   = Unit{"mm", Length, 1, 0}
	Inch = Unit{"in", Length, 25.4, 0}

	M3PerSec  = Unit{"m3/s", Discharge, 1, 0}
	LPerSec   = Unit{"l/s", Discharge, 0.001, 0}
	Ft3PerSec = Unit{"ft3/s", Discharge, 0.028316846592, 0}
)

var unitAliases = map[string]Unit{
	"1": One,

	"k": Kelvin, "kelvin": Kelvin,
	"degc": DegC, "°c": DegC, "c": DegC, "celsius": DegC,
	"degf": DegF, "°f": DegF, "f": DegF, "fahrenheit": DegF,

	"mm/day": MmPerDay, "mm/d": MmPerDay, "mm d-1": MmPerDay,
	"mm/h": MmPerHour, "mm/hour": MmPerHour,
	"in/day": InPerDay, "in/d": InPerDay,
	"kg m-2 s-1": KgPerM2PerSec, "kg/m2/s": KgPerM2PerSec,

	"mm": Mm,
	"in": Inch, "inch": Inch, "inches": Inch,

	"m3/s": M3PerSec, "m^3/s": M3PerSec, "m3 s-1": M3PerSec,
	"l/s": LPerSec,
	"ft3/s": Ft3PerSec, "cfs": Ft3PerSec,
}

// Parse resolves a unit name; common aliases and any casing are
// accepted.
func Parse(s string) (Unit, error) {
	u, ok := unitAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return Unit{}, fmt.Errorf("unknown unit %q", s)
	}
	return u, nil
}

// MustParse is Parse for unit names known at compile time.
func MustParse(s string) Unit {
	u, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return u
}

func (u Unit) String() string { return u.name }

// Dimension returns the unit's dimension.
func (u Unit) Dimension() Dimension { return u.dim }

// Convert expresses v, measured in from, in to. The units must share a
// dimension.
func Convert(v float64, from, to Unit) (float64, error) {
	if from.scale == 0 || to.scale == 0 {
		return 0, fmt.Errorf("conversion with unspecified unit")
	}
	if from.dim != to.dim {
		return 0, fmt.Errorf("cannot convert %s (%s) to %s (%s)", from, from.dim, to, to.dim)
	}
	base := v*from.scale + from.offset
	return (base - to.offset) / to.scale, nil
}

// ConvertSlice converts every value into a new slice; NaN passes through.
func ConvertSlice(vs []float64, from, to Unit) ([]float64, error) {
	if _, err := Convert(0, from, to); err != nil {
		return nil, err
	}
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i], _ = Convert(v, from, to)
	}
	return out, nil
}

// RequireDimension checks that a declared unit carries the dimension an
// indicator needs. It runs before any computation so unit mistakes fail
// fast rather than producing nonsense statistics.
func RequireDimension(u Unit, d Dimension) error {
	if u.scale == 0 {
		return fmt.Errorf("need a %s unit, got none", d)
	}
	if u.dim != d {
		return fmt.Errorf("need a %s unit, got %q (%s)", d, u, u.dim)
	}
	return nil
}
