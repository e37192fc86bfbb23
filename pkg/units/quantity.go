package units

import (
	"fmt"
	"strconv"
	"strings"
)

// Quantity is a value with its unit, the form indicator thresholds are
// declared in ("1 mm/day", "22 degC").
type Quantity struct {
	Value float64
	Unit  Unit
}

// ParseQuantity parses "<number> <unit>".
func ParseQuantity(s string) (Quantity, error) {
	fields := strings.SplitN(strings.TrimSpace(s), " ", 2)
	if len(fields) != 2 {
		return Quantity{}, fmt.Errorf("quantity %q must be \"<value> <unit>\"", s)
	}
	v, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return Quantity{}, fmt.Errorf("quantity %q: bad value: %w", s, err)
	}
	u, err := Parse(fields[1])
	if err != nil {
		return Quantity{}, fmt.Errorf("quantity %q: %w", s, err)
	}
	return Quantity{Value: v, Unit: u}, nil
}

// MustParseQuantity is ParseQuantity for literals known at compile time.
func MustParseQuantity(s string) Quantity {
	q, err := ParseQuantity(s)
	if err != nil {
		panic(err)
	}
	return q
}

// To expresses the quantity in u.
func (q Quantity) To(u Unit) (float64, error) {
	return Convert(q.Value, q.Unit, u)
}

func (q Quantity) String() string {
	return fmt.Sprintf("%g %s", q.Value, q.Unit)
}
