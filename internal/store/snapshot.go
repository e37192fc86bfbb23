package store

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/chrissnell/climdex/pkg/calendar"
)

// curveSnapshot is the persisted msgpack form of a day-of-year curve,
// used both for archive blobs and exported snapshot files. Days is
// optional: snapshots written before day labels were recorded carry
// values only.
type curveSnapshot struct {
	Calendar string    `msgpack:"calendar"`
	Days     []int     `msgpack:"days,omitempty"`
	Values   []float64 `msgpack:"values"`
}

// EncodeCurve serializes a curve to its snapshot form.
func EncodeCurve(c *calendar.Curve) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("no curve to encode")
	}
	return msgpack.Marshal(curveSnapshot{
		Calendar: c.Calendar().String(),
		Days:     c.Days(),
		Values:   c.Values(),
	})
}

// DecodeCurve rebuilds a curve from a snapshot. Snapshots without day
// labels decode to unlabeled curves; alignment against such a curve
// reports the calendar mismatch, so decoding here stays permissive and
// the failure carries the context of the computation that needed labels.
func DecodeCurve(b []byte) (*calendar.Curve, error) {
	var snap curveSnapshot
	if err := msgpack.Unmarshal(b, &snap); err != nil {
		return nil, fmt.Errorf("unmarshaling curve snapshot: %w", err)
	}
	cal, err := calendar.ParseCalendar(snap.Calendar)
	if err != nil {
		return nil, fmt.Errorf("curve snapshot: %w", err)
	}
	if len(snap.Values) == 0 {
		return nil, fmt.Errorf("curve snapshot carries no values")
	}
	if len(snap.Days) == 0 {
		return calendar.UnlabeledCurve(cal, snap.Values), nil
	}
	return calendar.NewCurve(cal, snap.Days, snap.Values)
}
