package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/chrissnell/climdex/pkg/indices"
	"github.com/chrissnell/climdex/pkg/timeseries"
	"github.com/chrissnell/climdex/pkg/units"
)

// defaultCSVUnits are the units assumed for columns the configuration
// does not declare units for.
var defaultCSVUnits = map[indices.Variable]units.Unit{
	indices.VarTas:       units.DegC,
	indices.VarTasMin:    units.DegC,
	indices.VarTasMax:    units.DegC,
	indices.VarPrecip:    units.MmPerDay,
	indices.VarDischarge: units.M3PerSec,
}

// CSVSource reads daily observations from a CSV export: a header row of
// "date" followed by variable names, then one row per day in ascending
// date order. Empty cells and NA markers become NaN.
type CSVSource struct {
	path   string
	times  []time.Time
	values map[indices.Variable][]float64
	units  map[indices.Variable]units.Unit
}

// NewCSVSource parses the file up front so malformed exports fail at
// startup rather than mid-computation. unitNames overrides the default
// unit per variable column, keyed by variable name.
func NewCSVSource(path string, unitNames map[string]string, logger *zap.SugaredLogger) (*CSVSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening observations file: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%s contains no observation rows", path)
	}

	header := records[0]
	if len(header) < 2 || !strings.EqualFold(strings.TrimSpace(header[0]), "date") {
		return nil, fmt.Errorf("%s: first column must be \"date\", got %q", path, header[0])
	}

	src := &CSVSource{
		path:   path,
		values: make(map[indices.Variable][]float64),
		units:  make(map[indices.Variable]units.Unit),
	}

	columns := make([]indices.Variable, 0, len(header)-1)
	for _, name := range header[1:] {
		v := indices.Variable(strings.TrimSpace(strings.ToLower(name)))
		def, ok := defaultCSVUnits[v]
		if !ok {
			return nil, fmt.Errorf("%s: unknown variable column %q", path, name)
		}
		u := def
		if declared, ok := unitNames[string(v)]; ok {
			u, err = units.Parse(declared)
			if err != nil {
				return nil, fmt.Errorf("unit for column %q: %w", v, err)
			}
		}
		columns = append(columns, v)
		src.units[v] = u
		src.values[v] = make([]float64, 0, len(records)-1)
	}

	for n, rec := range records[1:] {
		if len(rec) != len(header) {
			return nil, fmt.Errorf("%s row %d: %d fields, want %d", path, n+2, len(rec), len(header))
		}
		day, err := time.Parse("2006-01-02", strings.TrimSpace(rec[0]))
		if err != nil {
			return nil, fmt.Errorf("%s row %d: bad date %q", path, n+2, rec[0])
		}
		if len(src.times) > 0 && !day.After(src.times[len(src.times)-1]) {
			return nil, fmt.Errorf("%s row %d: dates must be strictly increasing", path, n+2)
		}
		src.times = append(src.times, day)

		for i, v := range columns {
			src.values[v] = append(src.values[v], parseCell(rec[i+1]))
		}
	}

	logger.Debugf("loaded %d days from %s (%d variables)", len(src.times), path, len(columns))
	return src, nil
}

// parseCell parses one value cell; empty and NA markers become NaN.
func parseCell(cell string) float64 {
	cell = strings.TrimSpace(cell)
	switch strings.ToLower(cell) {
	case "", "na", "nan", "null":
		return math.NaN()
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// Daily returns the variable's series restricted to [start, end].
func (s *CSVSource) Daily(_ context.Context, variable indices.Variable, start, end time.Time) (indices.Input, error) {
	vals, ok := s.values[variable]
	if !ok {
		return indices.Input{}, fmt.Errorf("%s has no %q column", s.path, variable)
	}

	lo := sort.Search(len(s.times), func(i int) bool { return !s.times[i].Before(start) })
	hi := sort.Search(len(s.times), func(i int) bool { return s.times[i].After(end) })
	if lo >= hi {
		return indices.Input{}, fmt.Errorf("no %s observations between %s and %s in %s",
			variable, start.Format("2006-01-02"), end.Format("2006-01-02"), s.path)
	}

	series, err := timeseries.New(s.times[lo:hi], vals[lo:hi])
	if err != nil {
		return indices.Input{}, err
	}
	return indices.Input{Series: series, Unit: s.units[variable]}, nil
}

// Close is a no-op; the file is read at construction.
func (s *CSVSource) Close() error { return nil }
