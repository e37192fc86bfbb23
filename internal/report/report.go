// Package report exports computed indicator results to CSV and XLSX
// files for use outside the archive.
package report

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/chrissnell/climdex/pkg/indices"
)

// Row is one exported result line.
type Row struct {
	Indicator string
	Station   string
	Freq      string
	Period    time.Time
	Value     float64
	Valid     bool
	Units     string
}

var header = []string{"indicator", "station", "frequency", "period", "value", "units", "status"}

// FromValues flattens one indicator's results into report rows.
func FromValues(indicator, station, freq, units string, values []indices.Value) []Row {
	rows := make([]Row, len(values))
	for i, v := range values {
		rows[i] = Row{
			Indicator: indicator,
			Station:   station,
			Freq:      freq,
			Period:    v.Period,
			Value:     v.Value,
			Valid:     v.Valid,
			Units:     units,
		}
	}
	return rows
}

// Write picks the output format from the file extension. ".csv" and
// ".xlsx" are supported.
func Write(path string, rows []Row) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return WriteCSVFile(path, rows)
	case ".xlsx":
		return WriteXLSX(path, rows)
	default:
		return fmt.Errorf("unsupported report format %q (want .csv or .xlsx)", filepath.Ext(path))
	}
}

func (r *Row) status() string {
	if r.Valid {
		return "ok"
	}
	return "no data"
}
