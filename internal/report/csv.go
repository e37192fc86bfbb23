package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// WriteCSV writes rows to w with a header line. Periods are rendered
// as dates and no-data periods leave the value column empty.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing report header: %w", err)
	}
	for _, r := range rows {
		value := ""
		if r.Valid {
			value = strconv.FormatFloat(r.Value, 'g', -1, 64)
		}
		rec := []string{r.Indicator, r.Station, r.Freq, r.Period.Format("2006-01-02"), value, r.Units, r.status()}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing report row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes rows to a new file at path.
func WriteCSVFile(path string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	if err := WriteCSV(f, rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
