package report

import (
	"bytes"
	"encoding/csv"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/chrissnell/climdex/pkg/indices"
)

func testRows() []Row {
	return FromValues("frost_days", "suncrest", "YS", "days", []indices.Value{
		indices.Computed(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), 42),
		indices.Computed(time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC), 35.5),
		indices.NoData(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)),
	})
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, testRows()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, []string{"indicator", "station", "frequency", "period", "value", "units", "status"}, records[0])
	assert.Equal(t, []string{"frost_days", "suncrest", "YS", "2021-01-01", "42", "days", "ok"}, records[1])
	assert.Equal(t, []string{"frost_days", "suncrest", "YS", "2022-01-01", "35.5", "days", "ok"}, records[2])
	assert.Equal(t, []string{"frost_days", "suncrest", "YS", "2023-01-01", "", "days", "no data"}, records[3])
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.xlsx")
	require.NoError(t, WriteXLSX(path, testRows()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Results")
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, "indicator", rows[0][0])
	assert.Equal(t, "frost_days", rows[1][0])
	assert.Equal(t, "42", rows[1][4])
	assert.Equal(t, "35.5", rows[2][4])
	assert.Equal(t, "no data", rows[3][6])

	// GetRows trims trailing empty cells, so the no-data row may come
	// back short of the value column.
	value, err := f.GetCellValue("Results", "E4")
	require.NoError(t, err)
	assert.Empty(t, value)
}

func TestWriteDispatch(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, Write(filepath.Join(dir, "out.csv"), testRows()))
	require.NoError(t, Write(filepath.Join(dir, "out.xlsx"), testRows()))

	err := Write(filepath.Join(dir, "out.pdf"), testRows())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported report format")
}
