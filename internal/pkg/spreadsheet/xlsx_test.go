package spreadsheet

import (
	"bytes"
	"testing"

	"github.com/nexografix/timesheet-bff/internal/domain/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestRender(t *testing.T) {
	table := report.Table{
		SheetName: "Attendance",
		Rows: [][]string{
			{"EMP NAME", "01/03/2025", ""},
			{"", "LOGIN", "LOGOUT"},
			{"asha", "09:00 AM", "06:00 PM"},
		},
		Merges: []report.Merge{
			{StartRow: 0, StartCol: 0, EndRow: 1, EndCol: 0},
			{StartRow: 0, StartCol: 1, EndRow: 0, EndCol: 2},
		},
		ColumnWidths: []float64{24, 16, 16},
	}

	data, err := Render(table)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{"Attendance"}, f.GetSheetList())

	rows, err := f.GetRows("Attendance")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"asha", "09:00 AM", "06:00 PM"}, rows[2])
	assert.Equal(t, "01/03/2025", rows[0][1])

	merges, err := f.GetMergeCells("Attendance")
	require.NoError(t, err)
	var ranges []string
	for _, m := range merges {
		ranges = append(ranges, m.GetStartAxis()+":"+m.GetEndAxis())
	}
	assert.ElementsMatch(t, []string{"A1:A2", "B1:C1"}, ranges)

	width, err := f.GetColWidth("Attendance", "A")
	require.NoError(t, err)
	assert.Equal(t, float64(24), width)
}

func TestRender_DefaultSheet(t *testing.T) {
	data, err := Render(report.Table{Rows: [][]string{{"x"}}})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	assert.Equal(t, []string{"Sheet1"}, f.GetSheetList())
}
