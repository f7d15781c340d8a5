package report

import (
	"time"

	"github.com/nexografix/timesheet-bff/internal/domain/attendance"
)

const (
	AttendanceSheetName = "Attendance"
	nameHeader          = "EMP NAME"
	nameColumnWidth     = 24
	cellColumnWidth     = 16
)

// AttendanceSubColumns are the per-date columns, in order.
var AttendanceSubColumns = []string{
	"Login Time",
	"Logout Time",
	"Total Working Hrs",
	"Break In",
	"Break Out",
	"Total Break Time",
}

// AttendanceCellView is one formatted cell; blank strings mean no data.
type AttendanceCellView struct {
	Date       string `json:"date"`
	Login      string `json:"login"`
	Logout     string `json:"logout"`
	TotalWork  string `json:"total_work"`
	BreakIn    string `json:"break_in"`
	BreakOut   string `json:"break_out"`
	TotalBreak string `json:"total_break"`
}

func (c AttendanceCellView) values() []string {
	return []string{c.Login, c.Logout, c.TotalWork, c.BreakIn, c.BreakOut, c.TotalBreak}
}

type AttendanceRow struct {
	Name  string               `json:"name"`
	Cells []AttendanceCellView `json:"cells"`
}

// AttendanceView is the formatted matrix shared by the screen and the export.
type AttendanceView struct {
	Start   string          `json:"start"`
	End     string          `json:"end"`
	Dates   []string        `json:"dates"`
	Columns []string        `json:"columns"`
	Rows    []AttendanceRow `json:"rows"`
}

// BuildAttendanceView formats the matrix rows for names over dateKeys.
func BuildAttendanceView(names, dateKeys []string, m attendance.Matrix, loc *time.Location) AttendanceView {
	view := AttendanceView{
		Dates:   dateKeys,
		Columns: AttendanceSubColumns,
		Rows:    make([]AttendanceRow, 0, len(names)),
	}
	if len(dateKeys) > 0 {
		view.Start = dateKeys[0]
		view.End = dateKeys[len(dateKeys)-1]
	}

	for _, name := range names {
		row := AttendanceRow{Name: name, Cells: make([]AttendanceCellView, 0, len(dateKeys))}
		for _, dk := range dateKeys {
			c := m.Cell(name, dk)
			row.Cells = append(row.Cells, AttendanceCellView{
				Date:       dk,
				Login:      FormatClock(c.Login, loc),
				Logout:     FormatClock(c.Logout, loc),
				TotalWork:  FormatMinutes(c.TotalWorkMinutes),
				BreakIn:    FormatClock(c.BreakIn, loc),
				BreakOut:   FormatClock(c.BreakOut, loc),
				TotalBreak: FormatMinutes(c.TotalBreakMinutes),
			})
		}
		view.Rows = append(view.Rows, row)
	}
	return view
}

// AttendanceTable lays the view out as a two-row-header sheet.
func AttendanceTable(view AttendanceView) Table {
	width := len(AttendanceSubColumns)

	top := []string{nameHeader}
	sub := []string{""}
	merges := []Merge{{StartRow: 0, StartCol: 0, EndRow: 1, EndCol: 0}}
	widths := []float64{nameColumnWidth}

	for i, dk := range view.Dates {
		top = append(top, FormatDateLabel(dk))
		for j := 1; j < width; j++ {
			top = append(top, "")
		}
		sub = append(sub, AttendanceSubColumns...)

		first := 1 + i*width
		merges = append(merges, Merge{StartRow: 0, StartCol: first, EndRow: 0, EndCol: first + width - 1})
		for j := 0; j < width; j++ {
			widths = append(widths, cellColumnWidth)
		}
	}

	rows := [][]string{top, sub}
	for _, r := range view.Rows {
		row := []string{r.Name}
		for _, c := range r.Cells {
			row = append(row, c.values()...)
		}
		rows = append(rows, row)
	}

	return Table{
		SheetName:    AttendanceSheetName,
		Rows:         rows,
		Merges:       merges,
		ColumnWidths: widths,
	}
}

// ProjectAttendance is BuildAttendanceView followed by AttendanceTable.
func ProjectAttendance(names, dateKeys []string, m attendance.Matrix, loc *time.Location) Table {
	return AttendanceTable(BuildAttendanceView(names, dateKeys, m, loc))
}

// AttendanceFilename names the attendance workbook for a range.
func AttendanceFilename(start, end string) string {
	return "Attendance_" + start + "_to_" + end + ".xlsx"
}
