package report

import (
	"github.com/nexografix/timesheet-bff/internal/domain/calendar"
	"github.com/nexografix/timesheet-bff/internal/domain/timesheet"
)

const TimesheetSheetName = "Timesheet"

var weekHeader = []string{"Date", "Day", "Login", "Logout", "Hours", "Status", "Manager"}

// ProjectWeek lays a week grid out as one row per day.
func ProjectWeek(w timesheet.Week) Table {
	rows := [][]string{append([]string(nil), weekHeader...)}
	for _, d := range w.Days {
		r := timesheet.ToDayResponse(d)
		rows = append(rows, []string{
			FormatDateLabel(r.Date),
			dayName(d),
			r.Login,
			r.Logout,
			r.Hours,
			string(r.Status),
			w.Manager,
		})
	}
	return Table{
		SheetName:    TimesheetSheetName,
		Rows:         rows,
		ColumnWidths: []float64{14, 16, 10, 10, 10, 18, 20},
	}
}

func TimesheetFilename(start, end string) string {
	return "Timesheet_" + start + "_to_" + end + ".xlsx"
}

// dayName is the holiday name on holidays, else the weekday.
func dayName(d timesheet.DayEntry) string {
	if d.IsHoliday && d.Label != "" {
		return d.Label
	}
	t, err := calendar.ParseDate(d.Date)
	if err != nil {
		return ""
	}
	return t.Weekday().String()
}
