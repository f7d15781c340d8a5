package attendance

import (
	"github.com/nexografix/timesheet-bff/internal/domain/calendar"
	"github.com/nexografix/timesheet-bff/internal/domain/employee"
)

// Aggregate folds raw records into a per-employee, per-date matrix.
//
// Every directory employee is present even without records. When dateKeys is
// non-empty, records outside it are dropped. For duplicate (employee, date)
// pairs the first record wins unless a later one is complete and the kept one
// is not.
func Aggregate(employees []employee.Employee, records []Record, dateKeys []string) Matrix {
	m := Matrix{
		Employees: make([]string, 0, len(employees)),
		Cells:     make(map[string]map[string]Cell, len(employees)),
	}
	for _, e := range employees {
		name := e.DisplayName()
		if _, ok := m.Cells[name]; ok {
			continue
		}
		m.Employees = append(m.Employees, name)
		m.Cells[name] = make(map[string]Cell)
	}

	var inRange map[string]struct{}
	if len(dateKeys) > 0 {
		inRange = make(map[string]struct{}, len(dateKeys))
		for _, k := range dateKeys {
			inRange[k] = struct{}{}
		}
	}

	for _, r := range records {
		date := calendar.DateKey(r.Date)
		if inRange != nil {
			if _, ok := inRange[date]; !ok {
				continue
			}
		}

		name := r.User.DisplayName()
		byDate, ok := m.Cells[name]
		if !ok {
			byDate = make(map[string]Cell)
			m.Cells[name] = byDate
		}

		cell := ToCell(r)
		prev, exists := byDate[date]
		if !exists || (cell.Complete() && !prev.Complete()) {
			byDate[date] = cell
		}
	}
	return m
}

// ToCell derives the display cell of a single record. Only the first break
// window is surfaced; totals stay nil unless login and logout are both known.
func ToCell(r Record) Cell {
	c := Cell{
		Login:  r.LoginTime,
		Logout: r.LogoutTime,
	}
	if len(r.Breaks) > 0 {
		c.BreakIn = r.Breaks[0].Start
		c.BreakOut = r.Breaks[0].End
	}
	if r.Complete() {
		brk := r.BreakMinutes()
		c.TotalBreakMinutes = &brk
		c.TotalWorkMinutes = r.WorkMinutes()
	}
	return c
}
