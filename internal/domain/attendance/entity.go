package attendance

import (
	"time"

	"github.com/nexografix/timesheet-bff/internal/domain/employee"
)

// Break is one break window; either end may still be open.
type Break struct {
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
}

// Minutes returns the closed window length in whole minutes, 0 when open or negative.
func (b Break) Minutes() int {
	if b.Start == nil || b.End == nil {
		return 0
	}
	return wholeMinutes(*b.Start, *b.End)
}

// Record is one raw attendance record of one user on one date.
type Record struct {
	ID         string            `json:"id"`
	User       employee.Employee `json:"user"`
	Date       string            `json:"date"`
	LoginTime  *time.Time        `json:"login_time"`
	LogoutTime *time.Time        `json:"logout_time"`
	Breaks     []Break           `json:"breaks"`
	Status     string            `json:"status,omitempty"`

	// Totals reported by the upstream, when it reports them.
	ServerBreakMinutes *int `json:"-"`
	ServerWorkMinutes  *int `json:"-"`
}

func (r Record) Complete() bool {
	return r.LoginTime != nil && r.LogoutTime != nil
}

// BreakMinutes sums the closed break windows unless the upstream sent a total.
func (r Record) BreakMinutes() int {
	if r.ServerBreakMinutes != nil {
		return *r.ServerBreakMinutes
	}
	total := 0
	for _, b := range r.Breaks {
		total += b.Minutes()
	}
	return total
}

// WorkMinutes is logout-login minus breaks, clamped at zero. nil when the
// record is incomplete.
func (r Record) WorkMinutes() *int {
	if !r.Complete() {
		return nil
	}
	if r.ServerWorkMinutes != nil {
		v := *r.ServerWorkMinutes
		return &v
	}
	v := wholeMinutes(*r.LoginTime, *r.LogoutTime) - r.BreakMinutes()
	if v < 0 {
		v = 0
	}
	return &v
}

// OpenBreak reports whether the last break window has no end yet.
func (r Record) OpenBreak() bool {
	if len(r.Breaks) == 0 {
		return false
	}
	last := r.Breaks[len(r.Breaks)-1]
	return last.Start != nil && last.End == nil
}

// Cell is the aggregated view of one employee on one date. Nil fields render blank.
type Cell struct {
	Login             *time.Time `json:"login"`
	Logout            *time.Time `json:"logout"`
	BreakIn           *time.Time `json:"break_in"`
	BreakOut          *time.Time `json:"break_out"`
	TotalWorkMinutes  *int       `json:"total_work_minutes"`
	TotalBreakMinutes *int       `json:"total_break_minutes"`
}

func (c Cell) Complete() bool {
	return c.Login != nil && c.Logout != nil
}

// Matrix maps display name -> date key -> cell.
type Matrix struct {
	// Employees lists the directory names in directory order.
	Employees []string
	Cells     map[string]map[string]Cell
}

// Cell returns the cell for name/date; the zero Cell when absent.
func (m Matrix) Cell(name, date string) Cell {
	return m.Cells[name][date]
}

func wholeMinutes(from, to time.Time) int {
	d := to.Sub(from)
	if d <= 0 {
		return 0
	}
	return int(d / time.Minute)
}
