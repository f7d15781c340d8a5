package timesheet

import (
	"strings"
	"time"

	"github.com/nexografix/timesheet-bff/internal/domain/calendar"
)

type Status string

const (
	StatusHoliday         Status = "Holiday"
	StatusClosed          Status = "Closed"
	StatusPending         Status = "Pending"
	StatusDraft           Status = "Draft"
	StatusSubmitted       Status = "Submitted"
	StatusApproved        Status = "Approved"
	StatusRejected        Status = "Rejected"
	StatusReopenRequested Status = "Reopen Requested"
)

// NormalizeStatus maps an upstream timesheet status onto Status.
// Anything that is not submitted/approved/rejected counts as a draft.
func NormalizeStatus(s string) Status {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "submitted":
		return StatusSubmitted
	case "approved":
		return StatusApproved
	case "rejected":
		return StatusRejected
	default:
		return StatusDraft
	}
}

// DayEntry is one day of one employee's weekly timesheet.
type DayEntry struct {
	Date      string
	Login     *Clock
	Logout    *Clock
	Status    Status
	IsHoliday bool
	IsWeekend bool
	IsToday   bool
	IsFuture  bool
	Label     string

	// Reopened is set once a reopen request for this date is approved.
	Reopened bool
	// ReopenRequested overlays Status while a reopen request is pending.
	ReopenRequested bool

	TimesheetID *string
	// SubmittedAt is the server's last submission time for the day.
	SubmittedAt *time.Time
}

// Equal compares two entries by value, following pointers.
func (d DayEntry) Equal(o DayEntry) bool {
	a, b := d, o
	a.Login, a.Logout, a.TimesheetID, a.SubmittedAt = nil, nil, nil, nil
	b.Login, b.Logout, b.TimesheetID, b.SubmittedAt = nil, nil, nil, nil
	if a != b {
		return false
	}
	if !equalPtr(d.Login, o.Login) || !equalPtr(d.Logout, o.Logout) || !equalPtr(d.TimesheetID, o.TimesheetID) {
		return false
	}
	if d.SubmittedAt == nil || o.SubmittedAt == nil {
		return d.SubmittedAt == o.SubmittedAt
	}
	return d.SubmittedAt.Equal(*o.SubmittedAt)
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Hours is derived from Login/Logout on every call.
func (d DayEntry) Hours() string {
	return ComputeHours(d.Login, d.Logout)
}

func (d DayEntry) HasTimes() bool {
	return d.Login != nil && d.Logout != nil
}

// DisplayStatus is Status with the reopen overlay applied.
func (d DayEntry) DisplayStatus() Status {
	if d.ReopenRequested && !d.IsHoliday {
		return StatusReopenRequested
	}
	return d.Status
}

// Week is the 7-day grid the employee edits.
type Week struct {
	Start   string
	End     string
	Manager string
	Days    [calendar.DaysPerWeek]DayEntry
}

// Equal reports whether two grids hold the same days and header.
func (w Week) Equal(o Week) bool {
	if w.Start != o.Start || w.End != o.End || w.Manager != o.Manager {
		return false
	}
	for i := range w.Days {
		if !w.Days[i].Equal(o.Days[i]) {
			return false
		}
	}
	return true
}

// NewWeek builds a fresh grid: Holiday, Pending for today, Closed otherwise.
func NewWeek(anchor time.Time, holidays calendar.HolidayTable, today time.Time, manager string) Week {
	days := calendar.BuildWeek(anchor, holidays, today)

	w := Week{
		Start:   days[0].Date,
		End:     days[calendar.DaysPerWeek-1].Date,
		Manager: manager,
	}
	for i, d := range days {
		status := StatusClosed
		switch {
		case d.IsHoliday:
			status = StatusHoliday
		case d.IsToday:
			status = StatusPending
		}
		w.Days[i] = DayEntry{
			Date:      d.Date,
			Status:    status,
			IsHoliday: d.IsHoliday,
			IsWeekend: d.IsWeekend,
			IsToday:   d.IsToday,
			IsFuture:  d.IsFuture,
			Label:     d.Label,
		}
	}
	return w
}

// Index returns the position of date in the grid, or -1.
func (w *Week) Index(date string) int {
	for i := range w.Days {
		if w.Days[i].Date == date {
			return i
		}
	}
	return -1
}

// Day returns a pointer into the grid for date.
func (w *Week) Day(date string) (*DayEntry, bool) {
	i := w.Index(date)
	if i < 0 {
		return nil, false
	}
	return &w.Days[i], true
}

// Contains reports whether date falls inside the week.
func (w *Week) Contains(date string) bool {
	return date >= w.Start && date <= w.End
}

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

func NormalizeRequestStatus(s string) RequestStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "approved":
		return RequestApproved
	case "rejected":
		return RequestRejected
	default:
		return RequestPending
	}
}

// Task is one line of a server-side timesheet document.
type Task struct {
	Type   string  `json:"type"`
	Login  *string `json:"login,omitempty"`
	Logout *string `json:"logout,omitempty"`
	Hours  *string `json:"hours,omitempty"`
}

// Document is a server-side timesheet for one date, status already normalized.
type Document struct {
	ID          string     `json:"id"`
	Date        string     `json:"date"`
	Status      Status     `json:"status"`
	Tasks       []Task     `json:"tasks"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
}

// WeekendRequest asks to log hours on a Saturday or Sunday.
type WeekendRequest struct {
	ID          string        `json:"id"`
	Date        string        `json:"date"`
	Reason      string        `json:"reason"`
	Status      RequestStatus `json:"status"`
	SubmittedAt *time.Time    `json:"submitted_at,omitempty"`
	ApprovedAt  *time.Time    `json:"approved_at,omitempty"`
}

type History struct {
	Timesheets []Document       `json:"timesheets"`
	Weekend    []WeekendRequest `json:"weekend"`
}

// DraftTasks is the single work task sent when the day is saved as a draft.
func (d DayEntry) DraftTasks() []Task {
	login, logout, hours := clockString(d.Login), clockString(d.Logout), d.Hours()
	return []Task{{Type: "work", Login: &login, Logout: &logout, Hours: &hours}}
}
