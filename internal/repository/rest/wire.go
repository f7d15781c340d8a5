package rest

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/nexografix/timesheet-bff/internal/domain/attendance"
	"github.com/nexografix/timesheet-bff/internal/domain/calendar"
	"github.com/nexografix/timesheet-bff/internal/domain/employee"
	"github.com/nexografix/timesheet-bff/internal/domain/timesheet"
)

// flexString accepts a JSON string or number; anything else decodes as unset.
type flexString struct {
	Value *string
}

func (f *flexString) UnmarshalJSON(b []byte) error {
	f.Value = nil
	if isNull(b) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		f.Value = &s
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		v := n.String()
		f.Value = &v
	}
	return nil
}

// flexTime accepts RFC 3339 timestamps and plain dates; unparseable values
// decode as unset.
type flexTime struct {
	Value *time.Time
}

func (f *flexTime) UnmarshalJSON(b []byte) error {
	f.Value = nil
	var s string
	if err := json.Unmarshal(b, &s); err != nil || s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, calendar.DateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			f.Value = &t
			return nil
		}
	}
	return nil
}

// flexInt accepts a JSON number (or numeric string); anything else is unset.
type flexInt struct {
	Value *int
}

func (f *flexInt) UnmarshalJSON(b []byte) error {
	f.Value = nil
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		var s string
		if json.Unmarshal(b, &s) != nil {
			return nil
		}
		n = json.Number(s)
	}
	if fv, err := strconv.ParseFloat(n.String(), 64); err == nil {
		v := int(fv)
		f.Value = &v
	}
	return nil
}

func isNull(b []byte) bool {
	return bytes.Equal(bytes.TrimSpace(b), []byte("null"))
}

// ========================================
// TIMESHEETS
// ========================================

type taskWire struct {
	Type   string     `json:"type"`
	Login  flexString `json:"login"`
	Logout flexString `json:"logout"`
	Hours  flexString `json:"hours"`
}

type timesheetWire struct {
	ID          string     `json:"_id"`
	Date        string     `json:"date"`
	Status      string     `json:"status"`
	Tasks       []taskWire `json:"tasks"`
	SubmittedAt flexTime   `json:"submittedAt"`
	ApprovedAt  flexTime   `json:"approvedAt"`
}

func (w timesheetWire) toDocument() timesheet.Document {
	tasks := make([]timesheet.Task, 0, len(w.Tasks))
	for _, t := range w.Tasks {
		tasks = append(tasks, timesheet.Task{
			Type:   t.Type,
			Login:  t.Login.Value,
			Logout: t.Logout.Value,
			Hours:  t.Hours.Value,
		})
	}
	return timesheet.Document{
		ID:          w.ID,
		Date:        calendar.DateKey(w.Date),
		Status:      timesheet.NormalizeStatus(w.Status),
		Tasks:       tasks,
		SubmittedAt: w.SubmittedAt.Value,
		ApprovedAt:  w.ApprovedAt.Value,
	}
}

func toDocuments(ws []timesheetWire) []timesheet.Document {
	docs := make([]timesheet.Document, 0, len(ws))
	for _, w := range ws {
		docs = append(docs, w.toDocument())
	}
	return docs
}

// timesheetEnvelope is {"timesheet": {...}} as returned by create and submit.
type timesheetEnvelope struct {
	Timesheet *timesheetWire `json:"timesheet"`
}

// ========================================
// REOPEN & WEEKEND
// ========================================

type reopenWire struct {
	ID               string   `json:"_id"`
	EmployeeUsername string   `json:"employeeUsername"`
	Employee         *struct {
		Username string `json:"username"`
	} `json:"employee"`
	Date      string   `json:"date"`
	Reason    string   `json:"reason"`
	Status    string   `json:"status"`
	CreatedAt flexTime `json:"createdAt"`
}

// toRequest resolves the owner from employeeUsername, else employee.username.
func (w reopenWire) toRequest() timesheet.ReopenRequest {
	owner := w.EmployeeUsername
	if owner == "" && w.Employee != nil {
		owner = w.Employee.Username
	}
	return timesheet.ReopenRequest{
		ID:               w.ID,
		EmployeeUsername: owner,
		Date:             calendar.DateKey(w.Date),
		Reason:           w.Reason,
		Status:           timesheet.NormalizeRequestStatus(w.Status),
		CreatedAt:        w.CreatedAt.Value,
	}
}

type weekendWire struct {
	ID          string   `json:"_id"`
	Date        string   `json:"date"`
	Reason      string   `json:"reason"`
	Status      string   `json:"status"`
	SubmittedAt flexTime `json:"submittedAt"`
	CreatedAt   flexTime `json:"createdAt"`
	ApprovedAt  flexTime `json:"approvedAt"`
}

func (w weekendWire) toRequest() timesheet.WeekendRequest {
	submitted := w.SubmittedAt.Value
	if submitted == nil {
		submitted = w.CreatedAt.Value
	}
	return timesheet.WeekendRequest{
		ID:          w.ID,
		Date:        calendar.DateKey(w.Date),
		Reason:      w.Reason,
		Status:      timesheet.NormalizeRequestStatus(w.Status),
		SubmittedAt: submitted,
		ApprovedAt:  w.ApprovedAt.Value,
	}
}

// ========================================
// ATTENDANCE
// ========================================

type breakWire struct {
	Start flexTime `json:"start"`
	End   flexTime `json:"end"`
}

// userRef is either a populated user object or a bare id string.
type userRef struct {
	employee.Employee
}

func (u *userRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var id string
		if err := json.Unmarshal(b, &id); err != nil {
			return nil
		}
		u.Employee = employee.Employee{ID: id}
		return nil
	}
	var e employee.Employee
	if err := json.Unmarshal(b, &e); err == nil {
		u.Employee = e
	}
	return nil
}

type attendanceWire struct {
	ID                string      `json:"_id"`
	UserID            userRef     `json:"userId"`
	Date              string      `json:"date"`
	LoginTime         flexTime    `json:"loginTime"`
	LogoutTime        flexTime    `json:"logoutTime"`
	Breaks            []breakWire `json:"breaks"`
	TotalBreakMinutes flexInt     `json:"totalBreakMinutes"`
	TotalWorkMinutes  flexInt     `json:"totalWorkMinutes"`
	Status            string      `json:"status"`
}

func (w attendanceWire) toRecord() attendance.Record {
	breaks := make([]attendance.Break, 0, len(w.Breaks))
	for _, b := range w.Breaks {
		breaks = append(breaks, attendance.Break{Start: b.Start.Value, End: b.End.Value})
	}
	date := calendar.DateKey(w.Date)
	if date == "" && w.LoginTime.Value != nil {
		date = calendar.FormatDate(w.LoginTime.Value.UTC())
	}
	return attendance.Record{
		ID:                 w.ID,
		User:               w.UserID.Employee,
		Date:               date,
		LoginTime:          w.LoginTime.Value,
		LogoutTime:         w.LogoutTime.Value,
		Breaks:             breaks,
		Status:             strings.ToLower(strings.TrimSpace(w.Status)),
		ServerBreakMinutes: w.TotalBreakMinutes.Value,
		ServerWorkMinutes:  w.TotalWorkMinutes.Value,
	}
}

// attendanceEnvelope is {"attendance": ...}; the value is a list for
// /attendance/all and a single record (or null) for the clock endpoints.
type attendanceEnvelope[T any] struct {
	Attendance T `json:"attendance"`
}

// decodeList accepts a bare JSON array or an object holding the array under
// one of keys.
func decodeList[T any](raw json.RawMessage, keys ...string) ([]T, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || isNull(raw) {
		return []T{}, nil
	}
	if raw[0] == '[' {
		var out []T
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, err
		}
		return out, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, err
	}
	for _, k := range keys {
		if v, ok := obj[k]; ok {
			return decodeList[T](v)
		}
	}
	return []T{}, nil
}
