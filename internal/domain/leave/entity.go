package leave

import (
	"strings"
	"time"

	"github.com/nexografix/timesheet-bff/internal/domain/calendar"
)

type LeaveType string

const (
	LeaveTypeCasual    LeaveType = "casual"
	LeaveTypeSick      LeaveType = "sick"
	LeaveTypeEarned    LeaveType = "earned"
	LeaveTypeMaternity LeaveType = "maternity"
	LeaveTypeUnpaid    LeaveType = "unpaid"
	LeaveTypeCompOff   LeaveType = "comp-off"
	LeaveTypeOther     LeaveType = "other"
)

// LeaveTypes is the selectable list, in display order.
var LeaveTypes = []LeaveTypeOption{
	{Value: LeaveTypeCasual, Label: "Casual Leave"},
	{Value: LeaveTypeSick, Label: "Sick Leave"},
	{Value: LeaveTypeEarned, Label: "Earned Leave"},
	{Value: LeaveTypeMaternity, Label: "Maternity Leave"},
	{Value: LeaveTypeUnpaid, Label: "Unpaid Leave"},
	{Value: LeaveTypeCompOff, Label: "Comp Off"},
	{Value: LeaveTypeOther, Label: "Other"},
}

type LeaveTypeOption struct {
	Value LeaveType `json:"value"`
	Label string    `json:"label"`
}

// Label returns the display label; unknown types are title-cased per
// dash-separated word.
func (t LeaveType) Label() string {
	for _, o := range LeaveTypes {
		if o.Value == t {
			return o.Label
		}
	}
	if t == "" {
		return ""
	}
	parts := strings.Split(string(t), "-")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, "-")
}

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending  LeaveRequestStatus = "pending"
	LeaveRequestStatusApproved LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected LeaveRequestStatus = "rejected"
)

// NormalizeStatus maps the upstream status, in any case, onto the closed
// set. Anything unrecognised is still waiting for a decision.
func NormalizeStatus(s string) LeaveRequestStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "approved":
		return LeaveRequestStatusApproved
	case "rejected":
		return LeaveRequestStatusRejected
	default:
		return LeaveRequestStatusPending
	}
}

// LeaveRequest is one leave application as held by the upstream.
type LeaveRequest struct {
	ID               string
	EmployeeUsername string
	LeaveType        LeaveType
	FromDate         string
	ToDate           string
	// LeaveDays is the server's count; nil when the server sent none.
	LeaveDays     *int
	Reason        string
	AttachmentURL *string
	Comment       *string
	Status        LeaveRequestStatus
	CreatedAt     *time.Time
}

func (r LeaveRequest) Processed() bool {
	return r.Status != LeaveRequestStatusPending
}

// Days prefers the server's count and falls back to the inclusive span.
func (r LeaveRequest) Days() int {
	if r.LeaveDays != nil {
		return *r.LeaveDays
	}
	return SpanDays(r.FromDate, r.ToDate)
}

// SpanDays counts calendar days from..to inclusive; zero when either date is
// missing or the range is inverted.
func SpanDays(from, to string) int {
	f, err := calendar.ParseDate(calendar.DateKey(from))
	if err != nil {
		return 0
	}
	t, err := calendar.ParseDate(calendar.DateKey(to))
	if err != nil {
		return 0
	}
	keys, err := calendar.DateRange(f, t)
	if err != nil {
		return 0
	}
	return len(keys)
}
