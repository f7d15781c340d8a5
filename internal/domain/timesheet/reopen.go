package timesheet

import (
	"time"
)

type ReopenScope string

const (
	ScopeMine ReopenScope = "mine"
	ScopeAll  ReopenScope = "all"
)

// ReopenRequest asks an admin to unlock one past or current day.
type ReopenRequest struct {
	ID               string        `json:"id"`
	EmployeeUsername string        `json:"employee_username"`
	Date             string        `json:"date"`
	Reason           string        `json:"reason"`
	Status           RequestStatus `json:"status"`
	CreatedAt        *time.Time    `json:"created_at,omitempty"`
}

func (r ReopenRequest) Reviewed() bool {
	return r.Status == RequestApproved || r.Status == RequestRejected
}

// ReopenDraft is the reopen dialog state: opened for a date, reason blank.
type ReopenDraft struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}
