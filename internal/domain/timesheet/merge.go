package timesheet

import (
	"github.com/nexografix/timesheet-bff/internal/domain/calendar"
)

// MergeFromServer overlays server documents onto a freshly built week.
// Days without a matching document are left alone; malformed task values are
// ignored rather than reported. Applying the same docs twice is a no-op.
func MergeFromServer(w Week, docs []Document) Week {
	for i := range w.Days {
		day := &w.Days[i]
		if day.IsHoliday {
			continue
		}
		doc, ok := findDocument(docs, day.Date)
		if !ok {
			continue
		}
		if doc.ID != "" {
			id := doc.ID
			day.TimesheetID = &id
		}
		day.Status = doc.Status
		if day.Status == "" {
			day.Status = StatusDraft
		}
		day.SubmittedAt = doc.SubmittedAt
		applyFirstTask(day, doc.Tasks)
	}
	return w
}

// ApplyReopenRequests folds the employee's reopen requests into the week.
// An approved request marks the day reopened and unlocks it as a Draft,
// unless the day was submitted again after the request was raised. Pending
// requests set the overlay.
func ApplyReopenRequests(w Week, requests []ReopenRequest) Week {
	for _, r := range requests {
		day, ok := w.Day(calendar.DateKey(r.Date))
		if !ok || day.IsHoliday {
			continue
		}
		switch r.Status {
		case RequestApproved:
			day.Reopened = true
			day.ReopenRequested = false
			if unlockedBy(*day, r) {
				day.Status = StatusDraft
			}
		case RequestPending:
			if !day.Reopened {
				day.ReopenRequested = true
			}
		}
	}
	return w
}

// unlockedBy reports whether an approved request still reverts the day to
// Draft. Approved days stay approved.
func unlockedBy(d DayEntry, r ReopenRequest) bool {
	switch d.Status {
	case StatusClosed, StatusPending:
		return true
	case StatusSubmitted, StatusRejected:
		resubmitted := d.SubmittedAt != nil && r.CreatedAt != nil && d.SubmittedAt.After(*r.CreatedAt)
		return !resubmitted
	}
	return false
}

func findDocument(docs []Document, date string) (Document, bool) {
	for _, d := range docs {
		if calendar.DateKey(d.Date) == date {
			return d, true
		}
	}
	return Document{}, false
}

// applyFirstTask copies login/logout from the first task when present and
// parseable; otherwise the local values stay.
func applyFirstTask(day *DayEntry, tasks []Task) {
	if len(tasks) == 0 {
		return
	}
	first := tasks[0]
	if first.Login != nil {
		if c, err := ParseClock(*first.Login); err == nil {
			day.Login = clockPtr(c)
		}
	}
	if first.Logout != nil {
		if c, err := ParseClock(*first.Logout); err == nil {
			day.Logout = clockPtr(c)
		}
	}
}
