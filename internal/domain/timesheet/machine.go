package timesheet

// Transitions of a single DayEntry. Remote calls live in the service layer;
// these methods only check guards and apply confirmed results.

func (d DayEntry) locked() bool {
	return d.Status == StatusSubmitted || d.Status == StatusApproved
}

// CanEdit is the edit lock: login/logout may change only when the day is
// not submitted or approved, is not a holiday, and is today or reopened.
func (d DayEntry) CanEdit() bool {
	if d.IsHoliday || d.locked() {
		return false
	}
	return d.IsToday || d.Reopened
}

func (d DayEntry) CanSaveDraft() bool {
	return !d.IsHoliday && !d.locked() && d.HasTimes() && d.TimesheetID == nil
}

func (d DayEntry) CanSubmit() bool {
	return !d.IsHoliday && !d.locked() && d.HasTimes() && d.TimesheetID != nil
}

func (d DayEntry) CanRequestReopen() bool {
	if d.IsHoliday || d.IsFuture || d.Reopened || d.ReopenRequested {
		return false
	}
	switch d.Status {
	case StatusClosed, StatusDraft, StatusSubmitted, StatusRejected:
		return true
	}
	return false
}

// Edit replaces login/logout after checking the edit lock.
func (d *DayEntry) Edit(login, logout *Clock) error {
	if !d.CanEdit() {
		return ErrDayLocked
	}
	d.Login = login
	d.Logout = logout
	return nil
}

// CheckSaveDraft explains why CanSaveDraft is false.
func (d DayEntry) CheckSaveDraft() error {
	switch {
	case d.IsHoliday:
		return ErrHolidayLocked
	case d.locked():
		return ErrAlreadySubmitted
	case d.TimesheetID != nil:
		return ErrAlreadySaved
	case !d.HasTimes():
		return ErrIncompleteDay
	}
	return nil
}

// CheckSubmit explains why CanSubmit is false.
func (d DayEntry) CheckSubmit() error {
	switch {
	case d.IsHoliday:
		return ErrHolidayLocked
	case d.locked():
		return ErrAlreadySubmitted
	case d.TimesheetID == nil:
		return ErrNotSaved
	case !d.HasTimes():
		return ErrIncompleteDay
	}
	return nil
}

// CheckReopen explains why CanRequestReopen is false.
func (d DayEntry) CheckReopen() error {
	switch {
	case d.IsHoliday:
		return ErrHolidayLocked
	case d.IsFuture:
		return ErrFutureDate
	case d.ReopenRequested:
		return ErrReopenPending
	case !d.CanRequestReopen():
		return ErrReopenNotAllowed
	}
	return nil
}

// MarkDraft records a confirmed draft identifier.
func (d *DayEntry) MarkDraft(id string) {
	if d.IsHoliday {
		return
	}
	d.TimesheetID = &id
	d.Status = StatusDraft
}

// MarkSubmitted applies a confirmed submit. sent holds the values that were
// submitted; echo, when present, is the server's authoritative copy.
func (d *DayEntry) MarkSubmitted(sentLogin, sentLogout *Clock, echo *Document) {
	d.Status = StatusSubmitted
	d.Login, d.Logout = sentLogin, sentLogout
	if echo != nil {
		applyFirstTask(d, echo.Tasks)
		if echo.SubmittedAt != nil {
			d.SubmittedAt = echo.SubmittedAt
		}
	}
}

// MarkReopenRequested sets the pending overlay; Status is unchanged.
func (d *DayEntry) MarkReopenRequested() {
	if d.IsHoliday {
		return
	}
	d.ReopenRequested = true
}

// ApplyReopenDecision applies an admin review to the day.
func (d *DayEntry) ApplyReopenDecision(decision RequestStatus) {
	if d.IsHoliday {
		return
	}
	switch decision {
	case RequestApproved:
		d.Reopened = true
		d.Status = StatusDraft
		d.ReopenRequested = false
	case RequestRejected:
		d.ReopenRequested = false
	}
}
