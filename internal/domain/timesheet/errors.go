package timesheet

import "errors"

var (
	ErrInvalidClock        = errors.New("invalid time, expected HH:MM")
	ErrDayNotFound         = errors.New("date is not part of the current week")
	ErrDayLocked           = errors.New("day is locked for editing")
	ErrHolidayLocked       = errors.New("holidays cannot be edited")
	ErrIncompleteDay       = errors.New("login and logout are both required")
	ErrAlreadySaved        = errors.New("day is already saved as draft")
	ErrNotSaved            = errors.New("save the day as draft before submitting")
	ErrAlreadySubmitted    = errors.New("day is already submitted or approved")
	ErrOperationInProgress = errors.New("another save or submit for this day is in progress")
	ErrFutureDate          = errors.New("future days cannot be reopened")
	ErrReopenNotAllowed    = errors.New("day cannot be reopened")
	ErrReopenPending       = errors.New("a reopen request for this day is already pending")
	ErrNoReopenOpened      = errors.New("no reopen request has been opened")

	ErrReopenRequestNotFound = errors.New("reopen request not found")
	ErrReopenAlreadyReviewed = errors.New("reopen request already reviewed")
)
