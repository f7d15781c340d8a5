package timesheet

import (
	"time"

	"github.com/nexografix/timesheet-bff/internal/domain/calendar"
	"github.com/nexografix/timesheet-bff/internal/pkg/validator"
)

// ========================================
// REQUESTS
// ========================================

type ShowWeekRequest struct {
	Anchor string `json:"anchor"`
}

func (r *ShowWeekRequest) Validate() (time.Time, error) {
	t, ok := validator.IsValidDate(r.Anchor)
	if !ok {
		return time.Time{}, validator.Single("anchor", "anchor must be a date in YYYY-MM-DD format")
	}
	return t, nil
}

type ShiftWeekRequest struct {
	Days int `json:"days"`
}

func (r *ShiftWeekRequest) Validate() error {
	if r.Days == 0 || r.Days > 366 || r.Days < -366 {
		return validator.Single("days", "days must be a non-zero offset within one year")
	}
	return nil
}

type UpdateDayRequest struct {
	Date   string `json:"date"`
	Login  string `json:"login"`
	Logout string `json:"logout"`
}

func (r *UpdateDayRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}
	if r.Login != "" && !validator.IsValidClock(r.Login) {
		errs = append(errs, validator.ValidationError{
			Field:   "login",
			Message: "login must be in HH:MM format",
		})
	}
	if r.Logout != "" && !validator.IsValidClock(r.Logout) {
		errs = append(errs, validator.ValidationError{
			Field:   "logout",
			Message: "logout must be in HH:MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Clocks parses the validated login/logout; blank values become nil.
func (r *UpdateDayRequest) Clocks() (login, logout *Clock, err error) {
	if login, err = optionalClock(r.Login); err != nil {
		return nil, nil, err
	}
	if logout, err = optionalClock(r.Logout); err != nil {
		return nil, nil, err
	}
	return login, logout, nil
}

type SendReopenRequest struct {
	// Date defaults to the day opened through OpenReopen.
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

func (r *SendReopenRequest) Validate(today time.Time) error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "Please enter a reason.",
		})
	}
	if r.Date != "" {
		if _, ok := validator.IsValidDate(r.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		} else if r.Date > calendar.FormatDate(calendar.Midnight(today)) {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: ErrFutureDate.Error(),
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ReviewReopenRequest struct {
	ID       string `json:"-"`
	Decision string `json:"status"`
}

func (r *ReviewReopenRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if !validator.IsInSlice(r.Decision, []string{string(RequestApproved), string(RequestRejected)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be either approved or rejected",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type WeekendWorkingRequest struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

func (r *WeekendWorkingRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	} else if !calendar.IsWeekendDate(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be a Saturday or Sunday",
		})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========================================
// RESPONSES
// ========================================

type DayResponse struct {
	Date            string  `json:"date"`
	Login           string  `json:"login"`
	Logout          string  `json:"logout"`
	Hours           string  `json:"hours"`
	Status          Status  `json:"status"`
	Label           string  `json:"day_label,omitempty"`
	IsHoliday       bool    `json:"is_holiday"`
	IsWeekend       bool    `json:"is_weekend"`
	IsToday         bool    `json:"is_today"`
	IsFuture        bool    `json:"is_future"`
	Reopened        bool    `json:"reopened"`
	ReopenRequested bool    `json:"reopen_requested"`
	TimesheetID     *string `json:"timesheet_id"`
	Editable        bool    `json:"editable"`
	CanSaveDraft    bool    `json:"can_save_draft"`
	CanSubmit       bool    `json:"can_submit"`
	CanReopen       bool    `json:"can_reopen"`
}

func ToDayResponse(d DayEntry) DayResponse {
	return DayResponse{
		Date:            d.Date,
		Login:           clockString(d.Login),
		Logout:          clockString(d.Logout),
		Hours:           d.Hours(),
		Status:          d.DisplayStatus(),
		Label:           d.Label,
		IsHoliday:       d.IsHoliday,
		IsWeekend:       d.IsWeekend,
		IsToday:         d.IsToday,
		IsFuture:        d.IsFuture,
		Reopened:        d.Reopened,
		ReopenRequested: d.ReopenRequested,
		TimesheetID:     d.TimesheetID,
		Editable:        d.CanEdit(),
		CanSaveDraft:    d.CanSaveDraft(),
		CanSubmit:       d.CanSubmit(),
		CanReopen:       d.CanRequestReopen(),
	}
}

type WeekResponse struct {
	Start   string        `json:"start"`
	End     string        `json:"end"`
	Manager string        `json:"manager"`
	Synced  bool          `json:"synced"`
	Days    []DayResponse `json:"days"`
}

func ToWeekResponse(w Week, synced bool) WeekResponse {
	days := make([]DayResponse, 0, len(w.Days))
	for _, d := range w.Days {
		days = append(days, ToDayResponse(d))
	}
	return WeekResponse{
		Start:   w.Start,
		End:     w.End,
		Manager: w.Manager,
		Synced:  synced,
		Days:    days,
	}
}

type SaveAllResponse struct {
	Saved []string     `json:"saved"`
	Week  WeekResponse `json:"week"`
}
