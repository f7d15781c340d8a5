package attendance

import (
	"time"

	"github.com/nexografix/timesheet-bff/internal/domain/calendar"
	"github.com/nexografix/timesheet-bff/internal/pkg/validator"
)

// DefaultRangeDays is the span used when the matrix range is omitted.
const DefaultRangeDays = 7

// ========================================
// MATRIX DTOs
// ========================================

type MatrixRequest struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	Search string `json:"search"`
}

// Validate resolves the inclusive range. Missing bounds default to the last
// seven days ending today.
func (r *MatrixRequest) Validate(today time.Time) (from, to time.Time, err error) {
	var errs validator.ValidationErrors

	to = calendar.Midnight(today)
	from = calendar.AddDays(to, -(DefaultRangeDays - 1))

	if r.Start != "" {
		t, ok := validator.IsValidDate(r.Start)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start",
				Message: "start must be in YYYY-MM-DD format",
			})
		}
		from = t
	}
	if r.End != "" {
		t, ok := validator.IsValidDate(r.End)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end",
				Message: "end must be in YYYY-MM-DD format",
			})
		}
		to = t
	}
	if len(errs) == 0 && to.Before(from) {
		errs = append(errs, validator.ValidationError{
			Field:   "end",
			Message: "end must not be before start",
		})
	}

	if len(errs) > 0 {
		return time.Time{}, time.Time{}, errs
	}
	return from, to, nil
}

// MatrixResult is the aggregated matrix with the rows to display, already
// filtered and ordered.
type MatrixResult struct {
	Start    string
	End      string
	DateKeys []string
	Names    []string
	Matrix   Matrix
}

// ========================================
// CLOCK DTOs
// ========================================

type BreakResponse struct {
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
}

type RecordResponse struct {
	ID                string          `json:"id,omitempty"`
	Date              string          `json:"date"`
	Username          string          `json:"username"`
	LoginTime         *time.Time      `json:"login_time"`
	LogoutTime        *time.Time      `json:"logout_time"`
	Breaks            []BreakResponse `json:"breaks"`
	OnBreak           bool            `json:"on_break"`
	TotalBreakMinutes *int            `json:"total_break_minutes"`
	TotalWorkMinutes  *int            `json:"total_work_minutes"`
	Status            string          `json:"status,omitempty"`
}

// ToRecordResponse maps a record; nil means no record yet for today.
func ToRecordResponse(r *Record, today string) RecordResponse {
	if r == nil {
		return RecordResponse{Date: today, Breaks: []BreakResponse{}}
	}
	cell := ToCell(*r)
	breaks := make([]BreakResponse, 0, len(r.Breaks))
	for _, b := range r.Breaks {
		breaks = append(breaks, BreakResponse{Start: b.Start, End: b.End})
	}
	return RecordResponse{
		ID:                r.ID,
		Date:              calendar.DateKey(r.Date),
		Username:          r.User.DisplayName(),
		LoginTime:         r.LoginTime,
		LogoutTime:        r.LogoutTime,
		Breaks:            breaks,
		OnBreak:           r.OpenBreak(),
		TotalBreakMinutes: cell.TotalBreakMinutes,
		TotalWorkMinutes:  cell.TotalWorkMinutes,
		Status:            r.Status,
	}
}
