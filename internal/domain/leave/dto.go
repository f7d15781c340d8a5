package leave

import (
	"time"

	"github.com/nexografix/timesheet-bff/internal/pkg/validator"
)

// ========================================
// REQUEST DTOs
// ========================================

type ApplyLeaveRequest struct {
	LeaveType     LeaveType `json:"leave_type"`
	FromDate      string    `json:"from_date"`
	ToDate        string    `json:"to_date"`
	Reason        string    `json:"reason"`
	AttachmentURL *string   `json:"attachment_url,omitempty"`
}

func (r *ApplyLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	// Type
	if validator.IsEmpty(string(r.LeaveType)) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type is required",
		})
	} else if !validator.IsInSlice(string(r.LeaveType), leaveTypeValues()) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type is not a known leave type",
		})
	}

	// Dates
	from, fromOK := requiredDate("from_date", r.FromDate, &errs)
	to, toOK := requiredDate("to_date", r.ToDate, &errs)
	if fromOK && toOK && to.Before(from) {
		errs = append(errs, validator.ValidationError{
			Field:   "to_date",
			Message: "to_date must not be before from_date",
		})
	}

	// Reason
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if r.AttachmentURL != nil && validator.IsEmpty(*r.AttachmentURL) {
		r.AttachmentURL = nil
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func requiredDate(field, value string, errs *validator.ValidationErrors) (time.Time, bool) {
	if validator.IsEmpty(value) {
		*errs = append(*errs, validator.ValidationError{
			Field:   field,
			Message: field + " is required",
		})
		return time.Time{}, false
	}
	t, ok := validator.IsValidDate(value)
	if !ok {
		*errs = append(*errs, validator.ValidationError{
			Field:   field,
			Message: field + " must be in YYYY-MM-DD format",
		})
	}
	return t, ok
}

type ReviewLeaveRequest struct {
	ID       string             `json:"-"`
	Decision LeaveRequestStatus `json:"status"`
}

func (r *ReviewLeaveRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}
	if err := validateDecision(r.Decision); err != nil {
		errs = append(errs, *err)
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BulkReviewLeaveRequest struct {
	IDs      []string           `json:"ids"`
	Decision LeaveRequestStatus `json:"status"`
}

func (r *BulkReviewLeaveRequest) Validate() error {
	var errs validator.ValidationErrors
	if len(r.IDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "ids", Message: "ids must not be empty"})
	}
	seen := make(map[string]bool, len(r.IDs))
	for _, id := range r.IDs {
		if validator.IsEmpty(id) {
			errs = append(errs, validator.ValidationError{Field: "ids", Message: "ids must not contain blanks"})
			break
		}
		if seen[id] {
			errs = append(errs, validator.ValidationError{Field: "ids", Message: "ids must not repeat: " + id})
			break
		}
		seen[id] = true
	}
	if err := validateDecision(r.Decision); err != nil {
		errs = append(errs, *err)
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateDecision(d LeaveRequestStatus) *validator.ValidationError {
	if d == LeaveRequestStatusApproved || d == LeaveRequestStatusRejected {
		return nil
	}
	return &validator.ValidationError{
		Field:   "status",
		Message: "status must be one of: approved, rejected",
	}
}

func leaveTypeValues() []string {
	out := make([]string, len(LeaveTypes))
	for i, o := range LeaveTypes {
		out[i] = string(o.Value)
	}
	return out
}

// ========================================
// RESPONSE DTOs
// ========================================

type LeaveRequestResponse struct {
	ID               string             `json:"id"`
	EmployeeUsername string             `json:"employee_username"`
	LeaveType        LeaveType          `json:"leave_type"`
	LeaveTypeLabel   string             `json:"leave_type_label"`
	FromDate         string             `json:"from_date"`
	ToDate           string             `json:"to_date"`
	Days             int                `json:"days"`
	Reason           string             `json:"reason"`
	AttachmentURL    *string            `json:"attachment_url"`
	Comment          *string            `json:"comment"`
	Status           LeaveRequestStatus `json:"status"`
	CreatedAt        *time.Time         `json:"created_at"`
}

func ToLeaveRequestResponse(r LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:               r.ID,
		EmployeeUsername: r.EmployeeUsername,
		LeaveType:        r.LeaveType,
		LeaveTypeLabel:   r.LeaveType.Label(),
		FromDate:         r.FromDate,
		ToDate:           r.ToDate,
		Days:             r.Days(),
		Reason:           r.Reason,
		AttachmentURL:    r.AttachmentURL,
		Comment:          r.Comment,
		Status:           r.Status,
		CreatedAt:        r.CreatedAt,
	}
}

type BulkReviewResponse struct {
	Status   LeaveRequestStatus `json:"status"`
	Reviewed []string           `json:"reviewed"`
}
