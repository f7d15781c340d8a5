package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/nexografix/timesheet-bff/internal/domain/attendance"
	"github.com/nexografix/timesheet-bff/internal/domain/auth"
	"github.com/nexografix/timesheet-bff/internal/domain/gateway"
	"github.com/nexografix/timesheet-bff/internal/domain/leave"
	"github.com/nexografix/timesheet-bff/internal/domain/preference"
	"github.com/nexografix/timesheet-bff/internal/domain/report"
	"github.com/nexografix/timesheet-bff/internal/domain/session"
	"github.com/nexografix/timesheet-bff/internal/domain/timesheet"
	"github.com/nexografix/timesheet-bff/internal/pkg/jwt"
	"github.com/nexografix/timesheet-bff/internal/pkg/storage"
	"github.com/nexografix/timesheet-bff/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Upstream errors
	var remote *gateway.RemoteError
	switch {
	case errors.As(err, &remote):
		UpstreamRejected(w, remote.Message)
		return
	case errors.Is(err, gateway.ErrNetwork):
		BadGateway(w, "Could not reach the HR service, please try again")
		return
	case errors.Is(err, gateway.ErrUnauthorized):
		Unauthorized(w, "Your session with the HR service has ended, please log in again")
		return
	case errors.Is(err, gateway.ErrNotFound):
		NotFound(w, "Not found on the HR service")
		return
	}

	switch {
	// Auth and session errors
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, jwt.ErrWrongTokenType):
		Unauthorized(w, err.Error())
	case errors.Is(err, session.ErrSessionNotFound):
		Unauthorized(w, "Session not found")
	case errors.Is(err, session.ErrSessionExpired):
		Unauthorized(w, "Session expired")
	case errors.Is(err, session.ErrAdminRequired),
		errors.Is(err, session.ErrPasswordChangePending):
		Forbidden(w, err.Error())

	// Timesheet domain errors
	case errors.Is(err, timesheet.ErrDayNotFound),
		errors.Is(err, timesheet.ErrReopenRequestNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, timesheet.ErrDayLocked),
		errors.Is(err, timesheet.ErrHolidayLocked),
		errors.Is(err, timesheet.ErrIncompleteDay),
		errors.Is(err, timesheet.ErrAlreadySaved),
		errors.Is(err, timesheet.ErrNotSaved),
		errors.Is(err, timesheet.ErrAlreadySubmitted),
		errors.Is(err, timesheet.ErrOperationInProgress),
		errors.Is(err, timesheet.ErrFutureDate),
		errors.Is(err, timesheet.ErrReopenNotAllowed),
		errors.Is(err, timesheet.ErrReopenPending),
		errors.Is(err, timesheet.ErrNoReopenOpened),
		errors.Is(err, timesheet.ErrReopenAlreadyReviewed):
		Conflict(w, err.Error())
	case errors.Is(err, timesheet.ErrInvalidClock):
		BadRequest(w, err.Error(), nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyClockedIn),
		errors.Is(err, attendance.ErrNotClockedIn),
		errors.Is(err, attendance.ErrAlreadyClockedOut),
		errors.Is(err, attendance.ErrBreakAlreadyOpen),
		errors.Is(err, attendance.ErrNoOpenBreak):
		Conflict(w, err.Error())

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		Conflict(w, err.Error())

	// Preferences, reports and files
	case errors.Is(err, preference.ErrPreferenceNotFound):
		NotFound(w, "Preference not found")
	case errors.Is(err, storage.ErrFileNotFound):
		NotFound(w, "File not found")
	case errors.Is(err, report.ErrReportGenerationFailed),
		errors.Is(err, report.ErrArchiveFailed):
		slog.Error("Report failure", "error", err)
		InternalServerError(w, err.Error())

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
