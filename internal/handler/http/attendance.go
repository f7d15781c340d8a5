package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/nexografix/timesheet-bff/internal/domain/attendance"
	"github.com/nexografix/timesheet-bff/internal/handler/http/response"
)

type AttendanceHandler interface {
	Today(w http.ResponseWriter, r *http.Request)
	ClockIn(w http.ResponseWriter, r *http.Request)
	BreakIn(w http.ResponseWriter, r *http.Request)
	BreakOut(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// Today implements AttendanceHandler.
func (h *attendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	record, err := h.attendanceService.Today(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, record)
}

// ClockIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	h.clock(w, r, "Clocked in", h.attendanceService.ClockIn)
}

// BreakIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) BreakIn(w http.ResponseWriter, r *http.Request) {
	h.clock(w, r, "Break started", h.attendanceService.BreakIn)
}

// BreakOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) BreakOut(w http.ResponseWriter, r *http.Request) {
	h.clock(w, r, "Break ended", h.attendanceService.BreakOut)
}

// ClockOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	h.clock(w, r, "Clocked out", h.attendanceService.ClockOut)
}

func (h *attendanceHandlerImpl) clock(w http.ResponseWriter, r *http.Request, message string, action func(context.Context) (attendance.RecordResponse, error)) {
	record, err := action(r.Context())
	if err != nil {
		slog.Error("Attendance clock action failed", "action", message, "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, message, record)
}
