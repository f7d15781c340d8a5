package http

import (
	"log/slog"
	"net/http"

	"github.com/nexografix/timesheet-bff/internal/domain/attendance"
	"github.com/nexografix/timesheet-bff/internal/domain/report"
	"github.com/nexografix/timesheet-bff/internal/handler/http/response"
)

type ReportHandler interface {
	AttendanceMatrix(w http.ResponseWriter, r *http.Request)
	AttendanceWorkbook(w http.ResponseWriter, r *http.Request)
	ArchiveAttendance(w http.ResponseWriter, r *http.Request)
	TimesheetWorkbook(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

func matrixRequest(r *http.Request) attendance.MatrixRequest {
	q := r.URL.Query()
	return attendance.MatrixRequest{
		Start:  q.Get("start"),
		End:    q.Get("end"),
		Search: q.Get("search"),
	}
}

// AttendanceMatrix implements ReportHandler.
func (h *reportHandlerImpl) AttendanceMatrix(w http.ResponseWriter, r *http.Request) {
	view, err := h.reportService.AttendanceView(r.Context(), matrixRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, view)
}

// AttendanceWorkbook implements ReportHandler.
func (h *reportHandlerImpl) AttendanceWorkbook(w http.ResponseWriter, r *http.Request) {
	file, err := h.reportService.AttendanceWorkbook(r.Context(), matrixRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Attachment(w, file.Name, file.ContentType, file.Data)
}

// ArchiveAttendance implements ReportHandler.
func (h *reportHandlerImpl) ArchiveAttendance(w http.ResponseWriter, r *http.Request) {
	archived, err := h.reportService.ArchiveAttendance(r.Context(), matrixRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	slog.Info("Attendance report archived", "filename", archived.Filename, "size", archived.Size)
	response.Created(w, "Attendance report archived", archived)
}

// TimesheetWorkbook implements ReportHandler.
func (h *reportHandlerImpl) TimesheetWorkbook(w http.ResponseWriter, r *http.Request) {
	file, err := h.reportService.TimesheetWorkbook(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Attachment(w, file.Name, file.ContentType, file.Data)
}
