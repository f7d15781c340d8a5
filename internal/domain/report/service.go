package report

import (
	"context"

	"github.com/nexografix/timesheet-bff/internal/domain/attendance"
)

// File is a generated download.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

type ArchiveResponse struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Size     int    `json:"size"`
}

// ReportService builds the attendance and timesheet projections.
type ReportService interface {
	// AttendanceView is the on-screen attendance matrix
	AttendanceView(ctx context.Context, req attendance.MatrixRequest) (AttendanceView, error)

	// AttendanceWorkbook renders the same matrix as an xlsx file
	AttendanceWorkbook(ctx context.Context, req attendance.MatrixRequest) (File, error)

	// ArchiveAttendance stores the workbook and returns where it can be fetched
	ArchiveAttendance(ctx context.Context, req attendance.MatrixRequest) (ArchiveResponse, error)

	// TimesheetWorkbook renders the caller's current week
	TimesheetWorkbook(ctx context.Context) (File, error)
}
