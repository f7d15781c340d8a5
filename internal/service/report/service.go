package report

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/nexografix/timesheet-bff/internal/domain/attendance"
	"github.com/nexografix/timesheet-bff/internal/domain/report"
	"github.com/nexografix/timesheet-bff/internal/domain/timesheet"
	"github.com/nexografix/timesheet-bff/internal/pkg/spreadsheet"
	"github.com/nexografix/timesheet-bff/internal/pkg/storage"
)

// WeekSource hands out a copy of the caller's week grid.
type WeekSource interface {
	Snapshot(ctx context.Context) (timesheet.Week, error)
}

type ReportServiceImpl struct {
	attendance attendance.AttendanceService
	weeks      WeekSource
	storage    storage.FileStorage
	loc        *time.Location
}

// NewReportService builds exports on top of the attendance matrix and the
// timesheet board. store may be nil, which disables archiving.
func NewReportService(att attendance.AttendanceService, weeks WeekSource, store storage.FileStorage, loc *time.Location) *ReportServiceImpl {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportServiceImpl{attendance: att, weeks: weeks, storage: store, loc: loc}
}

var _ report.ReportService = (*ReportServiceImpl)(nil)

// AttendanceView implements report.ReportService.
func (r *ReportServiceImpl) AttendanceView(ctx context.Context, req attendance.MatrixRequest) (report.AttendanceView, error) {
	res, err := r.attendance.Matrix(ctx, req)
	if err != nil {
		return report.AttendanceView{}, err
	}
	return report.BuildAttendanceView(res.Names, res.DateKeys, res.Matrix, r.loc), nil
}

// AttendanceWorkbook implements report.ReportService.
func (r *ReportServiceImpl) AttendanceWorkbook(ctx context.Context, req attendance.MatrixRequest) (report.File, error) {
	view, err := r.AttendanceView(ctx, req)
	if err != nil {
		return report.File{}, err
	}
	data, err := spreadsheet.Render(report.AttendanceTable(view))
	if err != nil {
		return report.File{}, fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
	}
	return report.File{
		Name:        report.AttendanceFilename(view.Start, view.End),
		ContentType: spreadsheet.ContentType,
		Data:        data,
	}, nil
}

// ArchiveAttendance implements report.ReportService.
func (r *ReportServiceImpl) ArchiveAttendance(ctx context.Context, req attendance.MatrixRequest) (report.ArchiveResponse, error) {
	if r.storage == nil {
		return report.ArchiveResponse{}, fmt.Errorf("%w: no storage configured", report.ErrArchiveFailed)
	}
	file, err := r.AttendanceWorkbook(ctx, req)
	if err != nil {
		return report.ArchiveResponse{}, err
	}

	key := path.Join("attendance", uuid.NewString(), file.Name)
	stored, err := r.storage.Save(ctx, key, bytes.NewReader(file.Data))
	if err != nil {
		return report.ArchiveResponse{}, fmt.Errorf("%w: %v", report.ErrArchiveFailed, err)
	}

	slog.Info("Attendance workbook archived", "key", stored, "size", len(file.Data))
	return report.ArchiveResponse{
		Filename: file.Name,
		URL:      r.storage.URL(stored),
		Size:     len(file.Data),
	}, nil
}

// TimesheetWorkbook implements report.ReportService.
func (r *ReportServiceImpl) TimesheetWorkbook(ctx context.Context) (report.File, error) {
	week, err := r.weeks.Snapshot(ctx)
	if err != nil {
		return report.File{}, err
	}
	data, err := spreadsheet.Render(report.ProjectWeek(week))
	if err != nil {
		return report.File{}, fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
	}
	return report.File{
		Name:        report.TimesheetFilename(week.Start, week.End),
		ContentType: spreadsheet.ContentType,
		Data:        data,
	}, nil
}
