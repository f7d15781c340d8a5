package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nexografix/timesheet-bff/internal/domain/attendance"
	"github.com/nexografix/timesheet-bff/internal/domain/calendar"
	"github.com/nexografix/timesheet-bff/internal/domain/employee"
	"github.com/nexografix/timesheet-bff/internal/domain/report"
	"github.com/nexografix/timesheet-bff/internal/domain/session"
	"golang.org/x/sync/errgroup"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceGateway
	employee.Directory
	loc *time.Location
	now func() time.Time
}

func NewAttendanceService(gw attendance.AttendanceGateway, directory employee.Directory, loc *time.Location) *AttendanceServiceImpl {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceServiceImpl{
		AttendanceGateway: gw,
		Directory:         directory,
		loc:               loc,
		now:               time.Now,
	}
}

var _ attendance.AttendanceService = (*AttendanceServiceImpl)(nil)

func (a *AttendanceServiceImpl) today() time.Time {
	return a.now().In(a.loc)
}

// Matrix implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Matrix(ctx context.Context, req attendance.MatrixRequest) (attendance.MatrixResult, error) {
	from, to, err := req.Validate(a.today())
	if err != nil {
		return attendance.MatrixResult{}, err
	}
	sess, err := session.MustFromContext(ctx)
	if err != nil {
		return attendance.MatrixResult{}, err
	}
	if !sess.IsAdmin() {
		return attendance.MatrixResult{}, session.ErrAdminRequired
	}

	dateKeys, err := calendar.DateRange(from, to)
	if err != nil {
		return attendance.MatrixResult{}, err
	}

	var (
		employees []employee.Employee
		records   []attendance.Record
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		employees, err = a.ListEmployees(gctx)
		if err != nil {
			return fmt.Errorf("list employees: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		records, err = a.ListAll(gctx)
		if err != nil {
			return fmt.Errorf("list attendance: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return attendance.MatrixResult{}, err
	}

	m := attendance.Aggregate(employees, records, dateKeys)
	names := report.FilterNames(m.Employees, req.Search)

	slog.Debug("Attendance matrix built",
		"start", dateKeys[0], "end", dateKeys[len(dateKeys)-1],
		"employees", len(m.Employees), "records", len(records), "shown", len(names))

	return attendance.MatrixResult{
		Start:    dateKeys[0],
		End:      dateKeys[len(dateKeys)-1],
		DateKeys: dateKeys,
		Names:    names,
		Matrix:   m,
	}, nil
}

// Today implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Today(ctx context.Context) (attendance.RecordResponse, error) {
	record, err := a.AttendanceGateway.Today(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	return attendance.ToRecordResponse(record, a.todayKey()), nil
}

func (a *AttendanceServiceImpl) todayKey() string {
	return calendar.FormatDate(calendar.Midnight(a.today()))
}

// clock loads today's record, checks the guard and forwards the action.
func (a *AttendanceServiceImpl) clock(
	ctx context.Context,
	action string,
	check func(*attendance.Record) error,
	forward func(context.Context) (*attendance.Record, error),
) (attendance.RecordResponse, error) {
	current, err := a.AttendanceGateway.Today(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if err := check(current); err != nil {
		return attendance.RecordResponse{}, err
	}

	record, err := forward(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	if sess, ok := session.FromContext(ctx); ok {
		slog.Info("Attendance clock action", "action", action, "username", sess.Username)
	}
	return attendance.ToRecordResponse(record, a.todayKey()), nil
}

// ClockIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context) (attendance.RecordResponse, error) {
	return a.clock(ctx, "clock_in", attendance.CheckClockIn, a.AttendanceGateway.ClockIn)
}

// BreakIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) BreakIn(ctx context.Context) (attendance.RecordResponse, error) {
	return a.clock(ctx, "break_in", attendance.CheckBreakIn, a.AttendanceGateway.BreakIn)
}

// BreakOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) BreakOut(ctx context.Context) (attendance.RecordResponse, error) {
	return a.clock(ctx, "break_out", attendance.CheckBreakOut, a.AttendanceGateway.BreakOut)
}

// ClockOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context) (attendance.RecordResponse, error) {
	return a.clock(ctx, "clock_out", attendance.CheckClockOut, a.AttendanceGateway.ClockOut)
}
