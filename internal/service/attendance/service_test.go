package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nexografix/timesheet-bff/internal/domain/attendance"
	"github.com/nexografix/timesheet-bff/internal/domain/employee"
	"github.com/nexografix/timesheet-bff/internal/domain/gateway"
	"github.com/nexografix/timesheet-bff/internal/domain/session"
	"github.com/nexografix/timesheet-bff/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	records []attendance.Record
	listErr error
	today   *attendance.Record
	calls   []string
}

func (f *fakeGateway) ListAll(context.Context) ([]attendance.Record, error) {
	return f.records, f.listErr
}

func (f *fakeGateway) Today(context.Context) (*attendance.Record, error) {
	return f.today, nil
}

func (f *fakeGateway) action(name string) (*attendance.Record, error) {
	f.calls = append(f.calls, name)
	return f.today, nil
}

func (f *fakeGateway) ClockIn(context.Context) (*attendance.Record, error)  { return f.action("clock_in") }
func (f *fakeGateway) BreakIn(context.Context) (*attendance.Record, error)  { return f.action("break_in") }
func (f *fakeGateway) BreakOut(context.Context) (*attendance.Record, error) { return f.action("break_out") }
func (f *fakeGateway) ClockOut(context.Context) (*attendance.Record, error) { return f.action("clock_out") }

type fakeDirectory struct {
	employees []employee.Employee
}

func (f *fakeDirectory) ListEmployees(context.Context) ([]employee.Employee, error) {
	return f.employees, nil
}

func str(s string) *string { return &s }

func at(t *testing.T, s string) *time.Time {
	t.Helper()
	v, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return &v
}

func newTestService(gw *fakeGateway, dir *fakeDirectory) *AttendanceServiceImpl {
	svc := NewAttendanceService(gw, dir, time.UTC)
	svc.now = func() time.Time { return time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC) }
	return svc
}

func admin() context.Context {
	return session.WithSession(context.Background(), session.Session{ID: "s-1", Username: "boss", Role: session.RoleAdmin})
}

func employeeCtx() context.Context {
	return session.WithSession(context.Background(), session.Session{ID: "s-2", Username: "asha", Role: session.RoleEmployee})
}

func TestMatrix(t *testing.T) {
	gw := &fakeGateway{records: []attendance.Record{
		{
			User:       employee.Employee{Username: str("asha")},
			Date:       "2025-03-10",
			LoginTime:  at(t, "2025-03-10T09:00:00Z"),
			LogoutTime: at(t, "2025-03-10T18:00:00Z"),
			Breaks:     []attendance.Break{{Start: at(t, "2025-03-10T13:00:00Z"), End: at(t, "2025-03-10T13:30:00Z")}},
		},
		{User: employee.Employee{Username: str("asha")}, Date: "2025-02-01", LoginTime: at(t, "2025-02-01T09:00:00Z")},
	}}
	dir := &fakeDirectory{employees: []employee.Employee{
		{Username: str("zoe")},
		{Username: str("asha")},
		{Name: str("Amir Khan")},
	}}
	svc := newTestService(gw, dir)

	res, err := svc.Matrix(admin(), attendance.MatrixRequest{})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-04", res.Start)
	assert.Equal(t, "2025-03-10", res.End)
	assert.Len(t, res.DateKeys, 7)
	assert.Equal(t, []string{"Amir Khan", "asha", "zoe"}, res.Names)

	cell := res.Matrix.Cell("asha", "2025-03-10")
	require.NotNil(t, cell.TotalWorkMinutes)
	assert.Equal(t, 510, *cell.TotalWorkMinutes)
	assert.Equal(t, 30, *cell.TotalBreakMinutes)
	assert.Nil(t, res.Matrix.Cell("asha", "2025-02-01").Login, "records outside the range are ignored")

	res, err = svc.Matrix(admin(), attendance.MatrixRequest{Start: "2025-03-01", End: "2025-03-02", Search: "A"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-03-01", "2025-03-02"}, res.DateKeys)
	assert.Equal(t, []string{"Amir Khan", "asha"}, res.Names)
}

func TestMatrix_Errors(t *testing.T) {
	gw := &fakeGateway{}
	svc := newTestService(gw, &fakeDirectory{})

	_, err := svc.Matrix(employeeCtx(), attendance.MatrixRequest{})
	assert.ErrorIs(t, err, session.ErrAdminRequired)

	_, err = svc.Matrix(admin(), attendance.MatrixRequest{Start: "2025-03-05", End: "2025-03-01"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	gw.listErr = &gateway.NetworkError{Op: "GET /attendance/all", Err: errors.New("timeout")}
	_, err = svc.Matrix(admin(), attendance.MatrixRequest{})
	assert.ErrorIs(t, err, gateway.ErrNetwork)
}

func TestClockActions(t *testing.T) {
	gw := &fakeGateway{}
	svc := newTestService(gw, &fakeDirectory{})
	ctx := employeeCtx()

	resp, err := svc.Today(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", resp.Date)
	assert.Nil(t, resp.LoginTime)

	_, err = svc.BreakIn(ctx)
	assert.ErrorIs(t, err, attendance.ErrNotClockedIn)
	_, err = svc.ClockOut(ctx)
	assert.ErrorIs(t, err, attendance.ErrNotClockedIn)

	_, err = svc.ClockIn(ctx)
	require.NoError(t, err)

	gw.today = &attendance.Record{
		User:      employee.Employee{Username: str("asha")},
		Date:      "2025-03-10",
		LoginTime: at(t, "2025-03-10T09:00:00Z"),
	}
	_, err = svc.ClockIn(ctx)
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)
	_, err = svc.BreakOut(ctx)
	assert.ErrorIs(t, err, attendance.ErrNoOpenBreak)

	resp, err = svc.BreakIn(ctx)
	require.NoError(t, err)
	assert.Equal(t, "asha", resp.Username)

	gw.today.Breaks = []attendance.Break{{Start: at(t, "2025-03-10T13:00:00Z")}}
	_, err = svc.BreakIn(ctx)
	assert.ErrorIs(t, err, attendance.ErrBreakAlreadyOpen)
	resp, err = svc.BreakOut(ctx)
	require.NoError(t, err)
	assert.True(t, resp.OnBreak)

	gw.today.LogoutTime = at(t, "2025-03-10T18:00:00Z")
	_, err = svc.ClockOut(ctx)
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedOut)

	assert.Equal(t, []string{"clock_in", "break_in", "break_out"}, gw.calls)
}
