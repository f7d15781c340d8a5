package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nexografix/timesheet-bff/internal/domain/attendance"
	"github.com/nexografix/timesheet-bff/internal/domain/auth"
	"github.com/nexografix/timesheet-bff/internal/domain/employee"
	"github.com/nexografix/timesheet-bff/internal/domain/leave"
	"github.com/nexografix/timesheet-bff/internal/domain/preference"
	"github.com/nexografix/timesheet-bff/internal/domain/report"
	"github.com/nexografix/timesheet-bff/internal/domain/session"
	"github.com/nexografix/timesheet-bff/internal/domain/timesheet"
	"github.com/nexografix/timesheet-bff/internal/handler/http/response"
	"github.com/nexografix/timesheet-bff/internal/pkg/jwt"
	"github.com/nexografix/timesheet-bff/internal/pkg/sse"
	"github.com/nexografix/timesheet-bff/internal/repository/memory"
	authService "github.com/nexografix/timesheet-bff/internal/service/auth"
	"github.com/stretchr/testify/require"
)

const handlerTestSecret = "test-secret-key-for-jwt"

type fakeAuthenticator struct {
	mu       sync.Mutex
	logins   map[string]auth.UpstreamLogin
	changed  []string
	pwChange error
}

func (f *fakeAuthenticator) Login(_ context.Context, username, password string) (auth.UpstreamLogin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	up, ok := f.logins[username]
	if !ok || password != "secret" {
		return auth.UpstreamLogin{}, auth.ErrInvalidCredentials
	}
	return up, nil
}

func (f *fakeAuthenticator) ChangePassword(_ context.Context, newPassword string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pwChange != nil {
		return f.pwChange
	}
	f.changed = append(f.changed, newPassword)
	return nil
}

type dropRecorder struct {
	mu      sync.Mutex
	dropped []string
}

func (d *dropRecorder) DropSession(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dropped = append(d.dropped, id)
}

// Service stubs embed the interface; only the methods a test sets are safe to call.

type stubTimesheet struct {
	timesheet.TimesheetService
	updateDay func(req timesheet.UpdateDayRequest) (timesheet.DayResponse, error)
	getWeek   func() (timesheet.WeekResponse, error)
	showWeek  func(req timesheet.ShowWeekRequest) (timesheet.WeekResponse, error)
	review    func(req timesheet.ReviewReopenRequest) (timesheet.ReopenRequest, error)
}

func (s *stubTimesheet) UpdateDay(_ context.Context, req timesheet.UpdateDayRequest) (timesheet.DayResponse, error) {
	return s.updateDay(req)
}

func (s *stubTimesheet) GetWeek(context.Context) (timesheet.WeekResponse, error) {
	return s.getWeek()
}

func (s *stubTimesheet) ShowWeek(_ context.Context, req timesheet.ShowWeekRequest) (timesheet.WeekResponse, error) {
	return s.showWeek(req)
}

func (s *stubTimesheet) ReviewReopen(_ context.Context, req timesheet.ReviewReopenRequest) (timesheet.ReopenRequest, error) {
	return s.review(req)
}

type stubEmployees struct {
	calls int
}

func (s *stubEmployees) List(ctx context.Context, req employee.ListEmployeesRequest) ([]employee.EmployeeResponse, error) {
	s.calls++
	if _, err := session.MustFromContext(ctx); err != nil {
		return nil, err
	}
	return []employee.EmployeeResponse{{DisplayName: "asha", Role: "employee"}}, nil
}

type stubReports struct {
	report.ReportService
	timesheet func() (report.File, error)
}

func (s *stubReports) TimesheetWorkbook(context.Context) (report.File, error) {
	return s.timesheet()
}

type stubAttendance struct {
	attendance.AttendanceService
	clockIn func() (attendance.RecordResponse, error)
}

func (s *stubAttendance) ClockIn(context.Context) (attendance.RecordResponse, error) {
	return s.clockIn()
}

type stubLeave struct {
	leave.LeaveService
	apply  func(req leave.ApplyLeaveRequest) (leave.LeaveRequestResponse, error)
	review func(req leave.ReviewLeaveRequest) (leave.LeaveRequestResponse, error)
}

func (s *stubLeave) Apply(_ context.Context, req leave.ApplyLeaveRequest) (leave.LeaveRequestResponse, error) {
	return s.apply(req)
}

func (s *stubLeave) Review(_ context.Context, req leave.ReviewLeaveRequest) (leave.LeaveRequestResponse, error) {
	return s.review(req)
}

type stubPreferences struct {
	preference.PreferenceService
}

// testServer wires the real router, JWT and auth service around stubs.
type testServer struct {
	t      *testing.T
	router *chi.Mux
	jwt    jwt.Service
	auth   *authService.AuthServiceImpl
	hub    *sse.Hub
	upauth *fakeAuthenticator
	drops  *dropRecorder

	handlers   Handlers
	timesheet  *stubTimesheet
	employees  *stubEmployees
	reports    *stubReports
	attendance *stubAttendance
	leave      *stubLeave
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))

	str := func(s string) *string { return &s }
	yes := true
	ts := &testServer{
		t:   t,
		jwt: jwt.NewJWTService(handlerTestSecret, time.Hour),
		hub: sse.NewHub(),
		upauth: &fakeAuthenticator{logins: map[string]auth.UpstreamLogin{
			"asha":  {Username: str("asha"), Role: str("employee"), Token: "up-asha", Manager: str("Ravi")},
			"ravi":  {Username: str("ravi"), Role: str("admin"), Token: "up-ravi"},
			"fresh": {Username: str("fresh"), Role: str("employee"), Token: "up-fresh", ForceChangePassword: &yes},
		}},
		drops:      &dropRecorder{},
		timesheet:  &stubTimesheet{},
		employees:  &stubEmployees{},
		reports:    &stubReports{},
		attendance: &stubAttendance{},
		leave:      &stubLeave{},
	}
	ts.auth = authService.NewAuthService(ts.upauth, memory.NewSessionRepository(), ts.jwt, ts.drops, 12*time.Hour)

	ts.handlers = Handlers{
		Auth:       NewAuthHandler(ts.auth),
		Timesheet:  NewTimesheetHandler(ts.timesheet),
		Attendance: NewAttendanceHandler(ts.attendance),
		Leave:      NewLeaveHandler(ts.leave),
		Report:     NewReportHandler(ts.reports),
		Employee:   NewEmployeeHandler(ts.employees),
		Preference: NewPreferenceHandler(&stubPreferences{}),
		Stream:     NewStreamHandler(ts.jwt, ts.auth, ts.hub),
	}
	ts.router = NewRouter(RouterOptions{Env: "test", FrontendURL: "http://localhost:5173", LogLevel: slog.LevelError}, ts.jwt, ts.auth, ts.handlers)
	return ts
}

func (ts *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	ts.t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(ts.t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) login(username string) string {
	ts.t.Helper()
	rec := ts.do(http.MethodPost, "/api/v1/auth/login", "", auth.LoginRequest{Username: username, Password: "secret"})
	require.Equal(ts.t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Data auth.LoginResponse `json:"data"`
	}
	require.NoError(ts.t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(ts.t, resp.Data.AccessToken)
	return resp.Data.AccessToken
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, data any) response.Response {
	t.Helper()
	var envelope struct {
		response.Response
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope), rec.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(envelope.Data, data))
	}
	return envelope.Response
}
