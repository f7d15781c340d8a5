package timesheet

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nexografix/timesheet-bff/internal/domain/calendar"
	"github.com/nexografix/timesheet-bff/internal/domain/session"
	"github.com/nexografix/timesheet-bff/internal/domain/timesheet"
	"github.com/nexografix/timesheet-bff/internal/pkg/sse"
)

type fakeSheets struct {
	mu sync.Mutex

	weekDocs   []timesheet.Document
	fetchErr   error
	fetchedFor []string
	fetchUsers []string

	createErr map[string]error
	created   map[string][]timesheet.Task
	nextID    int

	echo      *timesheet.Document
	submitErr error
	submitted []string

	// gates block the call for a date until closed; started is signalled on entry.
	gates   map[string]chan struct{}
	started chan string

	mine []timesheet.Document
}

func newFakeSheets() *fakeSheets {
	return &fakeSheets{
		createErr: make(map[string]error),
		created:   make(map[string][]timesheet.Task),
		gates:     make(map[string]chan struct{}),
		started:   make(chan string, 8),
	}
}

func (f *fakeSheets) wait(key string) {
	f.mu.Lock()
	gate := f.gates[key]
	f.mu.Unlock()
	if gate != nil {
		f.started <- key
	}
	if gate != nil {
		<-gate
	}
}

func (f *fakeSheets) FetchWeek(ctx context.Context, weekStart string) ([]timesheet.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchedFor = append(f.fetchedFor, weekStart)
	if s, ok := session.FromContext(ctx); ok {
		f.fetchUsers = append(f.fetchUsers, s.Username)
	}
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return append([]timesheet.Document(nil), f.weekDocs...), nil
}

func (f *fakeSheets) CreateDraft(_ context.Context, date string, tasks []timesheet.Task) (string, error) {
	f.wait(date)
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.createErr[date]; err != nil {
		return "", err
	}
	f.nextID++
	f.created[date] = tasks
	return fmt.Sprintf("t-%d", f.nextID), nil
}

func (f *fakeSheets) SubmitDraft(_ context.Context, id string) (*timesheet.Document, error) {
	f.wait(id)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	f.submitted = append(f.submitted, id)
	return f.echo, nil
}

func (f *fakeSheets) ListMine(context.Context) ([]timesheet.Document, error) {
	return f.mine, nil
}

type fakeReopens struct {
	mu         sync.Mutex
	requests   []timesheet.ReopenRequest
	listErr    error
	requestErr error
	reviewed   map[string]timesheet.RequestStatus
}

func (f *fakeReopens) RequestReopen(_ context.Context, username, date, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.requestErr != nil {
		return f.requestErr
	}
	f.requests = append(f.requests, timesheet.ReopenRequest{
		ID:               fmt.Sprintf("r-%d", len(f.requests)+1),
		EmployeeUsername: username,
		Date:             date,
		Reason:           reason,
		Status:           timesheet.RequestPending,
	})
	return nil
}

func (f *fakeReopens) ListReopenRequests(_ context.Context, scope timesheet.ReopenScope, username string) ([]timesheet.ReopenRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []timesheet.ReopenRequest
	for _, r := range f.requests {
		if scope == timesheet.ScopeMine && r.EmployeeUsername != username {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeReopens) ReviewReopenRequest(_ context.Context, id string, decision timesheet.RequestStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.reviewed == nil {
		f.reviewed = make(map[string]timesheet.RequestStatus)
	}
	f.reviewed[id] = decision
	for i := range f.requests {
		if f.requests[i].ID == id {
			f.requests[i].Status = decision
		}
	}
	return nil
}

type fakeWeekends struct {
	submitted []timesheet.WeekendWorkingRequest
	mine      []timesheet.WeekendRequest
}

func (f *fakeWeekends) SubmitWeekend(_ context.Context, date, reason string) error {
	f.submitted = append(f.submitted, timesheet.WeekendWorkingRequest{Date: date, Reason: reason})
	return nil
}

func (f *fakeWeekends) ListMyWeekend(context.Context) ([]timesheet.WeekendRequest, error) {
	return f.mine, nil
}

type published struct {
	username string
	event    sse.Event
}

type recorder struct {
	mu     sync.Mutex
	events []published
}

func (r *recorder) Publish(username string, e sse.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, published{username: username, event: e})
}

func (r *recorder) PublishToMany(usernames []string, e sse.Event) {
	for _, u := range usernames {
		r.Publish(u, e)
	}
}

func (r *recorder) names(username string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, p := range r.events {
		if p.username == username {
			out = append(out, p.event.Name)
		}
	}
	return out
}

type fixture struct {
	svc      *TimesheetServiceImpl
	sheets   *fakeSheets
	reopens  *fakeReopens
	weekends *fakeWeekends
	events   *recorder
}

// fixedNow is Tuesday; its week starts on the Republic Day holiday.
var fixedNow = time.Date(2025, 1, 28, 10, 0, 0, 0, time.UTC)

const (
	holidayDate = "2025-01-26"
	pastDate    = "2025-01-27"
	todayDate   = "2025-01-28"
	futureDate  = "2025-01-30"
)

func newFixture() *fixture {
	f := &fixture{
		sheets:   newFakeSheets(),
		reopens:  &fakeReopens{},
		weekends: &fakeWeekends{},
		events:   &recorder{},
	}
	f.svc = NewTimesheetService(f.sheets, f.reopens, f.weekends,
		calendar.NewHolidayTable(calendar.DefaultHolidays), f.events, time.UTC)
	f.svc.now = func() time.Time { return fixedNow }
	return f
}

func employeeCtx() context.Context {
	return session.WithSession(context.Background(), session.Session{
		ID:            "sess-asha",
		Username:      "asha",
		Role:          session.RoleEmployee,
		Manager:       "Priya",
		UpstreamToken: "upstream-asha",
	})
}

func adminCtx() context.Context {
	return session.WithSession(context.Background(), session.Session{
		ID:       "sess-boss",
		Username: "boss",
		Role:     session.RoleAdmin,
	})
}

func strPtr(s string) *string { return &s }
