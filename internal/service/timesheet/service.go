package timesheet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nexografix/timesheet-bff/internal/domain/calendar"
	"github.com/nexografix/timesheet-bff/internal/domain/gateway"
	"github.com/nexografix/timesheet-bff/internal/domain/session"
	"github.com/nexografix/timesheet-bff/internal/domain/timesheet"
	"github.com/nexografix/timesheet-bff/internal/pkg/sse"
	"github.com/nexografix/timesheet-bff/internal/pkg/validator"
	"golang.org/x/sync/errgroup"
)

type TimesheetServiceImpl struct {
	sheets   timesheet.TimesheetGateway
	reopens  timesheet.ReopenGateway
	weekends timesheet.WeekendGateway
	holidays calendar.HolidayTable
	events   sse.Publisher
	loc      *time.Location
	now      func() time.Time

	mu     sync.Mutex
	boards map[string]*board
}

// NewTimesheetService keeps one board per session ID. events may be nil.
func NewTimesheetService(
	sheets timesheet.TimesheetGateway,
	reopens timesheet.ReopenGateway,
	weekends timesheet.WeekendGateway,
	holidays calendar.HolidayTable,
	events sse.Publisher,
	loc *time.Location,
) *TimesheetServiceImpl {
	if loc == nil {
		loc = time.UTC
	}
	return &TimesheetServiceImpl{
		sheets:   sheets,
		reopens:  reopens,
		weekends: weekends,
		holidays: holidays,
		events:   events,
		loc:      loc,
		now:      time.Now,
		boards:   make(map[string]*board),
	}
}

var _ timesheet.TimesheetService = (*TimesheetServiceImpl)(nil)

func (s *TimesheetServiceImpl) today() time.Time {
	return s.now().In(s.loc)
}

// board returns the caller's board, creating and loading it on first use.
func (s *TimesheetServiceImpl) board(ctx context.Context) (*board, error) {
	sess, err := session.MustFromContext(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	b, ok := s.boards[sess.ID]
	if !ok {
		today := s.today()
		b = newBoard(sess, timesheet.NewWeek(today, s.holidays, today, sess.ManagerLabel()))
		s.boards[sess.ID] = b
	}
	s.mu.Unlock()

	if !ok {
		if _, err := s.load(ctx, b, s.today()); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// load rebuilds the board around anchor and merges the server's view of it.
// Upstream failures other than rejected credentials leave an unsynced grid.
func (s *TimesheetServiceImpl) load(ctx context.Context, b *board, anchor time.Time) (timesheet.WeekResponse, error) {
	b.mu.Lock()
	week := timesheet.NewWeek(anchor, s.holidays, s.today(), b.sess.ManagerLabel())
	b.week, b.synced, b.reopen = week, false, nil
	username := b.sess.Username
	b.mu.Unlock()

	docs, requests, err := s.fetch(ctx, username, week.Start)

	b.mu.Lock()
	defer b.mu.Unlock()

	if err != nil {
		if errors.Is(err, gateway.ErrUnauthorized) {
			return timesheet.WeekResponse{}, err
		}
		slog.Warn("Failed to load week from upstream", "username", username, "week_start", week.Start, "error", err)
		return b.response(), nil
	}
	if b.week.Start == week.Start {
		b.week = timesheet.ApplyReopenRequests(timesheet.MergeFromServer(b.week, docs), requests)
		b.synced = true
	}
	return b.response(), nil
}

func (s *TimesheetServiceImpl) fetch(ctx context.Context, username, weekStart string) ([]timesheet.Document, []timesheet.ReopenRequest, error) {
	var (
		docs     []timesheet.Document
		requests []timesheet.ReopenRequest
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		docs, err = s.sheets.FetchWeek(gctx, weekStart)
		return err
	})
	g.Go(func() error {
		var err error
		requests, err = s.reopens.ListReopenRequests(gctx, timesheet.ScopeMine, username)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return docs, requests, nil
}

func (s *TimesheetServiceImpl) publish(username, name string, data any) {
	if s.events == nil {
		return
	}
	s.events.Publish(username, sse.Event{Name: name, Data: data})
}

// ========================================
// WEEK NAVIGATION
// ========================================

func (s *TimesheetServiceImpl) GetWeek(ctx context.Context) (timesheet.WeekResponse, error) {
	b, err := s.board(ctx)
	if err != nil {
		return timesheet.WeekResponse{}, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.response(), nil
}

func (s *TimesheetServiceImpl) ShowWeek(ctx context.Context, req timesheet.ShowWeekRequest) (timesheet.WeekResponse, error) {
	anchor, err := req.Validate()
	if err != nil {
		return timesheet.WeekResponse{}, err
	}
	b, err := s.board(ctx)
	if err != nil {
		return timesheet.WeekResponse{}, err
	}
	return s.load(ctx, b, anchor)
}

func (s *TimesheetServiceImpl) ShiftWeek(ctx context.Context, req timesheet.ShiftWeekRequest) (timesheet.WeekResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.WeekResponse{}, err
	}
	b, err := s.board(ctx)
	if err != nil {
		return timesheet.WeekResponse{}, err
	}
	b.mu.Lock()
	start := b.weekStart()
	b.mu.Unlock()

	return s.load(ctx, b, calendar.AddDays(start, req.Days))
}

func (s *TimesheetServiceImpl) CurrentWeek(ctx context.Context) (timesheet.WeekResponse, error) {
	b, err := s.board(ctx)
	if err != nil {
		return timesheet.WeekResponse{}, err
	}
	return s.load(ctx, b, s.today())
}

// Snapshot returns a copy of the caller's grid.
func (s *TimesheetServiceImpl) Snapshot(ctx context.Context) (timesheet.Week, error) {
	b, err := s.board(ctx)
	if err != nil {
		return timesheet.Week{}, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.week, nil
}

// ========================================
// DAY ENTRY
// ========================================

func validDate(date string) error {
	if _, ok := validator.IsValidDate(date); !ok {
		return validator.Single("date", "date must be in YYYY-MM-DD format")
	}
	return nil
}

func (s *TimesheetServiceImpl) UpdateDay(ctx context.Context, req timesheet.UpdateDayRequest) (timesheet.DayResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.DayResponse{}, err
	}
	login, logout, err := req.Clocks()
	if err != nil {
		return timesheet.DayResponse{}, validator.Single("login", err.Error())
	}

	b, err := s.board(ctx)
	if err != nil {
		return timesheet.DayResponse{}, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	day, ok := b.week.Day(req.Date)
	if !ok {
		return timesheet.DayResponse{}, timesheet.ErrDayNotFound
	}
	if day.IsHoliday {
		return timesheet.DayResponse{}, timesheet.ErrHolidayLocked
	}
	if err := day.Edit(login, logout); err != nil {
		return timesheet.DayResponse{}, err
	}
	return timesheet.ToDayResponse(*day), nil
}

func (s *TimesheetServiceImpl) SaveDraft(ctx context.Context, date string) (timesheet.DayResponse, error) {
	if err := validDate(date); err != nil {
		return timesheet.DayResponse{}, err
	}
	b, err := s.board(ctx)
	if err != nil {
		return timesheet.DayResponse{}, err
	}

	b.mu.Lock()
	day, ok := b.week.Day(date)
	if !ok {
		b.mu.Unlock()
		return timesheet.DayResponse{}, timesheet.ErrDayNotFound
	}
	if err := day.CheckSaveDraft(); err != nil {
		b.mu.Unlock()
		return timesheet.DayResponse{}, err
	}
	if err := b.begin(date); err != nil {
		b.mu.Unlock()
		return timesheet.DayResponse{}, err
	}
	tasks := day.DraftTasks()
	b.mu.Unlock()

	id, err := s.sheets.CreateDraft(ctx, date, tasks)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.end(date)
	if err != nil {
		return timesheet.DayResponse{}, err
	}

	day, ok = b.week.Day(date)
	if !ok {
		return timesheet.DayResponse{Date: date, Status: timesheet.StatusDraft, TimesheetID: &id}, nil
	}
	day.MarkDraft(id)
	resp := timesheet.ToDayResponse(*day)
	s.publish(b.sess.Username, sse.EventWeekUpdated, b.response())
	return resp, nil
}

// SaveAll saves every filled day that has no draft yet, in grid order, and
// stops at the first failure.
func (s *TimesheetServiceImpl) SaveAll(ctx context.Context) (timesheet.SaveAllResponse, error) {
	b, err := s.board(ctx)
	if err != nil {
		return timesheet.SaveAllResponse{}, err
	}

	b.mu.Lock()
	var pending []string
	for _, d := range b.week.Days {
		if d.CanSaveDraft() {
			pending = append(pending, d.Date)
		}
	}
	b.mu.Unlock()

	saved := make([]string, 0, len(pending))
	for _, date := range pending {
		if _, err := s.SaveDraft(ctx, date); err != nil {
			slog.Warn("Save all stopped", "date", date, "saved", saved, "error", err)
			return timesheet.SaveAllResponse{}, fmt.Errorf("save %s: %w", date, err)
		}
		saved = append(saved, date)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	return timesheet.SaveAllResponse{Saved: saved, Week: b.response()}, nil
}

func (s *TimesheetServiceImpl) SubmitDay(ctx context.Context, date string) (timesheet.DayResponse, error) {
	if err := validDate(date); err != nil {
		return timesheet.DayResponse{}, err
	}
	b, err := s.board(ctx)
	if err != nil {
		return timesheet.DayResponse{}, err
	}

	b.mu.Lock()
	day, ok := b.week.Day(date)
	if !ok {
		b.mu.Unlock()
		return timesheet.DayResponse{}, timesheet.ErrDayNotFound
	}
	if err := day.CheckSubmit(); err != nil {
		b.mu.Unlock()
		return timesheet.DayResponse{}, err
	}
	if err := b.begin(date); err != nil {
		b.mu.Unlock()
		return timesheet.DayResponse{}, err
	}
	id := *day.TimesheetID
	sentLogin, sentLogout := day.Login, day.Logout
	b.mu.Unlock()

	echo, err := s.sheets.SubmitDraft(ctx, id)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.end(date)
	if err != nil {
		return timesheet.DayResponse{}, err
	}

	day, ok = b.week.Day(date)
	if !ok {
		return timesheet.DayResponse{Date: date, Status: timesheet.StatusSubmitted, TimesheetID: &id}, nil
	}
	day.MarkSubmitted(sentLogin, sentLogout, echo)
	resp := timesheet.ToDayResponse(*day)
	s.publish(b.sess.Username, sse.EventWeekUpdated, b.response())
	return resp, nil
}

// ========================================
// REOPEN
// ========================================

func (s *TimesheetServiceImpl) OpenReopen(ctx context.Context, date string) (timesheet.ReopenDraft, error) {
	if err := validDate(date); err != nil {
		return timesheet.ReopenDraft{}, err
	}
	b, err := s.board(ctx)
	if err != nil {
		return timesheet.ReopenDraft{}, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	day, ok := b.week.Day(date)
	if !ok {
		return timesheet.ReopenDraft{}, timesheet.ErrDayNotFound
	}
	if err := day.CheckReopen(); err != nil {
		return timesheet.ReopenDraft{}, err
	}
	b.reopen = &timesheet.ReopenDraft{Date: date}
	return *b.reopen, nil
}

func (s *TimesheetServiceImpl) SendReopen(ctx context.Context, req timesheet.SendReopenRequest) (timesheet.DayResponse, error) {
	if err := req.Validate(s.today()); err != nil {
		return timesheet.DayResponse{}, err
	}
	b, err := s.board(ctx)
	if err != nil {
		return timesheet.DayResponse{}, err
	}

	b.mu.Lock()
	date := req.Date
	if date == "" {
		if b.reopen == nil {
			b.mu.Unlock()
			return timesheet.DayResponse{}, timesheet.ErrNoReopenOpened
		}
		date = b.reopen.Date
	}
	day, ok := b.week.Day(date)
	if !ok {
		b.mu.Unlock()
		return timesheet.DayResponse{}, timesheet.ErrDayNotFound
	}
	if err := day.CheckReopen(); err != nil {
		b.mu.Unlock()
		return timesheet.DayResponse{}, err
	}
	if err := b.begin(date); err != nil {
		b.mu.Unlock()
		return timesheet.DayResponse{}, err
	}
	username := b.sess.Username
	b.mu.Unlock()

	err = s.reopens.RequestReopen(ctx, username, date, req.Reason)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.end(date)
	if err != nil {
		return timesheet.DayResponse{}, err
	}

	b.reopen = nil
	day, ok = b.week.Day(date)
	if !ok {
		return timesheet.DayResponse{Date: date, Status: timesheet.StatusReopenRequested, ReopenRequested: true}, nil
	}
	day.MarkReopenRequested()
	resp := timesheet.ToDayResponse(*day)
	s.publish(username, sse.EventWeekUpdated, b.response())
	return resp, nil
}

// ListReopenRequests returns every request for admins and the caller's own
// otherwise.
func (s *TimesheetServiceImpl) ListReopenRequests(ctx context.Context) ([]timesheet.ReopenRequest, error) {
	sess, err := session.MustFromContext(ctx)
	if err != nil {
		return nil, err
	}
	scope := timesheet.ScopeMine
	if sess.IsAdmin() {
		scope = timesheet.ScopeAll
	}
	return s.reopens.ListReopenRequests(ctx, scope, sess.Username)
}

func (s *TimesheetServiceImpl) ReviewReopen(ctx context.Context, req timesheet.ReviewReopenRequest) (timesheet.ReopenRequest, error) {
	if err := req.Validate(); err != nil {
		return timesheet.ReopenRequest{}, err
	}
	sess, err := session.MustFromContext(ctx)
	if err != nil {
		return timesheet.ReopenRequest{}, err
	}
	if !sess.IsAdmin() {
		return timesheet.ReopenRequest{}, session.ErrAdminRequired
	}

	all, err := s.reopens.ListReopenRequests(ctx, timesheet.ScopeAll, sess.Username)
	if err != nil {
		return timesheet.ReopenRequest{}, err
	}
	var target *timesheet.ReopenRequest
	for i := range all {
		if all[i].ID == req.ID {
			target = &all[i]
			break
		}
	}
	if target == nil {
		return timesheet.ReopenRequest{}, timesheet.ErrReopenRequestNotFound
	}
	if target.Reviewed() {
		return timesheet.ReopenRequest{}, timesheet.ErrReopenAlreadyReviewed
	}

	decision := timesheet.RequestStatus(req.Decision)
	if err := s.reopens.ReviewReopenRequest(ctx, req.ID, decision); err != nil {
		return timesheet.ReopenRequest{}, err
	}
	target.Status = decision

	s.applyDecision(*target, sess.Username)
	slog.Info("Reopen request reviewed", "id", target.ID, "owner", target.EmployeeUsername, "date", target.Date, "decision", decision, "reviewer", sess.Username)
	return *target, nil
}

// applyDecision updates every live board of the request owner that shows
// the reviewed date, then tells the owner and the reviewer.
func (s *TimesheetServiceImpl) applyDecision(r timesheet.ReopenRequest, reviewer string) {
	date := calendar.DateKey(r.Date)

	for _, b := range s.snapshotBoards() {
		b.mu.Lock()
		if b.sess.Username == r.EmployeeUsername {
			if day, ok := b.week.Day(date); ok {
				day.ApplyReopenDecision(r.Status)
				s.publish(b.sess.Username, sse.EventWeekUpdated, b.response())
			}
		}
		b.mu.Unlock()
	}
	if s.events == nil {
		return
	}
	recipients := []string{r.EmployeeUsername}
	if reviewer != r.EmployeeUsername {
		recipients = append(recipients, reviewer)
	}
	s.events.PublishToMany(recipients, sse.Event{Name: sse.EventReopenReviewed, Data: r})
}

// ========================================
// WEEKEND WORKING & HISTORY
// ========================================

func (s *TimesheetServiceImpl) ApplyWeekendWorking(ctx context.Context, req timesheet.WeekendWorkingRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.weekends.SubmitWeekend(ctx, req.Date, req.Reason)
}

// WeekendOptions lists the weekend dates of the previous, current and next
// week of the caller's grid.
func (s *TimesheetServiceImpl) WeekendOptions(ctx context.Context) ([]string, error) {
	b, err := s.board(ctx)
	if err != nil {
		return nil, err
	}
	b.mu.Lock()
	start := b.weekStart()
	b.mu.Unlock()
	return calendar.WeekendDatesAround(start), nil
}

func (s *TimesheetServiceImpl) History(ctx context.Context) (timesheet.History, error) {
	var h timesheet.History
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		h.Timesheets, err = s.sheets.ListMine(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		h.Weekend, err = s.weekends.ListMyWeekend(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return timesheet.History{}, err
	}
	return h, nil
}

func (s *TimesheetServiceImpl) Holidays() []calendar.Holiday {
	return s.holidays.List()
}

// ========================================
// BOARD REGISTRY
// ========================================

func (s *TimesheetServiceImpl) snapshotBoards() []*board {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*board, 0, len(s.boards))
	for _, b := range s.boards {
		out = append(out, b)
	}
	return out
}

// DropSession forgets the board of sessionID.
func (s *TimesheetServiceImpl) DropSession(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.boards, sessionID)
}

// ResyncAll re-merges server documents into every live board. A failing
// board does not stop the others.
func (s *TimesheetServiceImpl) ResyncAll(ctx context.Context) error {
	var errs []error
	for _, b := range s.snapshotBoards() {
		b.mu.Lock()
		sess, start := b.sess, b.week.Start
		b.mu.Unlock()

		docs, requests, err := s.fetch(session.WithSession(ctx, sess), sess.Username, start)
		if err != nil {
			errs = append(errs, fmt.Errorf("resync %s: %w", sess.Username, err))
			continue
		}

		b.mu.Lock()
		if b.week.Start == start {
			merged := timesheet.ApplyReopenRequests(timesheet.MergeFromServer(b.week, docs), requests)
			changed := !b.synced || !merged.Equal(b.week)
			b.week, b.synced = merged, true
			if changed {
				s.publish(sess.Username, sse.EventWeekUpdated, b.response())
			}
		}
		b.mu.Unlock()
	}
	return errors.Join(errs...)
}
