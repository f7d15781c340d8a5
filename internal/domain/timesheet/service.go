package timesheet

import (
	"context"

	"github.com/nexografix/timesheet-bff/internal/domain/calendar"
)

// TimesheetService drives the current session's week board.
type TimesheetService interface {
	// Week navigation
	GetWeek(ctx context.Context) (WeekResponse, error)
	ShowWeek(ctx context.Context, req ShowWeekRequest) (WeekResponse, error)
	ShiftWeek(ctx context.Context, req ShiftWeekRequest) (WeekResponse, error)
	CurrentWeek(ctx context.Context) (WeekResponse, error)
	Snapshot(ctx context.Context) (Week, error)

	// Day entry
	UpdateDay(ctx context.Context, req UpdateDayRequest) (DayResponse, error)
	SaveDraft(ctx context.Context, date string) (DayResponse, error)
	SaveAll(ctx context.Context) (SaveAllResponse, error)
	SubmitDay(ctx context.Context, date string) (DayResponse, error)

	// Reopen
	OpenReopen(ctx context.Context, date string) (ReopenDraft, error)
	SendReopen(ctx context.Context, req SendReopenRequest) (DayResponse, error)
	ListReopenRequests(ctx context.Context) ([]ReopenRequest, error)
	ReviewReopen(ctx context.Context, req ReviewReopenRequest) (ReopenRequest, error)

	// Weekend working and history
	ApplyWeekendWorking(ctx context.Context, req WeekendWorkingRequest) error
	WeekendOptions(ctx context.Context) ([]string, error)
	History(ctx context.Context) (History, error)

	Holidays() []calendar.Holiday
}
