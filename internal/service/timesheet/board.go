package timesheet

import (
	"sync"
	"time"

	"github.com/nexografix/timesheet-bff/internal/domain/calendar"
	"github.com/nexografix/timesheet-bff/internal/domain/session"
	"github.com/nexografix/timesheet-bff/internal/domain/timesheet"
)

// board is one session's week grid. mu is held only while reading or
// applying state, never across an upstream call.
type board struct {
	mu       sync.Mutex
	sess     session.Session
	week     timesheet.Week
	synced   bool
	inFlight map[string]struct{}
	reopen   *timesheet.ReopenDraft
}

func newBoard(sess session.Session, week timesheet.Week) *board {
	return &board{
		sess:     sess,
		week:     week,
		inFlight: make(map[string]struct{}),
	}
}

// begin claims the per-day operation slot for date.
func (b *board) begin(date string) error {
	if _, busy := b.inFlight[date]; busy {
		return timesheet.ErrOperationInProgress
	}
	b.inFlight[date] = struct{}{}
	return nil
}

func (b *board) end(date string) {
	delete(b.inFlight, date)
}

func (b *board) weekStart() time.Time {
	t, err := calendar.ParseDate(b.week.Start)
	if err != nil {
		return time.Time{}
	}
	return t
}

func (b *board) response() timesheet.WeekResponse {
	return timesheet.ToWeekResponse(b.week, b.synced)
}
