package timesheet

import (
	"testing"
	"time"

	"github.com/nexografix/timesheet-bff/internal/domain/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func testWeek(t *testing.T) Week {
	holidays := calendar.NewHolidayTable(calendar.DefaultHolidays)
	return NewWeek(mustDate(t, "2025-01-22"), holidays, mustDate(t, "2025-01-22"), "—")
}

func TestMergeFromServer_OverwritesMatchedDays(t *testing.T) {
	w := testWeek(t)
	docs := []Document{
		{ID: "a", Date: "2025-01-20T00:00:00.000Z", Status: StatusSubmitted,
			Tasks: []Task{{Type: "work", Login: strPtr("09:00"), Logout: strPtr("18:30"), Hours: strPtr("9h 30m")}}},
		{ID: "b", Date: "2025-01-21", Status: StatusApproved},
	}

	merged := MergeFromServer(w, docs)

	mon := merged.Days[1]
	require.NotNil(t, mon.TimesheetID)
	assert.Equal(t, "a", *mon.TimesheetID)
	assert.Equal(t, StatusSubmitted, mon.Status)
	assert.Equal(t, "9h 30m", mon.Hours())

	tue := merged.Days[2]
	assert.Equal(t, StatusApproved, tue.Status)
	assert.Nil(t, tue.Login)

	assert.Equal(t, w.Days[0], merged.Days[0])
	assert.Equal(t, w.Days[3], merged.Days[3])
}

func TestMergeFromServer_RetainsLocalValuesWithoutTasks(t *testing.T) {
	w := testWeek(t)
	today, ok := w.Day("2025-01-22")
	require.True(t, ok)
	require.NoError(t, today.Edit(mustClock(t, "08:00"), mustClock(t, "16:00")))

	merged := MergeFromServer(w, []Document{
		{ID: "c", Date: "2025-01-22", Status: StatusDraft, Tasks: []Task{{Login: strPtr("not a time")}}},
	})

	day := merged.Days[3]
	assert.Equal(t, StatusDraft, day.Status)
	assert.Equal(t, "08:00", day.Login.String())
	assert.Equal(t, "16:00", day.Logout.String())
}

func TestMergeFromServer_Idempotent(t *testing.T) {
	w := testWeek(t)
	docs := []Document{
		{ID: "a", Date: "2025-01-19", Status: StatusRejected, Tasks: []Task{{Login: strPtr("10:00"), Logout: strPtr("12:00")}}},
		{ID: "b", Date: "2025-01-23", Status: StatusDraft, Tasks: []Task{{Login: strPtr("09:00")}}},
		{Date: "garbage"},
		{ID: "z", Date: "2025-01-19", Status: StatusApproved},
	}

	once := MergeFromServer(w, docs)
	twice := MergeFromServer(once, docs)
	assert.Equal(t, once, twice)
	assert.Equal(t, StatusRejected, once.Days[0].Status)
}

func TestMergeFromServer_SkipsHolidays(t *testing.T) {
	holidays := calendar.NewHolidayTable(calendar.DefaultHolidays)
	w := NewWeek(mustDate(t, "2025-01-26"), holidays, mustDate(t, "2025-01-27"), "")
	merged := MergeFromServer(w, []Document{{ID: "h", Date: "2025-01-26", Status: StatusSubmitted}})
	assert.Equal(t, StatusHoliday, merged.Days[0].Status)
	assert.Nil(t, merged.Days[0].TimesheetID)
}

func TestMergeFromServer_EmptyDocs(t *testing.T) {
	w := testWeek(t)
	assert.Equal(t, w, MergeFromServer(w, nil))
}

func TestApplyReopenRequests(t *testing.T) {
	w := testWeek(t)
	w = ApplyReopenRequests(w, []ReopenRequest{
		{ID: "1", Date: "2025-01-20T00:00:00Z", Status: RequestApproved},
		{ID: "2", Date: "2025-01-21", Status: RequestPending},
		{ID: "3", Date: "2025-01-19", Status: RequestRejected},
		{ID: "4", Date: "2024-12-31", Status: RequestApproved},
	})

	assert.True(t, w.Days[1].Reopened)
	assert.Equal(t, StatusDraft, w.Days[1].Status)
	assert.True(t, w.Days[1].CanEdit())
	assert.True(t, w.Days[2].ReopenRequested)
	assert.Equal(t, StatusReopenRequested, w.Days[2].DisplayStatus())
	assert.False(t, w.Days[0].Reopened)
	assert.False(t, w.Days[0].ReopenRequested)

	again := ApplyReopenRequests(w, []ReopenRequest{{ID: "1", Date: "2025-01-20", Status: RequestApproved}})
	assert.Equal(t, w, again)
}

func TestApplyReopenRequests_UnlocksSubmittedDayAfterMerge(t *testing.T) {
	docs := []Document{
		{ID: "a", Date: "2025-01-20", Status: StatusSubmitted, Tasks: []Task{{Login: strPtr("09:00"), Logout: strPtr("17:00")}}},
		{ID: "b", Date: "2025-01-21", Status: StatusApproved},
	}
	requests := []ReopenRequest{
		{ID: "1", Date: "2025-01-20", Status: RequestApproved},
		{ID: "2", Date: "2025-01-21", Status: RequestApproved},
	}

	w := ApplyReopenRequests(MergeFromServer(testWeek(t), docs), requests)
	mon := w.Days[1]
	assert.Equal(t, StatusDraft, mon.Status)
	assert.True(t, mon.Reopened)
	assert.True(t, mon.CanEdit())
	assert.True(t, mon.CanSubmit())
	assert.Equal(t, StatusApproved, w.Days[2].Status)

	again := ApplyReopenRequests(MergeFromServer(w, docs), requests)
	assert.True(t, w.Equal(again))
}

func TestApplyReopenRequests_KeepsResubmittedDay(t *testing.T) {
	raised := time.Date(2025, 1, 21, 10, 0, 0, 0, time.UTC)
	resubmitted := raised.Add(2 * time.Hour)
	docs := []Document{{ID: "a", Date: "2025-01-20", Status: StatusSubmitted, SubmittedAt: &resubmitted}}

	w := ApplyReopenRequests(MergeFromServer(testWeek(t), docs), []ReopenRequest{
		{ID: "1", Date: "2025-01-20", Status: RequestApproved, CreatedAt: &raised},
	})

	assert.Equal(t, StatusSubmitted, w.Days[1].Status)
	assert.True(t, w.Days[1].Reopened)
	assert.False(t, w.Days[1].CanEdit())
}

func TestWeekEqual(t *testing.T) {
	a, b := testWeek(t), testWeek(t)
	assert.True(t, a.Equal(b))

	a.Days[1].Login, b.Days[1].Login = mustClock(t, "09:00"), mustClock(t, "09:00")
	assert.True(t, a.Equal(b))

	b.Days[1].Login = mustClock(t, "09:05")
	assert.False(t, a.Equal(b))

	b = a
	id := "x"
	b.Days[2].TimesheetID = &id
	assert.False(t, a.Equal(b))

	b = a
	b.Days[3].ReopenRequested = true
	assert.False(t, a.Equal(b))
}
