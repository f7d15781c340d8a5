package leave

import (
	"context"
	"errors"
	"testing"

	"github.com/nexografix/timesheet-bff/internal/domain/leave"
	"github.com/nexografix/timesheet-bff/internal/domain/session"
	"github.com/nexografix/timesheet-bff/internal/pkg/sse"
	"github.com/nexografix/timesheet-bff/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	echo      *leave.LeaveRequest
	applied   []leave.ApplyLeaveRequest
	mine      []leave.LeaveRequest
	approvals []leave.LeaveRequest
	managerOf []string
	reviewed  []string
	bulk      [][]string
	reviewErr error
}

func (f *fakeGateway) Apply(_ context.Context, req leave.ApplyLeaveRequest) (*leave.LeaveRequest, error) {
	f.applied = append(f.applied, req)
	return f.echo, nil
}

func (f *fakeGateway) ListMine(context.Context) ([]leave.LeaveRequest, error) {
	return f.mine, nil
}

func (f *fakeGateway) ListApprovals(_ context.Context, manager string) ([]leave.LeaveRequest, error) {
	f.managerOf = append(f.managerOf, manager)
	return f.approvals, nil
}

func (f *fakeGateway) Review(_ context.Context, id string, decision leave.LeaveRequestStatus) error {
	f.reviewed = append(f.reviewed, string(decision)+" "+id)
	return f.reviewErr
}

func (f *fakeGateway) BulkReview(_ context.Context, ids []string, _ leave.LeaveRequestStatus) error {
	f.bulk = append(f.bulk, ids)
	return f.reviewErr
}

type published struct {
	username string
	event    sse.Event
}

type recorder struct {
	events []published
}

func (r *recorder) Publish(username string, e sse.Event) {
	r.events = append(r.events, published{username: username, event: e})
}

func (r *recorder) PublishToMany(usernames []string, e sse.Event) {
	for _, u := range usernames {
		r.Publish(u, e)
	}
}

func employeeCtx() context.Context {
	return session.WithSession(context.Background(), session.Session{ID: "s-asha", Username: "asha", Role: session.RoleEmployee, Manager: "ravi"})
}

func managerCtx() context.Context {
	return session.WithSession(context.Background(), session.Session{ID: "s-ravi", Username: "ravi", Role: session.RoleAdmin})
}

func pending(id, owner string) leave.LeaveRequest {
	return leave.LeaveRequest{ID: id, EmployeeUsername: owner, LeaveType: leave.LeaveTypeCasual,
		FromDate: "2025-02-03", ToDate: "2025-02-04", Reason: "family", Status: leave.LeaveRequestStatusPending}
}

func TestApply_BuildsPendingRequestWithoutEcho(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewLeaveService(gw, nil)

	resp, err := svc.Apply(employeeCtx(), leave.ApplyLeaveRequest{
		LeaveType: leave.LeaveTypeSick, FromDate: "2025-02-03", ToDate: "2025-02-05", Reason: "flu",
	})
	require.NoError(t, err)
	require.Len(t, gw.applied, 1)
	assert.Equal(t, "asha", resp.EmployeeUsername)
	assert.Equal(t, leave.LeaveRequestStatusPending, resp.Status)
	assert.Equal(t, "Sick Leave", resp.LeaveTypeLabel)
	assert.Equal(t, 3, resp.Days)
}

func TestApply_UsesEcho(t *testing.T) {
	days := 2
	echo := pending("l-9", "asha")
	echo.LeaveDays = &days
	svc := NewLeaveService(&fakeGateway{echo: &echo}, nil)

	resp, err := svc.Apply(employeeCtx(), leave.ApplyLeaveRequest{
		LeaveType: leave.LeaveTypeCasual, FromDate: "2025-02-03", ToDate: "2025-02-04", Reason: "family",
	})
	require.NoError(t, err)
	assert.Equal(t, "l-9", resp.ID)
	assert.Equal(t, 2, resp.Days)
}

func TestApply_RejectsInvertedRangeBeforeUpstream(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewLeaveService(gw, nil)

	_, err := svc.Apply(employeeCtx(), leave.ApplyLeaveRequest{
		LeaveType: leave.LeaveTypeCasual, FromDate: "2025-02-05", ToDate: "2025-02-03", Reason: "x",
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "to_date")
	assert.Empty(t, gw.applied)
}

func TestApply_RequiresSession(t *testing.T) {
	svc := NewLeaveService(&fakeGateway{}, nil)
	_, err := svc.Apply(context.Background(), leave.ApplyLeaveRequest{
		LeaveType: leave.LeaveTypeCasual, FromDate: "2025-02-03", ToDate: "2025-02-03", Reason: "x",
	})
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestListApprovals_ScopedToCaller(t *testing.T) {
	gw := &fakeGateway{approvals: []leave.LeaveRequest{pending("l-1", "asha")}}
	svc := NewLeaveService(gw, nil)

	list, err := svc.ListApprovals(managerCtx())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []string{"ravi"}, gw.managerOf)
	assert.Equal(t, "Casual Leave", list[0].LeaveTypeLabel)
}

func TestReview(t *testing.T) {
	done := pending("l-2", "meera")
	done.Status = leave.LeaveRequestStatusApproved
	gw := &fakeGateway{approvals: []leave.LeaveRequest{pending("l-1", "asha"), done}}
	events := &recorder{}
	svc := NewLeaveService(gw, events)

	resp, err := svc.Review(managerCtx(), leave.ReviewLeaveRequest{ID: "l-1", Decision: leave.LeaveRequestStatusApproved})
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusApproved, resp.Status)
	assert.Equal(t, []string{"approved l-1"}, gw.reviewed)
	require.Len(t, events.events, 1)
	assert.Equal(t, "asha", events.events[0].username)
	assert.Equal(t, sse.EventLeaveReviewed, events.events[0].event.Name)

	_, err = svc.Review(managerCtx(), leave.ReviewLeaveRequest{ID: "l-2", Decision: leave.LeaveRequestStatusRejected})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)

	_, err = svc.Review(managerCtx(), leave.ReviewLeaveRequest{ID: "nope", Decision: leave.LeaveRequestStatusRejected})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)

	_, err = svc.Review(managerCtx(), leave.ReviewLeaveRequest{ID: "l-1", Decision: "maybe"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, gw.reviewed, 1)
}

func TestReview_UpstreamFailureSendsNoEvent(t *testing.T) {
	gw := &fakeGateway{approvals: []leave.LeaveRequest{pending("l-1", "asha")}, reviewErr: errors.New("boom")}
	events := &recorder{}
	svc := NewLeaveService(gw, events)

	_, err := svc.Review(managerCtx(), leave.ReviewLeaveRequest{ID: "l-1", Decision: leave.LeaveRequestStatusRejected})
	require.Error(t, err)
	assert.Empty(t, events.events)
}

func TestBulkReview(t *testing.T) {
	gw := &fakeGateway{approvals: []leave.LeaveRequest{
		pending("l-1", "asha"), pending("l-2", "asha"), pending("l-3", "meera"),
	}}
	events := &recorder{}
	svc := NewLeaveService(gw, events)

	resp, err := svc.BulkReview(managerCtx(), leave.BulkReviewLeaveRequest{
		IDs: []string{"l-1", "l-3", "l-2"}, Decision: leave.LeaveRequestStatusRejected,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"l-1", "l-3", "l-2"}, resp.Reviewed)
	assert.Equal(t, [][]string{{"l-1", "l-3", "l-2"}}, gw.bulk)

	require.Len(t, events.events, 2)
	assert.Equal(t, "asha", events.events[0].username)
	assert.Equal(t, leave.BulkReviewResponse{Status: leave.LeaveRequestStatusRejected, Reviewed: []string{"l-1", "l-2"}}, events.events[0].event.Data)
	assert.Equal(t, "meera", events.events[1].username)
}

func TestBulkReview_AllOrNothing(t *testing.T) {
	gw := &fakeGateway{approvals: []leave.LeaveRequest{pending("l-1", "asha")}}
	svc := NewLeaveService(gw, nil)

	_, err := svc.BulkReview(managerCtx(), leave.BulkReviewLeaveRequest{
		IDs: []string{"l-1", "ghost"}, Decision: leave.LeaveRequestStatusApproved,
	})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
	assert.Empty(t, gw.bulk)

	_, err = svc.BulkReview(managerCtx(), leave.BulkReviewLeaveRequest{
		IDs: []string{"l-1", "l-1"}, Decision: leave.LeaveRequestStatusApproved,
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Empty(t, gw.bulk)
}

func TestTypes_ReturnsCopy(t *testing.T) {
	svc := NewLeaveService(&fakeGateway{}, nil)
	types := svc.Types()
	require.Len(t, types, len(leave.LeaveTypes))
	types[0].Label = "changed"
	assert.Equal(t, "Casual Leave", leave.LeaveTypes[0].Label)
}
