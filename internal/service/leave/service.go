package leave

import (
	"context"
	"log/slog"
	"slices"

	"github.com/nexografix/timesheet-bff/internal/domain/leave"
	"github.com/nexografix/timesheet-bff/internal/domain/session"
	"github.com/nexografix/timesheet-bff/internal/pkg/sse"
)

type LeaveServiceImpl struct {
	gw     leave.LeaveGateway
	events sse.Publisher
}

// NewLeaveService builds the service; events may be nil.
func NewLeaveService(gw leave.LeaveGateway, events sse.Publisher) *LeaveServiceImpl {
	return &LeaveServiceImpl{gw: gw, events: events}
}

var _ leave.LeaveService = (*LeaveServiceImpl)(nil)

func (s *LeaveServiceImpl) Types() []leave.LeaveTypeOption {
	return slices.Clone(leave.LeaveTypes)
}

// ========================================
// REQUEST
// ========================================

func (s *LeaveServiceImpl) Apply(ctx context.Context, req leave.ApplyLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	sess, err := session.MustFromContext(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	created, err := s.gw.Apply(ctx, req)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if created == nil {
		created = &leave.LeaveRequest{
			LeaveType:     req.LeaveType,
			FromDate:      req.FromDate,
			ToDate:        req.ToDate,
			Reason:        req.Reason,
			AttachmentURL: req.AttachmentURL,
			Status:        leave.LeaveRequestStatusPending,
		}
	}
	if created.EmployeeUsername == "" {
		created.EmployeeUsername = sess.Username
	}

	slog.Info("Leave request filed", "username", sess.Username, "type", req.LeaveType, "from", req.FromDate, "to", req.ToDate)
	return leave.ToLeaveRequestResponse(*created), nil
}

func (s *LeaveServiceImpl) ListMine(ctx context.Context) ([]leave.LeaveRequestResponse, error) {
	if _, err := session.MustFromContext(ctx); err != nil {
		return nil, err
	}
	requests, err := s.gw.ListMine(ctx)
	if err != nil {
		return nil, err
	}
	return toResponses(requests), nil
}

// ========================================
// APPROVAL
// ========================================

// ListApprovals lists the requests addressed to the caller as manager.
func (s *LeaveServiceImpl) ListApprovals(ctx context.Context) ([]leave.LeaveRequestResponse, error) {
	requests, err := s.approvals(ctx)
	if err != nil {
		return nil, err
	}
	return toResponses(requests), nil
}

func (s *LeaveServiceImpl) Review(ctx context.Context, req leave.ReviewLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	sess, err := session.MustFromContext(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	targets, err := s.pendingTargets(ctx, []string{req.ID})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if err := s.gw.Review(ctx, req.ID, req.Decision); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	target := targets[0]
	target.Status = req.Decision
	s.notify(sess.Username, targets, req.Decision)
	slog.Info("Leave request reviewed", "id", target.ID, "owner", target.EmployeeUsername, "decision", req.Decision, "reviewer", sess.Username)
	return leave.ToLeaveRequestResponse(target), nil
}

// BulkReview decides every id in one upstream call. Nothing is sent unless
// all ids are pending in the caller's approvals.
func (s *LeaveServiceImpl) BulkReview(ctx context.Context, req leave.BulkReviewLeaveRequest) (leave.BulkReviewResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.BulkReviewResponse{}, err
	}
	sess, err := session.MustFromContext(ctx)
	if err != nil {
		return leave.BulkReviewResponse{}, err
	}

	targets, err := s.pendingTargets(ctx, req.IDs)
	if err != nil {
		return leave.BulkReviewResponse{}, err
	}
	if err := s.gw.BulkReview(ctx, req.IDs, req.Decision); err != nil {
		return leave.BulkReviewResponse{}, err
	}

	s.notify(sess.Username, targets, req.Decision)
	slog.Info("Leave requests reviewed", "count", len(req.IDs), "decision", req.Decision, "reviewer", sess.Username)
	return leave.BulkReviewResponse{Status: req.Decision, Reviewed: slices.Clone(req.IDs)}, nil
}

func (s *LeaveServiceImpl) approvals(ctx context.Context) ([]leave.LeaveRequest, error) {
	sess, err := session.MustFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.gw.ListApprovals(ctx, sess.Username)
}

// pendingTargets resolves ids against the caller's approvals, in order.
func (s *LeaveServiceImpl) pendingTargets(ctx context.Context, ids []string) ([]leave.LeaveRequest, error) {
	all, err := s.approvals(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]leave.LeaveRequest, len(all))
	for _, r := range all {
		byID[r.ID] = r
	}

	out := make([]leave.LeaveRequest, 0, len(ids))
	for _, id := range ids {
		r, ok := byID[id]
		if !ok {
			return nil, leave.ErrLeaveRequestNotFound
		}
		if r.Processed() {
			return nil, leave.ErrLeaveRequestAlreadyProcessed
		}
		out = append(out, r)
	}
	return out, nil
}

// notify tells each owner once about the decision on their requests.
func (s *LeaveServiceImpl) notify(reviewer string, targets []leave.LeaveRequest, decision leave.LeaveRequestStatus) {
	if s.events == nil {
		return
	}
	byOwner := make(map[string][]string)
	var owners []string
	for _, r := range targets {
		if r.EmployeeUsername == "" || r.EmployeeUsername == reviewer {
			continue
		}
		if _, ok := byOwner[r.EmployeeUsername]; !ok {
			owners = append(owners, r.EmployeeUsername)
		}
		byOwner[r.EmployeeUsername] = append(byOwner[r.EmployeeUsername], r.ID)
	}
	for _, owner := range owners {
		s.events.Publish(owner, sse.Event{
			Name: sse.EventLeaveReviewed,
			Data: leave.BulkReviewResponse{Status: decision, Reviewed: byOwner[owner]},
		})
	}
}

func toResponses(requests []leave.LeaveRequest) []leave.LeaveRequestResponse {
	out := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, leave.ToLeaveRequestResponse(r))
	}
	return out
}
