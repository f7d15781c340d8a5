package leave

import (
	"context"
)

type LeaveService interface {
	Types() []LeaveTypeOption
	// Request
	Apply(ctx context.Context, req ApplyLeaveRequest) (LeaveRequestResponse, error)
	ListMine(ctx context.Context) ([]LeaveRequestResponse, error)
	// Approval
	ListApprovals(ctx context.Context) ([]LeaveRequestResponse, error)
	Review(ctx context.Context, req ReviewLeaveRequest) (LeaveRequestResponse, error)
	BulkReview(ctx context.Context, req BulkReviewLeaveRequest) (BulkReviewResponse, error)
}
