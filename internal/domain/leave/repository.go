package leave

import (
	"context"
)

// LeaveGateway is the upstream leave collaborator. Calls act as the session
// carried by ctx.
type LeaveGateway interface {
	// Apply files a request; the returned request is nil when the upstream
	// does not echo it.
	Apply(ctx context.Context, req ApplyLeaveRequest) (*LeaveRequest, error)
	ListMine(ctx context.Context) ([]LeaveRequest, error)
	// ListApprovals returns the requests waiting on manager.
	ListApprovals(ctx context.Context, manager string) ([]LeaveRequest, error)
	Review(ctx context.Context, id string, decision LeaveRequestStatus) error
	BulkReview(ctx context.Context, ids []string, decision LeaveRequestStatus) error
}
