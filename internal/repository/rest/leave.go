package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/nexografix/timesheet-bff/internal/domain/calendar"
	"github.com/nexografix/timesheet-bff/internal/domain/leave"
)

type leaveWire struct {
	MongoID       string     `json:"_id"`
	ID            string     `json:"id"`
	EmployeeID    userRef    `json:"employeeId"`
	LeaveType     string     `json:"leaveType"`
	FromDate      string     `json:"fromDate"`
	ToDate        string     `json:"toDate"`
	LeaveDays     flexInt    `json:"leaveDays"`
	Reason        string     `json:"reason"`
	AttachmentURL flexString `json:"attachmentUrl"`
	Comment       flexString `json:"comment"`
	Status        string     `json:"status"`
	CreatedAt     flexTime   `json:"createdAt"`
}

func (w leaveWire) toRequest() leave.LeaveRequest {
	id := w.ID
	if id == "" {
		id = w.MongoID
	}
	var owner string
	if w.EmployeeID.Username != nil {
		owner = *w.EmployeeID.Username
	}
	return leave.LeaveRequest{
		ID:               id,
		EmployeeUsername: owner,
		LeaveType:        leave.LeaveType(w.LeaveType),
		FromDate:         calendar.DateKey(w.FromDate),
		ToDate:           calendar.DateKey(w.ToDate),
		LeaveDays:        w.LeaveDays.Value,
		Reason:           w.Reason,
		AttachmentURL:    w.AttachmentURL.Value,
		Comment:          w.Comment.Value,
		Status:           leave.NormalizeStatus(w.Status),
		CreatedAt:        w.CreatedAt.Value,
	}
}

// leaveEnvelope is {"leave": {...}} as returned by apply.
type leaveEnvelope struct {
	Leave *leaveWire `json:"leave"`
}

type leaveGateway struct {
	c *Client
}

func NewLeaveGateway(c *Client) leave.LeaveGateway {
	return &leaveGateway{c: c}
}

func (g *leaveGateway) Apply(ctx context.Context, req leave.ApplyLeaveRequest) (*leave.LeaveRequest, error) {
	body := map[string]any{
		"leaveType":     req.LeaveType,
		"reason":        req.Reason,
		"fromDate":      req.FromDate,
		"toDate":        req.ToDate,
		"attachmentUrl": req.AttachmentURL,
	}

	var out leaveEnvelope
	if err := g.c.do(ctx, http.MethodPost, "/leaves/request", nil, body, &out); err != nil {
		return nil, err
	}
	if out.Leave == nil {
		return nil, nil
	}
	r := out.Leave.toRequest()
	return &r, nil
}

func (g *leaveGateway) ListMine(ctx context.Context) ([]leave.LeaveRequest, error) {
	return g.list(ctx, "/leaves/history")
}

func (g *leaveGateway) ListApprovals(ctx context.Context, manager string) ([]leave.LeaveRequest, error) {
	return g.list(ctx, "/leaves/manager/"+url.PathEscape(manager)+"/approvals")
}

func (g *leaveGateway) list(ctx context.Context, path string) ([]leave.LeaveRequest, error) {
	var raw json.RawMessage
	if err := g.c.do(ctx, http.MethodGet, path, nil, nil, &raw); err != nil {
		return nil, err
	}
	// The approvals listing reuses the "timesheets" key upstream.
	wires, err := decodeList[leaveWire](raw, "leaves", "timesheets", "data")
	if err != nil {
		return nil, badResponse("GET "+path, err.Error())
	}
	out := make([]leave.LeaveRequest, 0, len(wires))
	for _, w := range wires {
		out = append(out, w.toRequest())
	}
	return out, nil
}

func (g *leaveGateway) Review(ctx context.Context, id string, decision leave.LeaveRequestStatus) error {
	return g.c.do(ctx, http.MethodPut, "/leaves/"+decisionVerb(decision)+"/"+url.PathEscape(id), nil, struct{}{}, nil)
}

func (g *leaveGateway) BulkReview(ctx context.Context, ids []string, decision leave.LeaveRequestStatus) error {
	body := map[string][]string{"ids": ids}
	return g.c.do(ctx, http.MethodPut, "/leaves/bulk-"+decisionVerb(decision), nil, body, nil)
}

func decisionVerb(d leave.LeaveRequestStatus) string {
	if d == leave.LeaveRequestStatusApproved {
		return "approve"
	}
	return "reject"
}
