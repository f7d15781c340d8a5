package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nexografix/timesheet-bff/internal/domain/leave"
	"github.com/nexografix/timesheet-bff/internal/handler/http/response"
)

type LeaveHandler interface {
	Types(w http.ResponseWriter, r *http.Request)

	// Request
	Apply(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)

	// Approval
	ListApprovals(w http.ResponseWriter, r *http.Request)
	Review(w http.ResponseWriter, r *http.Request)
	BulkReview(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &leaveHandlerImpl{leaveService: leaveService}
}

// Types implements LeaveHandler.
func (h *leaveHandlerImpl) Types(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.leaveService.Types())
}

// Apply implements LeaveHandler.
func (h *leaveHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	var req leave.ApplyLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.leaveService.Apply(r.Context(), req)
	if err != nil {
		slog.Error("Apply leave failed", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Leave request created successfully", created)
}

// ListMine implements LeaveHandler.
func (h *leaveHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	requests, err := h.leaveService.ListMine(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, requests)
}

// ListApprovals implements LeaveHandler.
func (h *leaveHandlerImpl) ListApprovals(w http.ResponseWriter, r *http.Request) {
	requests, err := h.leaveService.ListApprovals(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, requests)
}

// Review implements LeaveHandler.
func (h *leaveHandlerImpl) Review(w http.ResponseWriter, r *http.Request) {
	var req leave.ReviewLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	reviewed, err := h.leaveService.Review(r.Context(), req)
	if err != nil {
		slog.Error("Review leave failed", "id", req.ID, "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave request "+string(reviewed.Status)+" successfully", reviewed)
}

// BulkReview implements LeaveHandler.
func (h *leaveHandlerImpl) BulkReview(w http.ResponseWriter, r *http.Request) {
	var req leave.BulkReviewLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.leaveService.BulkReview(r.Context(), req)
	if err != nil {
		slog.Error("Bulk review leave failed", "count", len(req.IDs), "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave requests "+string(result.Status)+" successfully", result)
}
