package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nexografix/timesheet-bff/internal/domain/timesheet"
	"github.com/nexografix/timesheet-bff/internal/handler/http/response"
)

type TimesheetHandler interface {
	// Week navigation
	GetWeek(w http.ResponseWriter, r *http.Request)
	ShiftWeek(w http.ResponseWriter, r *http.Request)
	CurrentWeek(w http.ResponseWriter, r *http.Request)

	// Day entry
	UpdateDay(w http.ResponseWriter, r *http.Request)
	SaveDraft(w http.ResponseWriter, r *http.Request)
	SaveAll(w http.ResponseWriter, r *http.Request)
	SubmitDay(w http.ResponseWriter, r *http.Request)

	// Reopen
	OpenReopen(w http.ResponseWriter, r *http.Request)
	SendReopen(w http.ResponseWriter, r *http.Request)
	ListReopenRequests(w http.ResponseWriter, r *http.Request)
	ReviewReopen(w http.ResponseWriter, r *http.Request)

	// Weekend working, history and holidays
	ApplyWeekendWorking(w http.ResponseWriter, r *http.Request)
	WeekendOptions(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	Holidays(w http.ResponseWriter, r *http.Request)
}

type timesheetHandlerImpl struct {
	timesheetService timesheet.TimesheetService
}

func NewTimesheetHandler(timesheetService timesheet.TimesheetService) TimesheetHandler {
	return &timesheetHandlerImpl{timesheetService: timesheetService}
}

// GetWeek implements TimesheetHandler. Without ?anchor= it returns the board as is.
func (h *timesheetHandlerImpl) GetWeek(w http.ResponseWriter, r *http.Request) {
	var (
		week timesheet.WeekResponse
		err  error
	)
	if anchor := r.URL.Query().Get("anchor"); anchor != "" {
		week, err = h.timesheetService.ShowWeek(r.Context(), timesheet.ShowWeekRequest{Anchor: anchor})
	} else {
		week, err = h.timesheetService.GetWeek(r.Context())
	}
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, week)
}

// ShiftWeek implements TimesheetHandler.
func (h *timesheetHandlerImpl) ShiftWeek(w http.ResponseWriter, r *http.Request) {
	var req timesheet.ShiftWeekRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	week, err := h.timesheetService.ShiftWeek(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, week)
}

// CurrentWeek implements TimesheetHandler.
func (h *timesheetHandlerImpl) CurrentWeek(w http.ResponseWriter, r *http.Request) {
	week, err := h.timesheetService.CurrentWeek(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, week)
}

// UpdateDay implements TimesheetHandler.
func (h *timesheetHandlerImpl) UpdateDay(w http.ResponseWriter, r *http.Request) {
	var req timesheet.UpdateDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.Date = chi.URLParam(r, "date")

	day, err := h.timesheetService.UpdateDay(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, day)
}

// SaveDraft implements TimesheetHandler.
func (h *timesheetHandlerImpl) SaveDraft(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	day, err := h.timesheetService.SaveDraft(r.Context(), date)
	if err != nil {
		slog.Error("SaveDraft failed", "date", date, "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Draft saved", day)
}

// SaveAll implements TimesheetHandler.
func (h *timesheetHandlerImpl) SaveAll(w http.ResponseWriter, r *http.Request) {
	result, err := h.timesheetService.SaveAll(r.Context())
	if err != nil {
		slog.Error("SaveAll failed", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Week saved", result)
}

// SubmitDay implements TimesheetHandler.
func (h *timesheetHandlerImpl) SubmitDay(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	day, err := h.timesheetService.SubmitDay(r.Context(), date)
	if err != nil {
		slog.Error("SubmitDay failed", "date", date, "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Timesheet submitted", day)
}

// OpenReopen implements TimesheetHandler.
func (h *timesheetHandlerImpl) OpenReopen(w http.ResponseWriter, r *http.Request) {
	draft, err := h.timesheetService.OpenReopen(r.Context(), chi.URLParam(r, "date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, draft)
}

// SendReopen implements TimesheetHandler.
func (h *timesheetHandlerImpl) SendReopen(w http.ResponseWriter, r *http.Request) {
	var req timesheet.SendReopenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	day, err := h.timesheetService.SendReopen(r.Context(), req)
	if err != nil {
		slog.Error("SendReopen failed", "date", req.Date, "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Reopen request sent", day)
}

// ListReopenRequests implements TimesheetHandler.
func (h *timesheetHandlerImpl) ListReopenRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.timesheetService.ListReopenRequests(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, requests)
}

// ReviewReopen implements TimesheetHandler.
func (h *timesheetHandlerImpl) ReviewReopen(w http.ResponseWriter, r *http.Request) {
	var req timesheet.ReviewReopenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	reviewed, err := h.timesheetService.ReviewReopen(r.Context(), req)
	if err != nil {
		slog.Error("ReviewReopen failed", "id", req.ID, "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Reopen request reviewed", "id", reviewed.ID, "status", reviewed.Status)
	response.SuccessWithMessage(w, "Reopen request reviewed", reviewed)
}

// ApplyWeekendWorking implements TimesheetHandler.
func (h *timesheetHandlerImpl) ApplyWeekendWorking(w http.ResponseWriter, r *http.Request) {
	var req timesheet.WeekendWorkingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.timesheetService.ApplyWeekendWorking(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Weekend working request sent", nil)
}

// WeekendOptions implements TimesheetHandler.
func (h *timesheetHandlerImpl) WeekendOptions(w http.ResponseWriter, r *http.Request) {
	dates, err := h.timesheetService.WeekendOptions(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, dates)
}

// History implements TimesheetHandler.
func (h *timesheetHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	history, err := h.timesheetService.History(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, history)
}

// Holidays implements TimesheetHandler.
func (h *timesheetHandlerImpl) Holidays(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.timesheetService.Holidays())
}
