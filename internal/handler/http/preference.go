package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nexografix/timesheet-bff/internal/domain/preference"
	"github.com/nexografix/timesheet-bff/internal/handler/http/response"
)

type PreferenceHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Set(w http.ResponseWriter, r *http.Request)
}

type preferenceHandlerImpl struct {
	preferenceService preference.PreferenceService
}

func NewPreferenceHandler(preferenceService preference.PreferenceService) PreferenceHandler {
	return &preferenceHandlerImpl{preferenceService: preferenceService}
}

// List implements PreferenceHandler.
func (h *preferenceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	prefs, err := h.preferenceService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, prefs)
}

// Get implements PreferenceHandler.
func (h *preferenceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	pref, err := h.preferenceService.Get(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, pref)
}

// Set implements PreferenceHandler.
func (h *preferenceHandlerImpl) Set(w http.ResponseWriter, r *http.Request) {
	var req preference.SetPreferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.Key = chi.URLParam(r, "key")

	pref, err := h.preferenceService.Set(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, pref)
}
