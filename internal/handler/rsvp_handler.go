// internal/handler/rsvp_handler.go
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	appErrors "github.com/openchurch/campaign-service/internal/errors"
	"github.com/openchurch/campaign-service/internal/model"
	"github.com/openchurch/campaign-service/internal/service"
)

// RSVPHandler serves the public RSVP submit endpoint and the internal
// dashboard reads (response list, aggregated stats).
type RSVPHandler struct {
	RSVPService  *service.RSVPService
	StatsService *service.StatsService
}

// SubmitRSVP is unauthenticated: recipients follow a link from the message
// and have no account.
func (h *RSVPHandler) SubmitRSVP(w http.ResponseWriter, r *http.Request) {
	campaignID, err := strconv.Atoi(chi.URLParam(r, "campaignID"))
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	var body struct {
		Contact  model.Contact `json:"contact"`
		Response string        `json:"response"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	if err := h.RSVPService.RecordResponse(r.Context(), campaignID, body.Contact, body.Response); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
}

func (h *RSVPHandler) ListResponses(w http.ResponseWriter, r *http.Request) {
	campaignID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	responses, err := h.RSVPService.ListResponses(campaignID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"data": responses})
}

func (h *RSVPHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	campaignID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	stats, err := h.StatsService.ComputeStats(r.Context(), campaignID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stats)
}

func (h *RSVPHandler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (h *RSVPHandler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case appErrors.IsNotFound(err):
		status = http.StatusNotFound
	case appErrors.IsInvalidArgument(err), appErrors.IsInvalidState(err):
		status = http.StatusBadRequest
	case appErrors.IsConflict(err):
		status = http.StatusConflict
	}
	h.writeJSON(w, status, map[string]string{"error": err.Error()})
}
