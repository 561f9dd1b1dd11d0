package handlers

import (
	"encoding/json"
	"net/http"

	"statuscheck-backend/internal/middleware"
	"statuscheck-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// AlertHandler handles alert HTTP requests
type AlertHandler struct {
	alertService *services.AlertService
}

// NewAlertHandler creates a new alert handler
func NewAlertHandler(alertService *services.AlertService) *AlertHandler {
	return &AlertHandler{alertService: alertService}
}

// SendRequest represents the body of an alert send
type SendRequest struct {
	Type string `json:"type"`
}

// SendResponse reports how many circle members were notified
type SendResponse struct {
	Notified int `json:"notified"`
}

// Send handles POST /api/v1/alerts
func (h *AlertHandler) Send(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req SendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	notified, err := h.alertService.Send(r.Context(), userID, req.Type)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("type", req.Type).Msg("Failed to send alert")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, SendResponse{Notified: notified})
}
