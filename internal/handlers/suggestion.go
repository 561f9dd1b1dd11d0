package handlers

import (
	"encoding/json"
	"net/http"

	"statuscheck-backend/internal/middleware"
	"statuscheck-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// SuggestionHandler handles suggestion-box HTTP requests
type SuggestionHandler struct {
	suggestionService *services.SuggestionService
}

// NewSuggestionHandler creates a new suggestion handler
func NewSuggestionHandler(suggestionService *services.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{suggestionService: suggestionService}
}

// SubmitRequest represents a suggestion-box submission
type SubmitRequest struct {
	Text string `json:"text"`
}

// Submit handles POST /api/v1/suggestions
func (h *SuggestionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	suggestion, err := h.suggestionService.Submit(r.Context(), userID, req.Text)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to submit suggestion")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, suggestion)
}

// List handles GET /api/v1/suggestions (the caller's own submissions)
func (h *SuggestionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	suggestions, err := h.suggestionService.List(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list suggestions")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, suggestions)
}
