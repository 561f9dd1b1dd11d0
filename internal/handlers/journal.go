package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"statuscheck-backend/internal/middleware"
	"statuscheck-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// JournalHandler handles journal HTTP requests
type JournalHandler struct {
	journalService *services.JournalService
	quoteService   *services.QuoteService
}

// NewJournalHandler creates a new journal handler
func NewJournalHandler(journalService *services.JournalService, quoteService *services.QuoteService) *JournalHandler {
	return &JournalHandler{
		journalService: journalService,
		quoteService:   quoteService,
	}
}

// AppendRequest represents the body of a new journal entry
type AppendRequest struct {
	Text string `json:"text"`
}

// Append handles POST /api/v1/journal
func (h *JournalHandler) Append(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req AppendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	entry, err := h.journalService.Append(r.Context(), userID, req.Text)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to append journal entry")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, entry)
}

// List handles GET /api/v1/journal?limit=N
func (h *JournalHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := h.journalService.List(r.Context(), userID, limit)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list journal entries")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

// Insight handles GET /api/v1/journal/insight (premium)
func (h *JournalHandler) Insight(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	insight, err := h.quoteService.JournalInsight(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to generate journal insight")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"insight": insight})
}

// Quote handles GET /api/v1/quote
func (h *JournalHandler) Quote(w http.ResponseWriter, r *http.Request) {
	quote, err := h.quoteService.MotivationalQuote(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch quote")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"quote": quote})
}
