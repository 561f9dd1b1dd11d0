package handlers

import (
	"encoding/json"
	"net/http"

	"statuscheck-backend/internal/middleware"
	"statuscheck-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// CircleHandler handles support-circle HTTP requests
type CircleHandler struct {
	circleService *services.CircleService
}

// NewCircleHandler creates a new circle handler
func NewCircleHandler(circleService *services.CircleService) *CircleHandler {
	return &CircleHandler{circleService: circleService}
}

// AddMemberRequest identifies a friend by username or email
type AddMemberRequest struct {
	Friend string `json:"friend"`
}

// AddMember handles POST /api/v1/circle
func (h *CircleHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req AddMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	member, err := h.circleService.AddMember(r.Context(), userID, req.Friend)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("friend", req.Friend).Msg("Failed to add circle member")
		respondServiceError(w, err)
		return
	}

	log.Info().Str("user_id", userID).Str("member_id", member.ID).Msg("Circle member added")
	respondJSON(w, http.StatusOK, member)
}

// RemoveMember handles DELETE /api/v1/circle/{member_id}
func (h *CircleHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	memberID := chi.URLParam(r, "member_id")

	if err := h.circleService.RemoveMember(r.Context(), userID, memberID); err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("member_id", memberID).Msg("Failed to remove circle member")
		respondServiceError(w, err)
		return
	}

	log.Info().Str("user_id", userID).Str("member_id", memberID).Msg("Circle member removed")
	w.WriteHeader(http.StatusNoContent)
}

// Members handles GET /api/v1/circle
func (h *CircleHandler) Members(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	members, err := h.circleService.Members(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list circle members")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, members)
}
