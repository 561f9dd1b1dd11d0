package handlers

import (
	"encoding/json"
	"net/http"

	"statuscheck-backend/internal/middleware"
	"statuscheck-backend/internal/repository"
	"statuscheck-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// ProfileHandler handles profile-related HTTP requests
type ProfileHandler struct {
	profileService *services.ProfileService
	avatarService  *services.AvatarService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *services.ProfileService, avatarService *services.AvatarService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		avatarService:  avatarService,
	}
}

// Get handles GET /api/v1/profile
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	profile, err := h.profileService.GetByID(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to get profile")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

// UpdateRequest represents a partial profile update
type UpdateRequest struct {
	Status       *string `json:"status"`
	IsAmbassador *bool   `json:"is_ambassador"`
	IsPremium    *bool   `json:"is_premium"`
	Bio          *string `json:"bio"`
}

// Update handles PATCH /api/v1/profile
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	profile, err := h.profileService.Update(r.Context(), userID, repository.UpdateParams{
		Status:       req.Status,
		IsAmbassador: req.IsAmbassador,
		IsPremium:    req.IsPremium,
		Bio:          req.Bio,
	})
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to update profile")
		respondServiceError(w, err)
		return
	}

	log.Info().Str("user_id", userID).Msg("Profile updated")
	respondJSON(w, http.StatusOK, profile)
}

// PushTokenRequest registers or clears a device push token
type PushTokenRequest struct {
	PushToken *string `json:"push_token"`
}

// SetPushToken handles POST /api/v1/profile/push-token
func (h *ProfileHandler) SetPushToken(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req PushTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.profileService.SetPushToken(r.Context(), userID, req.PushToken); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to set push token")
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AvatarUploadRequest asks for a pre-signed avatar upload URL
type AvatarUploadRequest struct {
	ContentType string `json:"content_type"`
}

// PresignAvatar handles POST /api/v1/profile/avatar
func (h *ProfileHandler) PresignAvatar(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req AvatarUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ContentType == "" {
		req.ContentType = "image/jpeg"
	}

	resp, err := h.avatarService.PresignUpload(r.Context(), userID, req.ContentType)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to presign avatar upload")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// AvatarConfirmRequest records a completed avatar upload
type AvatarConfirmRequest struct {
	AvatarURL string `json:"avatar_url"`
}

// ConfirmAvatar handles POST /api/v1/profile/avatar/confirm
func (h *ProfileHandler) ConfirmAvatar(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req AvatarConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.AvatarURL == "" {
		respondError(w, "avatar_url is required", http.StatusBadRequest)
		return
	}

	if err := h.avatarService.ConfirmUpload(r.Context(), userID, req.AvatarURL); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to confirm avatar upload")
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
