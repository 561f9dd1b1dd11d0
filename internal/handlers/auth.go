package handlers

import (
	"encoding/json"
	"net/http"

	"statuscheck-backend/internal/middleware"
	"statuscheck-backend/internal/models"
	"statuscheck-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// AuthHandler handles sign-up, sign-in and sign-out requests
type AuthHandler struct {
	authService    *services.AuthService
	profileService *services.ProfileService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, profileService *services.ProfileService) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		profileService: profileService,
	}
}

// SignUpRequest represents the request body for sign-up
type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

// SignInRequest represents the request body for sign-in
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries the profile and session token
type AuthResponse struct {
	Profile *models.Profile `json:"profile"`
	Token   string          `json:"token"`
}

// SignUp handles POST /api/v1/auth/signup
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	profile, token, err := h.authService.SignUp(r.Context(), req.Email, req.Password, req.Username)
	if err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("Failed to sign up")
		respondServiceError(w, err)
		return
	}

	log.Info().Str("user_id", profile.ID).Str("username", profile.Username).Msg("User signed up")
	respondJSON(w, http.StatusCreated, AuthResponse{Profile: profile, Token: token})
}

// SignIn handles POST /api/v1/auth/signin
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	profile, token, err := h.authService.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("Failed to sign in")
		respondServiceError(w, err)
		return
	}

	log.Info().Str("user_id", profile.ID).Msg("User signed in")
	respondJSON(w, http.StatusOK, AuthResponse{Profile: profile, Token: token})
}

// SignOut handles POST /api/v1/auth/signout. It ends the live session;
// every subscription opened during the session is cancelled.
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	h.authService.SignOut(userID)

	log.Info().Str("user_id", userID).Msg("User signed out")
	w.WriteHeader(http.StatusNoContent)
}

// CheckUsername handles GET /api/v1/username-check?username=...
// The result is advisory; the name is not reserved.
func (h *AuthHandler) CheckUsername(w http.ResponseWriter, r *http.Request) {
	result, err := h.profileService.CheckUsername(r.Context(), r.URL.Query().Get("username"))
	if err != nil {
		log.Error().Err(err).Msg("Failed to check username")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
