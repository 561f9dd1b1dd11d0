package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"statuscheck-backend/internal/errs"
	"statuscheck-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	jwtExpDays  = 30
	minPassword = 6
)

// AuthService handles sign-up, sign-in and token validation
type AuthService struct {
	profiles  ProfileStore
	hub       *Hub
	jwtSecret string
}

// NewAuthService creates a new auth service
func NewAuthService(profiles ProfileStore, hub *Hub, jwtSecret string) *AuthService {
	return &AuthService{
		profiles:  profiles,
		hub:       hub,
		jwtSecret: jwtSecret,
	}
}

// SignUp creates a profile with an empty circle and returns it with a
// session token. The username availability check at the form is only
// advisory; the unique constraint here is what actually arbitrates two
// concurrent sign-ups racing for the same name.
func (s *AuthService) SignUp(ctx context.Context, email, password, username string) (*models.Profile, string, error) {
	email = strings.TrimSpace(email)
	username = strings.TrimSpace(username)

	if email == "" {
		return nil, "", fmt.Errorf("%w: email is required", errs.ErrValidation)
	}
	if username == "" {
		return nil, "", fmt.Errorf("%w: please enter a username", errs.ErrValidation)
	}
	if len(password) < minPassword {
		return nil, "", fmt.Errorf("%w: password must be at least %d characters", errs.ErrValidation, minPassword)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	profile := &models.Profile{
		ID:        uuid.New().String(),
		Email:     email,
		Username:  username,
		Status:    models.StatusFeelingGood,
		CreatedAt: time.Now(),
	}

	if err := s.profiles.Create(ctx, profile, string(hash)); err != nil {
		if errors.Is(err, errs.ErrAlreadyExists) {
			return nil, "", fmt.Errorf("%w: email or username is taken", errs.ErrAlreadyExists)
		}
		return nil, "", fmt.Errorf("failed to create profile: %w", err)
	}

	token, err := s.GenerateJWT(profile.ID)
	if err != nil {
		return nil, "", err
	}
	return profile, token, nil
}

// SignIn verifies credentials and returns the profile with a session token.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*models.Profile, string, error) {
	profile, hash, err := s.profiles.CredentialsByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, "", fmt.Errorf("%w: invalid email or password", errs.ErrAuth)
		}
		return nil, "", fmt.Errorf("failed to look up credentials: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, "", fmt.Errorf("%w: invalid email or password", errs.ErrAuth)
	}

	token, err := s.GenerateJWT(profile.ID)
	if err != nil {
		return nil, "", err
	}
	return profile, token, nil
}

// SignOut ends the user's live session so every listener it opened is
// cancelled. The bearer token itself simply expires.
func (s *AuthService) SignOut(userID string) {
	s.hub.CloseSession(userID)
}

// GenerateJWT generates a JWT token for a user
func (s *AuthService) GenerateJWT(userID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().AddDate(0, 0, jwtExpDays).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateJWT validates a JWT token and returns the user ID
func (s *AuthService) ValidateJWT(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", errs.ErrAuth, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("%w: invalid token", errs.ErrAuth)
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return "", fmt.Errorf("%w: user_id not found in token", errs.ErrAuth)
	}

	return userID, nil
}
