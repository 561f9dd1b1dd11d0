package services

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"statuscheck-backend/internal/errs"
	"statuscheck-backend/internal/models"
	"statuscheck-backend/internal/repository"
)

// Availability states of a candidate username.
const (
	AvailabilityEmpty     = "empty"
	AvailabilityChecking  = "checking"
	AvailabilityAvailable = "available"
	AvailabilityTaken     = "taken"
)

const suggestionCount = 3

// AvailabilityResult is the outcome of one username availability query.
type AvailabilityResult struct {
	Username    string   `json:"username"`
	State       string   `json:"state"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// ProfileService handles profile reads, updates and username checks
type ProfileService struct {
	profiles ProfileStore
	hub      *Hub
}

// NewProfileService creates a new profile service
func NewProfileService(profiles ProfileStore, hub *Hub) *ProfileService {
	return &ProfileService{profiles: profiles, hub: hub}
}

// GetByID returns a profile by id.
func (s *ProfileService) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	return s.profiles.GetByID(ctx, id)
}

// CheckUsername runs one point query for the candidate and reports
// whether it is free. The check does not reserve the name; sign-up may
// still fail with a conflict if another user claims it first.
func (s *ProfileService) CheckUsername(ctx context.Context, candidate string) (*AvailabilityResult, error) {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return &AvailabilityResult{State: AvailabilityEmpty}, nil
	}

	exists, err := s.profiles.UsernameExists(ctx, candidate)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if !exists {
		return &AvailabilityResult{Username: candidate, State: AvailabilityAvailable}, nil
	}
	return &AvailabilityResult{
		Username:    candidate,
		State:       AvailabilityTaken,
		Suggestions: suggestUsernames(candidate),
	}, nil
}

// suggestUsernames derives alternatives for a taken name by appending
// digits. Suggestions are not checked for availability themselves.
func suggestUsernames(candidate string) []string {
	suggestions := make([]string, 0, suggestionCount)
	for i := 0; i < suggestionCount; i++ {
		suggestions = append(suggestions, fmt.Sprintf("%s%d", candidate, rand.Intn(90)+10))
	}
	return suggestions
}

// Update applies a partial profile update and publishes the new profile
// to its live subscribers.
func (s *ProfileService) Update(ctx context.Context, userID string, params repository.UpdateParams) (*models.Profile, error) {
	if params.Status != nil && !models.ValidStatus(*params.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", errs.ErrValidation, *params.Status)
	}

	profile, err := s.profiles.Update(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	s.hub.Publish(Event{
		Topic: ProfileTopic(userID),
		Type:  "profile_updated",
		Data:  profile,
	})
	return profile, nil
}

// SetPushToken stores (or clears) the device push token for alerts.
func (s *ProfileService) SetPushToken(ctx context.Context, userID string, token *string) error {
	return s.profiles.SetPushToken(ctx, userID, token)
}
