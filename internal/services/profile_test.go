package services

import (
	"context"
	"strings"
	"testing"

	"statuscheck-backend/internal/errs"
	"statuscheck-backend/internal/models"
	"statuscheck-backend/internal/repository"

	"github.com/stretchr/testify/require"
)

func TestCheckUsername_Empty(t *testing.T) {
	profiles := newFakeProfileStore()
	svc := NewProfileService(profiles, NewHub())

	for _, candidate := range []string{"", "   "} {
		result, err := svc.CheckUsername(context.Background(), candidate)
		require.NoError(t, err)
		require.Equal(t, AvailabilityEmpty, result.State)
		require.Empty(t, result.Suggestions)
	}
}

func TestCheckUsername_Available(t *testing.T) {
	profiles := newFakeProfileStore()
	svc := NewProfileService(profiles, NewHub())

	result, err := svc.CheckUsername(context.Background(), "alex")
	require.NoError(t, err)
	require.Equal(t, AvailabilityAvailable, result.State)
	require.Equal(t, "alex", result.Username)
	require.Empty(t, result.Suggestions)
}

func TestCheckUsername_TakenOffersSuggestions(t *testing.T) {
	profiles := newFakeProfileStore()
	seedUser(profiles, "a", "alex@example.com", "alex")
	svc := NewProfileService(profiles, NewHub())

	result, err := svc.CheckUsername(context.Background(), "alex")
	require.NoError(t, err)
	require.Equal(t, AvailabilityTaken, result.State)
	require.NotEmpty(t, result.Suggestions)
	for _, s := range result.Suggestions {
		require.True(t, strings.HasPrefix(s, "alex"), "suggestion %q should derive from the candidate", s)
		require.Greater(t, len(s), len("alex"))
	}
}

func TestProfileUpdate_RejectsUnknownStatus(t *testing.T) {
	profiles := newFakeProfileStore()
	seedUser(profiles, "a", "alex@example.com", "alex")
	svc := NewProfileService(profiles, NewHub())

	bad := "Doing Great"
	_, err := svc.Update(context.Background(), "a", repository.UpdateParams{Status: &bad})
	require.ErrorIs(t, err, errs.ErrValidation)
}

func TestProfileUpdate_AppliesFieldsAndPublishes(t *testing.T) {
	profiles := newFakeProfileStore()
	seedUser(profiles, "a", "alex@example.com", "alex")
	hub := NewHub()
	svc := NewProfileService(profiles, hub)

	sub := hub.Subscribe(ProfileTopic("a"))
	defer sub.Cancel()

	status := models.StatusStruggling
	ambassador := true
	bio := "here to help"
	updated, err := svc.Update(context.Background(), "a", repository.UpdateParams{
		Status:       &status,
		IsAmbassador: &ambassador,
		Bio:          &bio,
	})
	require.NoError(t, err)
	require.Equal(t, models.StatusStruggling, updated.Status)
	require.True(t, updated.IsAmbassador)
	require.Equal(t, "here to help", updated.Bio)

	ev := recvEvent(t, sub.Events())
	require.Equal(t, "profile_updated", ev.Type)
	pushed, ok := ev.Data.(*models.Profile)
	require.True(t, ok)
	require.Equal(t, models.StatusStruggling, pushed.Status)
}
