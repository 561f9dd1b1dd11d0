package services

import (
	"context"
	"testing"

	"statuscheck-backend/internal/errs"

	"github.com/stretchr/testify/require"
)

func newAuthFixture() (*AuthService, *fakeProfileStore, *Hub) {
	profiles := newFakeProfileStore()
	hub := NewHub()
	return NewAuthService(profiles, hub, "test-secret"), profiles, hub
}

func TestSignUp_Validation(t *testing.T) {
	svc, _, _ := newAuthFixture()

	tests := []struct {
		name     string
		email    string
		password string
		username string
	}{
		{"missing email", "", "secret1", "alex"},
		{"missing username", "alex@example.com", "secret1", ""},
		{"short password", "alex@example.com", "abc", "alex"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.SignUp(context.Background(), tc.email, tc.password, tc.username)
			require.ErrorIs(t, err, errs.ErrValidation)
		})
	}
}

func TestSignUp_CreatesProfileWithDefaults(t *testing.T) {
	svc, _, _ := newAuthFixture()

	profile, token, err := svc.SignUp(context.Background(), "alex@example.com", "secret1", "alex")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, profile.ID)
	require.Equal(t, "Feeling Good", profile.Status)
	require.False(t, profile.IsAmbassador)
	require.False(t, profile.IsPremium)

	userID, err := svc.ValidateJWT(token)
	require.NoError(t, err)
	require.Equal(t, profile.ID, userID)
}

func TestSignUp_DuplicateUsernameConflicts(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, _, err := svc.SignUp(context.Background(), "alex@example.com", "secret1", "alex")
	require.NoError(t, err)

	// The availability check is advisory; the store constraint is what
	// actually rejects the second claimer.
	_, _, err = svc.SignUp(context.Background(), "other@example.com", "secret1", "alex")
	require.ErrorIs(t, err, errs.ErrAlreadyExists)
}

func TestSignIn(t *testing.T) {
	svc, _, _ := newAuthFixture()

	created, _, err := svc.SignUp(context.Background(), "alex@example.com", "secret1", "alex")
	require.NoError(t, err)

	profile, token, err := svc.SignIn(context.Background(), "alex@example.com", "secret1")
	require.NoError(t, err)
	require.Equal(t, created.ID, profile.ID)
	require.NotEmpty(t, token)

	_, _, err = svc.SignIn(context.Background(), "alex@example.com", "wrong-password")
	require.ErrorIs(t, err, errs.ErrAuth)

	_, _, err = svc.SignIn(context.Background(), "unknown@example.com", "secret1")
	require.ErrorIs(t, err, errs.ErrAuth)
}

func TestSignOut_ClosesLiveSession(t *testing.T) {
	svc, _, hub := newAuthFixture()

	session := hub.OpenSession("a")
	session.Subscribe(ProfileTopic("a"))
	session.Subscribe(JournalTopic("a"))

	svc.SignOut("a")

	require.False(t, hub.SessionActive("a"))
	requireClosed(t, session.Events())
}

func TestValidateJWT_RejectsGarbage(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.ValidateJWT("not-a-token")
	require.ErrorIs(t, err, errs.ErrAuth)
}
