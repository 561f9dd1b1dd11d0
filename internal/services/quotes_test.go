package services

import (
	"context"
	"testing"

	"statuscheck-backend/internal/errs"
	"statuscheck-backend/internal/models"

	"github.com/stretchr/testify/require"
)

func TestMotivationalQuote(t *testing.T) {
	svc := NewQuoteService(&MockGenerator{}, newFakeProfileStore(), newFakeJournalStore())

	quote, err := svc.MotivationalQuote(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, quote)
}

func TestJournalInsight_RequiresPremium(t *testing.T) {
	profiles := newFakeProfileStore()
	seedUser(profiles, "a", "alex@example.com", "alex")
	svc := NewQuoteService(&MockGenerator{}, profiles, newFakeJournalStore())

	_, err := svc.JournalInsight(context.Background(), "a")
	require.ErrorIs(t, err, errs.ErrPremiumRequired)
}

func TestJournalInsight_UsesRecentEntries(t *testing.T) {
	profiles := newFakeProfileStore()
	profiles.seed(&models.Profile{
		ID: "a", Email: "alex@example.com", Username: "alex", IsPremium: true,
	})
	journal := newFakeJournalStore()
	svc := NewQuoteService(&MockGenerator{}, profiles, journal)

	// No entries yet: nothing to analyze.
	_, err := svc.JournalInsight(context.Background(), "a")
	require.ErrorIs(t, err, errs.ErrValidation)

	require.NoError(t, journal.Create(context.Background(), &models.JournalEntry{
		ID: "e1", UserID: "a", Text: "feeling okay today",
	}))

	insight, err := svc.JournalInsight(context.Background(), "a")
	require.NoError(t, err)
	require.NotEmpty(t, insight)
}
