package services

import (
	"context"
	"testing"

	"statuscheck-backend/internal/errs"
	"statuscheck-backend/internal/models"

	"github.com/stretchr/testify/require"
)

func TestJournal_AppendRejectsEmptyText(t *testing.T) {
	svc := NewJournalService(newFakeJournalStore(), NewHub())

	_, err := svc.Append(context.Background(), "a", "   ")
	require.ErrorIs(t, err, errs.ErrValidation)
}

func TestJournal_EntriesAreNewestFirst(t *testing.T) {
	svc := NewJournalService(newFakeJournalStore(), NewHub())

	first, err := svc.Append(context.Background(), "a", "feeling okay today")
	require.NoError(t, err)
	require.False(t, first.CreatedAt.IsZero(), "store assigns the timestamp")

	second, err := svc.Append(context.Background(), "a", "better now")
	require.NoError(t, err)
	require.True(t, second.CreatedAt.After(first.CreatedAt))

	entries, err := svc.List(context.Background(), "a", 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "better now", entries[0].Text)
	require.Equal(t, "feeling okay today", entries[1].Text)
}

func TestJournal_ListHonorsCap(t *testing.T) {
	svc := NewJournalService(newFakeJournalStore(), NewHub())

	for _, text := range []string{"one", "two", "three"} {
		_, err := svc.Append(context.Background(), "a", text)
		require.NoError(t, err)
	}

	entries, err := svc.List(context.Background(), "a", 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "three", entries[0].Text)
}

func TestJournal_AppendPublishesLive(t *testing.T) {
	hub := NewHub()
	svc := NewJournalService(newFakeJournalStore(), hub)

	sub := hub.Subscribe(JournalTopic("a"))
	defer sub.Cancel()

	_, err := svc.Append(context.Background(), "a", "feeling okay today")
	require.NoError(t, err)

	ev := recvEvent(t, sub.Events())
	require.Equal(t, "entry_added", ev.Type)
	entry, ok := ev.Data.(*models.JournalEntry)
	require.True(t, ok)
	require.Equal(t, "feeling okay today", entry.Text)
}
