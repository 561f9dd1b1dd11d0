package services

import (
	"context"
	"fmt"
	"strings"

	"statuscheck-backend/internal/errs"
	"statuscheck-backend/internal/models"

	"github.com/google/uuid"
)

const (
	journalDefaultLimit = 50
	journalMaxLimit     = 200
)

// JournalService handles the append-only per-user journal
type JournalService struct {
	journal JournalStore
	hub     *Hub
}

// NewJournalService creates a new journal service
func NewJournalService(journal JournalStore, hub *Hub) *JournalService {
	return &JournalService{journal: journal, hub: hub}
}

// Append writes one new entry. The creation timestamp is assigned by
// the store; entries are never edited or deleted afterwards.
func (s *JournalService) Append(ctx context.Context, userID, text string) (*models.JournalEntry, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: entry text is required", errs.ErrValidation)
	}

	entry := &models.JournalEntry{
		ID:     uuid.New().String(),
		UserID: userID,
		Text:   text,
	}
	if err := s.journal.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.hub.Publish(Event{
		Topic: JournalTopic(userID),
		Type:  "entry_added",
		Data:  entry,
	})
	return entry, nil
}

// List returns the user's entries newest-first, capped to limit
// (defaulted and clamped when out of range).
func (s *JournalService) List(ctx context.Context, userID string, limit int) ([]*models.JournalEntry, error) {
	if limit <= 0 {
		limit = journalDefaultLimit
	}
	if limit > journalMaxLimit {
		limit = journalMaxLimit
	}
	return s.journal.ListByUser(ctx, userID, limit)
}
