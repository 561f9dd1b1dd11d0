package services

import (
	"context"
	"fmt"
	"strings"

	"statuscheck-backend/internal/errs"
	"statuscheck-backend/internal/models"

	"github.com/google/uuid"
)

// SuggestionService handles the suggestion box
type SuggestionService struct {
	suggestions SuggestionStore
}

// NewSuggestionService creates a new suggestion service
func NewSuggestionService(suggestions SuggestionStore) *SuggestionService {
	return &SuggestionService{suggestions: suggestions}
}

// Submit stores a free-text suggestion. The creation timestamp is
// assigned by the store.
func (s *SuggestionService) Submit(ctx context.Context, userID, text string) (*models.Suggestion, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: suggestion text is required", errs.ErrValidation)
	}

	suggestion := &models.Suggestion{
		ID:     uuid.New().String(),
		UserID: userID,
		Text:   text,
	}
	if err := s.suggestions.Create(ctx, suggestion); err != nil {
		return nil, err
	}
	return suggestion, nil
}

// List returns the user's own submissions, newest first.
func (s *SuggestionService) List(ctx context.Context, userID string) ([]*models.Suggestion, error) {
	return s.suggestions.ListByUser(ctx, userID)
}
