package services

import (
	"context"

	"statuscheck-backend/internal/models"
	"statuscheck-backend/internal/repository"
)

// Store interfaces consumed by the service layer. Implemented by the
// repository package; substituted in tests.

// ProfileStore persists user profiles.
type ProfileStore interface {
	Create(ctx context.Context, p *models.Profile, passwordHash string) error
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
	GetByUsername(ctx context.Context, username string) (*models.Profile, error)
	GetByIDs(ctx context.Context, ids []string) ([]*models.Profile, error)
	CredentialsByEmail(ctx context.Context, email string) (*models.Profile, string, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	Update(ctx context.Context, id string, params repository.UpdateParams) (*models.Profile, error)
	SetPushToken(ctx context.Context, id string, pushToken *string) error
	SetAvatarURL(ctx context.Context, id, url string) error
}

// CircleStore persists support-circle membership.
type CircleStore interface {
	AddMember(ctx context.Context, ownerID, memberID string) error
	RemoveMember(ctx context.Context, ownerID, memberID string) error
	MemberIDs(ctx context.Context, ownerID string) ([]string, error)
}

// JournalStore persists journal entries.
type JournalStore interface {
	Create(ctx context.Context, entry *models.JournalEntry) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*models.JournalEntry, error)
}

// SuggestionStore persists suggestion-box submissions.
type SuggestionStore interface {
	Create(ctx context.Context, s *models.Suggestion) error
	ListByUser(ctx context.Context, userID string) ([]*models.Suggestion, error)
}
