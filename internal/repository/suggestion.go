package repository

import (
	"context"

	"statuscheck-backend/internal/models"
)

// SuggestionRepository handles database operations for the suggestion box
type SuggestionRepository struct {
	db *DB
}

// NewSuggestionRepository creates a new suggestion repository
func NewSuggestionRepository(db *DB) *SuggestionRepository {
	return &SuggestionRepository{db: db}
}

// Create inserts a new suggestion with a database-assigned timestamp.
func (r *SuggestionRepository) Create(ctx context.Context, s *models.Suggestion) error {
	query := `
		INSERT INTO suggestions (id, user_id, text)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`
	err := r.db.Pool.QueryRow(ctx, query, s.ID, s.UserID, s.Text).Scan(&s.CreatedAt)
	if err != nil {
		return wrapStoreErr("failed to create suggestion", err)
	}
	return nil
}

// ListByUser returns a user's own suggestions, newest first.
func (r *SuggestionRepository) ListByUser(ctx context.Context, userID string) ([]*models.Suggestion, error) {
	query := `
		SELECT id, user_id, text, created_at
		FROM suggestions
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, wrapStoreErr("failed to list suggestions", err)
	}
	defer rows.Close()

	var suggestions []*models.Suggestion
	for rows.Next() {
		var s models.Suggestion
		if err := rows.Scan(&s.ID, &s.UserID, &s.Text, &s.CreatedAt); err != nil {
			return nil, wrapStoreErr("failed to scan suggestion", err)
		}
		suggestions = append(suggestions, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreErr("failed to read suggestions", err)
	}
	return suggestions, nil
}
