package repository

import (
	"context"

	"statuscheck-backend/internal/models"
)

// JournalRepository handles database operations for journal entries
type JournalRepository struct {
	db *DB
}

// NewJournalRepository creates a new journal repository
func NewJournalRepository(db *DB) *JournalRepository {
	return &JournalRepository{db: db}
}

// Create inserts a new entry; the creation timestamp is assigned by the
// database and returned on the entry.
func (r *JournalRepository) Create(ctx context.Context, entry *models.JournalEntry) error {
	query := `
		INSERT INTO journal_entries (id, user_id, text)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`
	err := r.db.Pool.QueryRow(ctx, query, entry.ID, entry.UserID, entry.Text).Scan(&entry.CreatedAt)
	if err != nil {
		return wrapStoreErr("failed to create journal entry", err)
	}
	return nil
}

// ListByUser returns entries newest-first, capped to limit.
func (r *JournalRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*models.JournalEntry, error) {
	query := `
		SELECT id, user_id, text, created_at
		FROM journal_entries
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.Pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, wrapStoreErr("failed to list journal entries", err)
	}
	defer rows.Close()

	var entries []*models.JournalEntry
	for rows.Next() {
		var e models.JournalEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Text, &e.CreatedAt); err != nil {
			return nil, wrapStoreErr("failed to scan journal entry", err)
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreErr("failed to read journal entries", err)
	}
	return entries, nil
}
