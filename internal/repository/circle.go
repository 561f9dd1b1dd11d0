package repository

import "context"

// CircleRepository handles database operations for support circles.
// Membership is a set: add and remove are idempotent by construction.
type CircleRepository struct {
	db *DB
}

// NewCircleRepository creates a new circle repository
func NewCircleRepository(db *DB) *CircleRepository {
	return &CircleRepository{db: db}
}

// AddMember adds memberID to ownerID's circle. Adding an existing
// member is a no-op.
func (r *CircleRepository) AddMember(ctx context.Context, ownerID, memberID string) error {
	query := `
		INSERT INTO circle_members (owner_id, member_id)
		VALUES ($1, $2)
		ON CONFLICT (owner_id, member_id) DO NOTHING
	`
	_, err := r.db.Pool.Exec(ctx, query, ownerID, memberID)
	if err != nil {
		return wrapStoreErr("failed to add circle member", err)
	}
	return nil
}

// RemoveMember removes memberID from ownerID's circle. Removing an
// absent member is a no-op.
func (r *CircleRepository) RemoveMember(ctx context.Context, ownerID, memberID string) error {
	query := `DELETE FROM circle_members WHERE owner_id = $1 AND member_id = $2`
	_, err := r.db.Pool.Exec(ctx, query, ownerID, memberID)
	if err != nil {
		return wrapStoreErr("failed to remove circle member", err)
	}
	return nil
}

// MemberIDs returns the ids of everyone in ownerID's circle.
func (r *CircleRepository) MemberIDs(ctx context.Context, ownerID string) ([]string, error) {
	query := `SELECT member_id FROM circle_members WHERE owner_id = $1`
	rows, err := r.db.Pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, wrapStoreErr("failed to get circle members", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, wrapStoreErr("failed to scan member id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreErr("failed to read circle members", err)
	}
	return ids, nil
}
