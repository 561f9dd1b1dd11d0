package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"statuscheck-backend/internal/errs"
	"statuscheck-backend/internal/models"

	"github.com/jackc/pgx/v5"
)

const profileColumns = `id, email, username, status, is_ambassador, is_premium, bio, avatar_url, push_token, created_at`

// ProfileRepository handles database operations for profiles
type ProfileRepository struct {
	db *DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Create inserts a new profile with its password hash. The unique
// constraints on email and username surface as errs.ErrAlreadyExists.
func (r *ProfileRepository) Create(ctx context.Context, p *models.Profile, passwordHash string) error {
	query := `
		INSERT INTO profiles (id, email, username, password_hash, status, is_ambassador, is_premium, bio, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.Pool.Exec(ctx, query,
		p.ID, p.Email, p.Username, passwordHash, p.Status, p.IsAmbassador, p.IsPremium, p.Bio, p.CreatedAt,
	)
	if isUniqueViolation(err) {
		return errs.ErrAlreadyExists
	}
	if err != nil {
		return wrapStoreErr("failed to create profile", err)
	}
	return nil
}

func (r *ProfileRepository) scanOne(row pgx.Row) (*models.Profile, error) {
	var p models.Profile
	err := row.Scan(
		&p.ID, &p.Email, &p.Username, &p.Status, &p.IsAmbassador, &p.IsPremium,
		&p.Bio, &p.AvatarURL, &p.PushToken, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, wrapStoreErr("failed to get profile", err)
	}
	return &p, nil
}

// GetByID retrieves a profile by ID
func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	return r.scanOne(r.db.Pool.QueryRow(ctx, query, id))
}

// GetByEmail retrieves a profile by exact email match
func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE email = $1`
	return r.scanOne(r.db.Pool.QueryRow(ctx, query, email))
}

// GetByUsername retrieves a profile by exact username match
func (r *ProfileRepository) GetByUsername(ctx context.Context, username string) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE username = $1`
	return r.scanOne(r.db.Pool.QueryRow(ctx, query, username))
}

// GetByIDs retrieves all profiles whose id is in ids, in one round trip.
func (r *ProfileRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = ANY($1)`
	rows, err := r.db.Pool.Query(ctx, query, ids)
	if err != nil {
		return nil, wrapStoreErr("failed to get profiles", err)
	}
	defer rows.Close()

	var profiles []*models.Profile
	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(
			&p.ID, &p.Email, &p.Username, &p.Status, &p.IsAmbassador, &p.IsPremium,
			&p.Bio, &p.AvatarURL, &p.PushToken, &p.CreatedAt,
		); err != nil {
			return nil, wrapStoreErr("failed to scan profile", err)
		}
		profiles = append(profiles, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreErr("failed to read profiles", err)
	}
	return profiles, nil
}

// CredentialsByEmail returns the profile and password hash for a sign-in attempt.
func (r *ProfileRepository) CredentialsByEmail(ctx context.Context, email string) (*models.Profile, string, error) {
	query := `
		SELECT ` + profileColumns + `, password_hash
		FROM profiles
		WHERE email = $1
	`
	var p models.Profile
	var hash string
	err := r.db.Pool.QueryRow(ctx, query, email).Scan(
		&p.ID, &p.Email, &p.Username, &p.Status, &p.IsAmbassador, &p.IsPremium,
		&p.Bio, &p.AvatarURL, &p.PushToken, &p.CreatedAt, &hash,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", errs.ErrNotFound
		}
		return nil, "", wrapStoreErr("failed to get credentials", err)
	}
	return &p, hash, nil
}

// UsernameExists checks if a username is already claimed
func (r *ProfileRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM profiles WHERE username = $1)`
	var exists bool
	err := r.db.Pool.QueryRow(ctx, query, username).Scan(&exists)
	if err != nil {
		return false, wrapStoreErr("failed to check username existence", err)
	}
	return exists, nil
}

// UpdateParams holds the optional fields of a partial profile update.
// Nil pointers leave the column untouched.
type UpdateParams struct {
	Status       *string
	IsAmbassador *bool
	IsPremium    *bool
	Bio          *string
}

// Update applies a partial update and returns the resulting profile.
func (r *ProfileRepository) Update(ctx context.Context, id string, params UpdateParams) (*models.Profile, error) {
	sets := make([]string, 0, 4)
	args := []any{id}
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if params.Status != nil {
		add("status", *params.Status)
	}
	if params.IsAmbassador != nil {
		add("is_ambassador", *params.IsAmbassador)
	}
	if params.IsPremium != nil {
		add("is_premium", *params.IsPremium)
	}
	if params.Bio != nil {
		add("bio", *params.Bio)
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	query := `UPDATE profiles SET ` + strings.Join(sets, ", ") + ` WHERE id = $1 RETURNING ` + profileColumns
	return r.scanOne(r.db.Pool.QueryRow(ctx, query, args...))
}

// SetPushToken updates the push token for a profile
func (r *ProfileRepository) SetPushToken(ctx context.Context, id string, pushToken *string) error {
	query := `UPDATE profiles SET push_token = $2 WHERE id = $1`
	_, err := r.db.Pool.Exec(ctx, query, id, pushToken)
	if err != nil {
		return wrapStoreErr("failed to update push token", err)
	}
	return nil
}

// SetAvatarURL updates the avatar URL for a profile
func (r *ProfileRepository) SetAvatarURL(ctx context.Context, id, url string) error {
	query := `UPDATE profiles SET avatar_url = $2 WHERE id = $1`
	_, err := r.db.Pool.Exec(ctx, query, id, url)
	if err != nil {
		return wrapStoreErr("failed to update avatar url", err)
	}
	return nil
}
