package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"resonance-api/internal/domain"
	"resonance-api/pkg/database"
)

type UserRepository struct {
	db *database.PostgresDB
}

func NewUserRepository(db *database.PostgresDB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, google_id, email, name, avatar, provider, created_at, last_login`

// Create inserts a new user and fills in the server-assigned fields.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (google_id, email, name, avatar, provider)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, last_login
	`

	err := r.db.Pool.QueryRow(ctx, query,
		user.GoogleID,
		user.Email,
		user.Name,
		user.Avatar,
		user.Provider,
	).Scan(&user.ID, &user.CreatedAt, &user.LastLogin)

	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// FindByGoogleID looks a user up by Google subject id. Returns nil when no
// user matches.
func (r *UserRepository) FindByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE google_id = $1`
	return r.scanOne(r.db.Pool.QueryRow(ctx, query, googleID))
}

// FindByEmail looks a user up by email. Returns nil when no user matches.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanOne(r.db.Pool.QueryRow(ctx, query, email))
}

// GetByID fetches a user by id. Returns nil when no user matches.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(r.db.Pool.QueryRow(ctx, query, id))
}

// LinkGoogleID back-fills the Google subject id on an email-matched account
// and stamps the login time.
func (r *UserRepository) LinkGoogleID(ctx context.Context, userID, googleID string) error {
	query := `UPDATE users SET google_id = $2, last_login = NOW() WHERE id = $1`

	if _, err := r.db.Pool.Exec(ctx, query, userID, googleID); err != nil {
		return fmt.Errorf("failed to link google id: %w", err)
	}
	return nil
}

// TouchLastLogin stamps the login time.
func (r *UserRepository) TouchLastLogin(ctx context.Context, userID string) error {
	query := `UPDATE users SET last_login = NOW() WHERE id = $1`

	if _, err := r.db.Pool.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}

// UpdateProfile changes name and avatar only; email and provider are
// immutable after creation. Returns nil when the user does not exist.
func (r *UserRepository) UpdateProfile(ctx context.Context, userID, name string, avatar *string) (*domain.User, error) {
	query := `
		UPDATE users SET name = $2, avatar = $3
		WHERE id = $1
		RETURNING ` + userColumns

	return r.scanOne(r.db.Pool.QueryRow(ctx, query, userID, name, avatar))
}

// Delete hard-deletes the user row. Owned emotions and signals are NOT
// removed; the caller decides how to surface that.
func (r *UserRepository) Delete(ctx context.Context, userID string) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *UserRepository) scanOne(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.GoogleID,
		&user.Email,
		&user.Name,
		&user.Avatar,
		&user.Provider,
		&user.CreatedAt,
		&user.LastLogin,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	return &user, nil
}
