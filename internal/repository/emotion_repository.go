package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"resonance-api/internal/domain"
	"resonance-api/pkg/database"
)

type EmotionRepository struct {
	db *database.PostgresDB
}

func NewEmotionRepository(db *database.PostgresDB) *EmotionRepository {
	return &EmotionRepository{db: db}
}

// Create inserts a new emotion and fills in the server-assigned id and
// timestamp.
func (r *EmotionRepository) Create(ctx context.Context, emotion *domain.Emotion) error {
	query := `
		INSERT INTO emotions (user_id, color, pattern, motion_intensity)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		emotion.UserID,
		emotion.Color,
		emotion.Pattern,
		emotion.MotionIntensity,
	).Scan(&emotion.ID, &emotion.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create emotion: %w", err)
	}

	return nil
}

// Feed returns a page of all users' emotions, newest first, each expanded
// with the owner's name and avatar. Ties on created_at break by id so pages
// stay stable across repeated reads.
func (r *EmotionRepository) Feed(ctx context.Context, limit, offset int) ([]domain.Emotion, error) {
	query := `
		SELECT e.id, e.user_id, e.color, e.pattern, e.motion_intensity, e.created_at,
		       u.name, u.avatar
		FROM emotions e
		LEFT JOIN users u ON u.id = e.user_id
		ORDER BY e.created_at DESC, e.id DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list emotion feed: %w", err)
	}
	defer rows.Close()

	return scanEmotions(rows)
}

// History returns the caller's own emotions, newest first, capped at limit.
func (r *EmotionRepository) History(ctx context.Context, userID string, limit int) ([]domain.Emotion, error) {
	query := `
		SELECT e.id, e.user_id, e.color, e.pattern, e.motion_intensity, e.created_at,
		       u.name, u.avatar
		FROM emotions e
		LEFT JOIN users u ON u.id = e.user_id
		WHERE e.user_id = $1
		ORDER BY e.created_at DESC, e.id DESC
		LIMIT $2
	`

	rows, err := r.db.Pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list emotion history: %w", err)
	}
	defer rows.Close()

	return scanEmotions(rows)
}

// GetByID fetches one emotion with the owner profile attached. Returns nil
// when the id does not exist. There is no ownership check on reads: posts
// are publicly legible to any authenticated user.
func (r *EmotionRepository) GetByID(ctx context.Context, id string) (*domain.Emotion, error) {
	query := `
		SELECT e.id, e.user_id, e.color, e.pattern, e.motion_intensity, e.created_at,
		       u.name, u.avatar
		FROM emotions e
		LEFT JOIN users u ON u.id = e.user_id
		WHERE e.id = $1
	`

	var (
		emotion     domain.Emotion
		ownerName   *string
		ownerAvatar *string
	)

	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&emotion.ID,
		&emotion.UserID,
		&emotion.Color,
		&emotion.Pattern,
		&emotion.MotionIntensity,
		&emotion.CreatedAt,
		&ownerName,
		&ownerAvatar,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get emotion: %w", err)
	}

	if ownerName != nil {
		emotion.Owner = &domain.Owner{Name: *ownerName, Avatar: ownerAvatar}
	}

	return &emotion, nil
}

// Delete removes an emotion only when it belongs to userID. The ownership
// check lives in the filter itself, so there is no window between an
// existence check and the delete. Returns false both for a missing id and a
// non-owned record.
func (r *EmotionRepository) Delete(ctx context.Context, id, userID string) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx,
		`DELETE FROM emotions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete emotion: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanEmotions(rows pgx.Rows) ([]domain.Emotion, error) {
	var emotions []domain.Emotion
	for rows.Next() {
		var (
			emotion     domain.Emotion
			ownerName   *string
			ownerAvatar *string
		)
		err := rows.Scan(
			&emotion.ID,
			&emotion.UserID,
			&emotion.Color,
			&emotion.Pattern,
			&emotion.MotionIntensity,
			&emotion.CreatedAt,
			&ownerName,
			&ownerAvatar,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan emotion: %w", err)
		}
		if ownerName != nil {
			emotion.Owner = &domain.Owner{Name: *ownerName, Avatar: ownerAvatar}
		}
		emotions = append(emotions, emotion)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read emotions: %w", err)
	}

	return emotions, nil
}
