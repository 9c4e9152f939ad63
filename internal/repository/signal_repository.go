package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"resonance-api/internal/domain"
	"resonance-api/pkg/database"
)

type SignalRepository struct {
	db *database.PostgresDB
}

func NewSignalRepository(db *database.PostgresDB) *SignalRepository {
	return &SignalRepository{db: db}
}

// Create inserts a new emotional signal and fills in the server-assigned id
// and timestamp.
func (r *SignalRepository) Create(ctx context.Context, signal *domain.EmotionalSignal) error {
	query := `
		INSERT INTO emotional_signals (user_id, color, motion, intensity, silence_duration)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, timestamp
	`

	err := r.db.Pool.QueryRow(ctx, query,
		signal.UserID,
		signal.Color,
		signal.Motion,
		signal.Intensity,
		signal.SilenceDuration,
	).Scan(&signal.ID, &signal.Timestamp)

	if err != nil {
		return fmt.Errorf("failed to create signal: %w", err)
	}

	return nil
}

// Feed returns a page of all users' signals, newest first. The owner
// expansion carries the avatar only: the signal feed deliberately omits
// names.
func (r *SignalRepository) Feed(ctx context.Context, limit, offset int) ([]domain.EmotionalSignal, error) {
	query := `
		SELECT s.id, s.user_id, s.color, s.motion, s.intensity, s.silence_duration, s.timestamp,
		       u.avatar
		FROM emotional_signals s
		LEFT JOIN users u ON u.id = s.user_id
		ORDER BY s.timestamp DESC, s.id DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list signal feed: %w", err)
	}
	defer rows.Close()

	return scanSignals(rows)
}

// History returns the caller's own signals, newest first, capped at limit.
func (r *SignalRepository) History(ctx context.Context, userID string, limit int) ([]domain.EmotionalSignal, error) {
	query := `
		SELECT s.id, s.user_id, s.color, s.motion, s.intensity, s.silence_duration, s.timestamp,
		       u.avatar
		FROM emotional_signals s
		LEFT JOIN users u ON u.id = s.user_id
		WHERE s.user_id = $1
		ORDER BY s.timestamp DESC, s.id DESC
		LIMIT $2
	`

	rows, err := r.db.Pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list signal history: %w", err)
	}
	defer rows.Close()

	return scanSignals(rows)
}

// Delete removes a signal only when it belongs to userID, as a single
// atomic filtered delete. Returns false both for a missing id and a
// non-owned record.
func (r *SignalRepository) Delete(ctx context.Context, id, userID string) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx,
		`DELETE FROM emotional_signals WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete signal: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanSignals(rows pgx.Rows) ([]domain.EmotionalSignal, error) {
	var signals []domain.EmotionalSignal
	for rows.Next() {
		var (
			signal      domain.EmotionalSignal
			ownerAvatar *string
		)
		err := rows.Scan(
			&signal.ID,
			&signal.UserID,
			&signal.Color,
			&signal.Motion,
			&signal.Intensity,
			&signal.SilenceDuration,
			&signal.Timestamp,
			&ownerAvatar,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan signal: %w", err)
		}
		if ownerAvatar != nil {
			signal.Owner = &domain.SignalOwner{Avatar: ownerAvatar}
		}
		signals = append(signals, signal)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read signals: %w", err)
	}

	return signals, nil
}
