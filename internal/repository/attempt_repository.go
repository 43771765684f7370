package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/opjlab/opj-backend/internal/model"
)

// AttemptRepository handles reads over the immutable attempt log.
// Writes go through the persistence worker.
type AttemptRepository struct {
	pool *pgxpool.Pool
}

// NewAttemptRepository creates a new AttemptRepository.
func NewAttemptRepository(pool *pgxpool.Pool) *AttemptRepository {
	return &AttemptRepository{pool: pool}
}

// ListByUserBlock returns a user's attempts on one block, newest first.
func (r *AttemptRepository) ListByUserBlock(ctx context.Context, userID int, blockID uuid.UUID, limit int) ([]model.Attempt, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, block_id, session_id, mode, level, score, answers, created_at
		 FROM attempts
		 WHERE user_id = $1 AND block_id = $2
		 ORDER BY created_at DESC LIMIT $3`, userID, blockID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attempts []model.Attempt
	for rows.Next() {
		var a model.Attempt
		if err := rows.Scan(&a.ID, &a.UserID, &a.BlockID, &a.SessionID, &a.Mode, &a.Level, &a.Score, &a.Answers, &a.CreatedAt); err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

// ListRecentByUser returns a user's most recent attempts across all documents.
func (r *AttemptRepository) ListRecentByUser(ctx context.Context, userID int, limit int) ([]model.Attempt, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, block_id, session_id, mode, level, score, answers, created_at
		 FROM attempts
		 WHERE user_id = $1
		 ORDER BY created_at DESC LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attempts []model.Attempt
	for rows.Next() {
		var a model.Attempt
		if err := rows.Scan(&a.ID, &a.UserID, &a.BlockID, &a.SessionID, &a.Mode, &a.Level, &a.Score, &a.Answers, &a.CreatedAt); err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

// CountByUser returns the total number of attempts a user has made.
func (r *AttemptRepository) CountByUser(ctx context.Context, userID int) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM attempts WHERE user_id = $1`, userID,
	).Scan(&total)
	return total, err
}
