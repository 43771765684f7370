package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/opjlab/opj-backend/internal/model"
)

// MasteryRepository handles per-(user, block) mastery records.
type MasteryRepository struct {
	pool *pgxpool.Pool
}

// NewMasteryRepository creates a new MasteryRepository.
func NewMasteryRepository(pool *pgxpool.Pool) *MasteryRepository {
	return &MasteryRepository{pool: pool}
}

// Get retrieves the mastery record for one (user, block) pair.
// Returns pgx.ErrNoRows when the user never attempted the block.
func (r *MasteryRepository) Get(ctx context.Context, userID int, blockID uuid.UUID) (*model.Mastery, error) {
	m := &model.Mastery{}
	err := r.pool.QueryRow(ctx,
		`SELECT user_id, block_id, mastery_score, attempt_count, last_attempt_at
		 FROM mastery WHERE user_id = $1 AND block_id = $2`, userID, blockID,
	).Scan(&m.UserID, &m.BlockID, &m.MasteryScore, &m.AttemptCount, &m.LastAttemptAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Upsert writes the folded score and bumps the attempt counter.
func (r *MasteryRepository) Upsert(ctx context.Context, userID int, blockID uuid.UUID, score int) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO mastery (user_id, block_id, mastery_score, attempt_count, last_attempt_at)
		 VALUES ($1, $2, $3, 1, CURRENT_TIMESTAMP)
		 ON CONFLICT (user_id, block_id)
		 DO UPDATE SET mastery_score = $3,
		               attempt_count = mastery.attempt_count + 1,
		               last_attempt_at = CURRENT_TIMESTAMP`,
		userID, blockID, score,
	)
	return err
}

// SectionAverages computes the average mastery per section of a document
// for one user. Sections the user never attempted are absent from the map.
func (r *MasteryRepository) SectionAverages(ctx context.Context, userID int, documentID uuid.UUID) (map[uuid.UUID]model.SectionMastery, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT s.id, ROUND(AVG(m.mastery_score))::int, COUNT(m.block_id)::int
		 FROM sections s
		 JOIN blocks b ON b.section_id = s.id
		 JOIN mastery m ON m.block_id = b.id AND m.user_id = $1
		 WHERE s.document_id = $2
		 GROUP BY s.id`, userID, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	averages := make(map[uuid.UUID]model.SectionMastery)
	for rows.Next() {
		var sm model.SectionMastery
		if err := rows.Scan(&sm.SectionID, &sm.AvgMastery, &sm.BlockCount); err != nil {
			return nil, err
		}
		averages[sm.SectionID] = sm
	}
	return averages, rows.Err()
}

// ListByUserDocument returns all mastery records a user holds on a document's
// blocks, for the progress endpoint.
func (r *MasteryRepository) ListByUserDocument(ctx context.Context, userID int, documentID uuid.UUID) ([]model.Mastery, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT m.user_id, m.block_id, m.mastery_score, m.attempt_count, m.last_attempt_at
		 FROM mastery m
		 JOIN blocks b ON b.id = m.block_id
		 JOIN sections s ON s.id = b.section_id
		 WHERE m.user_id = $1 AND s.document_id = $2
		 ORDER BY s.position, b.position`, userID, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.Mastery
	for rows.Next() {
		var m model.Mastery
		if err := rows.Scan(&m.UserID, &m.BlockID, &m.MasteryScore, &m.AttemptCount, &m.LastAttemptAt); err != nil {
			return nil, err
		}
		records = append(records, m)
	}
	return records, rows.Err()
}

// IsNotFound reports whether err is the no-rows sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
