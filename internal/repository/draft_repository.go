package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/opjlab/opj-backend/internal/model"
)

// DraftRepository handles persisted dictation drafts.
type DraftRepository struct {
	pool *pgxpool.Pool
}

// NewDraftRepository creates a new DraftRepository.
func NewDraftRepository(pool *pgxpool.Pool) *DraftRepository {
	return &DraftRepository{pool: pool}
}

// Get retrieves a user's draft on one section.
func (r *DraftRepository) Get(ctx context.Context, userID int, sectionID uuid.UUID) (*model.DictationDraft, error) {
	d := &model.DictationDraft{}
	err := r.pool.QueryRow(ctx,
		`SELECT user_id, document_id, section_id, text, updated_at
		 FROM dictation_drafts WHERE user_id = $1 AND section_id = $2`, userID, sectionID,
	).Scan(&d.UserID, &d.DocumentID, &d.SectionID, &d.Text, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// ListByUserDocument returns all drafts a user holds on a document.
func (r *DraftRepository) ListByUserDocument(ctx context.Context, userID int, documentID uuid.UUID) ([]model.DictationDraft, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT user_id, document_id, section_id, text, updated_at
		 FROM dictation_drafts WHERE user_id = $1 AND document_id = $2
		 ORDER BY updated_at DESC`, userID, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drafts []model.DictationDraft
	for rows.Next() {
		var d model.DictationDraft
		if err := rows.Scan(&d.UserID, &d.DocumentID, &d.SectionID, &d.Text, &d.UpdatedAt); err != nil {
			return nil, err
		}
		drafts = append(drafts, d)
	}
	return drafts, rows.Err()
}

// Delete removes a user's draft on one section, used after grading.
func (r *DraftRepository) Delete(ctx context.Context, userID int, sectionID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM dictation_drafts WHERE user_id = $1 AND section_id = $2`, userID, sectionID)
	return err
}
