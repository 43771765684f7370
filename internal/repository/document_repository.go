package repository

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/opjlab/opj-backend/internal/model"
)

// DocumentRepository handles document, section and block data access.
type DocumentRepository struct {
	pool *pgxpool.Pool
}

// NewDocumentRepository creates a new DocumentRepository.
func NewDocumentRepository(pool *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{pool: pool}
}

// GetByID retrieves a document shell without its sections.
func (r *DocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Document, error) {
	d := &model.Document{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, reference, status, author_id, created_at, updated_at
		 FROM documents WHERE id = $1`, id,
	).Scan(&d.ID, &d.Title, &d.Reference, &d.Status, &d.AuthorID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// GetWithContent retrieves a document with its full section and block tree,
// ordered by position.
func (r *DocumentRepository) GetWithContent(ctx context.Context, id uuid.UUID) (*model.Document, error) {
	d, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	sections, err := r.loadSections(ctx, id)
	if err != nil {
		return nil, err
	}
	d.Sections = sections
	return d, nil
}

func (r *DocumentRepository) loadSections(ctx context.Context, documentID uuid.UUID) ([]model.Section, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, document_id, kind, title, position
		 FROM sections WHERE document_id = $1 ORDER BY position`, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []model.Section
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var s model.Section
		if err := rows.Scan(&s.ID, &s.DocumentID, &s.Kind, &s.Title, &s.Position); err != nil {
			return nil, err
		}
		index[s.ID] = len(sections)
		sections = append(sections, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(sections) == 0 {
		return sections, nil
	}

	blockRows, err := r.pool.Query(ctx,
		`SELECT b.id, b.section_id, b.position, b.template, b.tags, b.legal_framework
		 FROM blocks b
		 JOIN sections s ON s.id = b.section_id
		 WHERE s.document_id = $1
		 ORDER BY s.position, b.position`, documentID)
	if err != nil {
		return nil, err
	}
	defer blockRows.Close()

	for blockRows.Next() {
		var b model.Block
		if err := blockRows.Scan(&b.ID, &b.SectionID, &b.Position, &b.Template, &b.Tags, &b.LegalFramework); err != nil {
			return nil, err
		}
		if i, ok := index[b.SectionID]; ok {
			sections[i].Blocks = append(sections[i].Blocks, b)
		}
	}
	return sections, blockRows.Err()
}

// ListPaginated retrieves documents with pagination and optional status filter.
func (r *DocumentRepository) ListPaginated(ctx context.Context, status *model.DocumentStatus, limit, offset int) ([]model.Document, int, error) {
	// 1. Get total count
	countQuery := `SELECT COUNT(*) FROM documents`
	var countArgs []interface{}
	if status != nil {
		countQuery += ` WHERE status = $1`
		countArgs = append(countArgs, *status)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	// 2. Get paginated data
	query := `SELECT id, title, reference, status, author_id, created_at, updated_at FROM documents`
	var args []interface{}
	argIdx := 1

	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, *status)
		argIdx++
	}

	query += ` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(argIdx) + ` OFFSET $` + strconv.Itoa(argIdx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var docs []model.Document
	for rows.Next() {
		var d model.Document
		if err := rows.Scan(&d.ID, &d.Title, &d.Reference, &d.Status, &d.AuthorID, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, 0, err
		}
		docs = append(docs, d)
	}
	return docs, total, rows.Err()
}

// ListPublished returns all documents with PUBLISHED status.
// Used for cache prewarming on application startup.
func (r *DocumentRepository) ListPublished(ctx context.Context) ([]model.Document, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, reference, status, author_id, created_at, updated_at
		 FROM documents WHERE status = $1
		 ORDER BY created_at DESC`, model.DocumentStatusPublished)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []model.Document
	for rows.Next() {
		var d model.Document
		if err := rows.Scan(&d.ID, &d.Title, &d.Reference, &d.Status, &d.AuthorID, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// Create inserts a new document shell in DRAFT status.
func (r *DocumentRepository) Create(ctx context.Context, d *model.Document) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO documents (title, reference, status, author_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		d.Title, d.Reference, d.Status, d.AuthorID,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
}

// Update modifies a document's title and reference.
func (r *DocumentRepository) Update(ctx context.Context, d *model.Document) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE documents SET title = $1, reference = $2, updated_at = CURRENT_TIMESTAMP WHERE id = $3`,
		d.Title, d.Reference, d.ID,
	)
	return err
}

// UpdateStatus updates a document's publication status.
func (r *DocumentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.DocumentStatus) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE documents SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id)
	return err
}

// Delete removes a document; sections and blocks cascade.
func (r *DocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	return err
}

// ReplaceContent swaps the document's entire section tree in one transaction.
func (r *DocumentRepository) ReplaceContent(ctx context.Context, documentID uuid.UUID, sections []model.Section) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM sections WHERE document_id = $1`, documentID); err != nil {
		return err
	}

	for i := range sections {
		s := &sections[i]
		s.DocumentID = documentID
		if err := tx.QueryRow(ctx,
			`INSERT INTO sections (document_id, kind, title, position)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id`,
			s.DocumentID, s.Kind, s.Title, s.Position,
		).Scan(&s.ID); err != nil {
			return err
		}

		for j := range s.Blocks {
			b := &s.Blocks[j]
			b.SectionID = s.ID
			if err := tx.QueryRow(ctx,
				`INSERT INTO blocks (section_id, position, template, tags, legal_framework)
				 VALUES ($1, $2, $3, $4, $5)
				 RETURNING id`,
				b.SectionID, b.Position, b.Template, b.Tags, b.LegalFramework,
			).Scan(&b.ID); err != nil {
				return err
			}
		}
	}

	if _, err := tx.Exec(ctx,
		`UPDATE documents SET updated_at = CURRENT_TIMESTAMP WHERE id = $1`, documentID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// GetSection retrieves one section with its blocks.
func (r *DocumentRepository) GetSection(ctx context.Context, sectionID uuid.UUID) (*model.Section, error) {
	s := &model.Section{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, document_id, kind, title, position
		 FROM sections WHERE id = $1`, sectionID,
	).Scan(&s.ID, &s.DocumentID, &s.Kind, &s.Title, &s.Position)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, section_id, position, template, tags, legal_framework
		 FROM blocks WHERE section_id = $1 ORDER BY position`, sectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var b model.Block
		if err := rows.Scan(&b.ID, &b.SectionID, &b.Position, &b.Template, &b.Tags, &b.LegalFramework); err != nil {
			return nil, err
		}
		s.Blocks = append(s.Blocks, b)
	}
	return s, rows.Err()
}

// GetBlock retrieves one block by ID.
func (r *DocumentRepository) GetBlock(ctx context.Context, blockID uuid.UUID) (*model.Block, error) {
	b := &model.Block{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, section_id, position, template, tags, legal_framework
		 FROM blocks WHERE id = $1`, blockID,
	).Scan(&b.ID, &b.SectionID, &b.Position, &b.Template, &b.Tags, &b.LegalFramework)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// GetBlockDocument resolves the owning document ID of a block.
func (r *DocumentRepository) GetBlockDocument(ctx context.Context, blockID uuid.UUID) (uuid.UUID, error) {
	var documentID uuid.UUID
	err := r.pool.QueryRow(ctx,
		`SELECT s.document_id FROM blocks b JOIN sections s ON s.id = b.section_id WHERE b.id = $1`,
		blockID,
	).Scan(&documentID)
	return documentID, err
}
