package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/opjlab/opj-backend/internal/config"
	"github.com/opjlab/opj-backend/internal/exercise"
	"github.com/opjlab/opj-backend/internal/model"
	"github.com/opjlab/opj-backend/internal/repository"
	"github.com/opjlab/opj-backend/internal/response"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Domain Errors
var (
	ErrNotDocumentAuthor    = errors.New("not the author of this document")
	ErrDocumentEmpty        = errors.New("document has no sections, cannot publish")
	ErrDocumentNotDraft     = errors.New("document status is not DRAFT")
	ErrDocumentNotPublished = errors.New("document status is not PUBLISHED")
)

// DocumentService handles document business logic and Redis caching.
type DocumentService struct {
	docRepo *repository.DocumentRepository
	rdb     *redis.Client
	log     zerolog.Logger
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(docRepo *repository.DocumentRepository, rdb *redis.Client, log zerolog.Logger) *DocumentService {
	return &DocumentService{
		docRepo: docRepo,
		rdb:     rdb,
		log:     log.With().Str("component", "document_service").Logger(),
	}
}

// GetByID retrieves a document shell by its UUID.
func (s *DocumentService) GetByID(ctx context.Context, id uuid.UUID) (*model.Document, error) {
	return s.docRepo.GetByID(ctx, id)
}

// GetWithContent retrieves a document with its full section tree.
func (s *DocumentService) GetWithContent(ctx context.Context, id uuid.UUID) (*model.Document, error) {
	return s.docRepo.GetWithContent(ctx, id)
}

// List retrieves documents with pagination and optional status filter.
func (s *DocumentService) List(ctx context.Context, status *model.DocumentStatus, page, perPage int) ([]model.Document, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	limit := perPage
	offset := (page - 1) * perPage

	docs, total, err := s.docRepo.ListPaginated(ctx, status, limit, offset)
	if err != nil {
		return nil, nil, err
	}

	if docs == nil {
		docs = []model.Document{}
	}

	totalPages := (total + perPage - 1) / perPage

	pagination := &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: totalPages,
	}

	return docs, pagination, nil
}

// Create inserts a new document as DRAFT.
func (s *DocumentService) Create(ctx context.Context, doc *model.Document) error {
	doc.Status = model.DocumentStatusDraft
	return s.docRepo.Create(ctx, doc)
}

// Update renames a document. Only the author may modify it.
func (s *DocumentService) Update(ctx context.Context, id uuid.UUID, authorID int, req *model.UpdateDocumentRequest) (*model.Document, error) {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.AuthorID != authorID {
		return nil, ErrNotDocumentAuthor
	}

	doc.Title = req.Title
	doc.Reference = req.Reference
	if err := s.docRepo.Update(ctx, doc); err != nil {
		return nil, err
	}

	// Published documents keep their cache in sync with the new metadata.
	if doc.Status == model.DocumentStatusPublished {
		if err := s.WarmDocumentCache(ctx, doc.ID); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// ReplaceContent swaps a draft document's entire section tree.
func (s *DocumentService) ReplaceContent(ctx context.Context, id uuid.UUID, authorID int, req *model.ReplaceContentRequest) error {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if doc.AuthorID != authorID {
		return ErrNotDocumentAuthor
	}
	if doc.Status != model.DocumentStatusDraft {
		return ErrDocumentNotDraft
	}

	sections := make([]model.Section, len(req.Sections))
	for i, sr := range req.Sections {
		sections[i] = model.Section{
			Kind:     model.SectionKind(sr.Kind),
			Title:    sr.Title,
			Position: sr.Position,
		}
		for _, br := range sr.Blocks {
			sections[i].Blocks = append(sections[i].Blocks, model.Block{
				Position:       br.Position,
				Template:       br.Template,
				Tags:           br.Tags,
				LegalFramework: br.LegalFramework,
			})
		}
	}

	return s.docRepo.ReplaceContent(ctx, id, sections)
}

// Publish changes document status to PUBLISHED and caches the payload in Redis.
func (s *DocumentService) Publish(ctx context.Context, documentID uuid.UUID, authorID int) error {
	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return fmt.Errorf("get document: %w", err)
	}

	if doc.AuthorID != authorID {
		return ErrNotDocumentAuthor
	}
	if doc.Status != model.DocumentStatusDraft {
		return ErrDocumentNotDraft
	}

	// Prewarm cache for this document.
	if err := s.WarmDocumentCache(ctx, documentID); err != nil {
		return err
	}

	// Update status in PostgreSQL.
	if err := s.docRepo.UpdateStatus(ctx, documentID, model.DocumentStatusPublished); err != nil {
		return fmt.Errorf("update status: %w", err)
	}

	s.log.Info().Str("document_id", documentID.String()).Msg("Document published")
	return nil
}

// Unpublish reverts a document to DRAFT and drops its caches.
func (s *DocumentService) Unpublish(ctx context.Context, documentID uuid.UUID, authorID int) error {
	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return fmt.Errorf("get document: %w", err)
	}

	if doc.AuthorID != authorID {
		return ErrNotDocumentAuthor
	}
	if doc.Status != model.DocumentStatusPublished {
		return ErrDocumentNotPublished
	}

	if err := s.docRepo.UpdateStatus(ctx, documentID, model.DocumentStatusDraft); err != nil {
		return fmt.Errorf("update status: %w", err)
	}

	pipe := s.rdb.Pipeline()
	pipe.Del(ctx, config.CacheKey.DocumentPayloadKey(documentID.String()))
	pipe.Del(ctx, config.CacheKey.DocumentTemplatesKey(documentID.String()))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("drop caches: %w", err)
	}

	s.log.Info().Str("document_id", documentID.String()).Msg("Document unpublished")
	return nil
}

// Delete removes a document and its caches. Only the author may delete it.
func (s *DocumentService) Delete(ctx context.Context, documentID uuid.UUID, authorID int) error {
	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return err
	}
	if doc.AuthorID != authorID {
		return ErrNotDocumentAuthor
	}

	if err := s.docRepo.Delete(ctx, documentID); err != nil {
		return err
	}

	pipe := s.rdb.Pipeline()
	pipe.Del(ctx, config.CacheKey.DocumentPayloadKey(documentID.String()))
	pipe.Del(ctx, config.CacheKey.DocumentTemplatesKey(documentID.String()))
	_, _ = pipe.Exec(ctx)
	return nil
}

// WarmDocumentCache loads a document's reference payload and raw templates
// from PostgreSQL into Redis. The payload is the learner-facing rendering
// with gap markers stripped; the templates hash keeps the marked source for
// exercise generation and grading.
func (s *DocumentService) WarmDocumentCache(ctx context.Context, documentID uuid.UUID) error {
	doc, err := s.docRepo.GetWithContent(ctx, documentID)
	if err != nil {
		return fmt.Errorf("get document content: %w", err)
	}
	if len(doc.Sections) == 0 {
		return ErrDocumentEmpty
	}

	payload := model.DocumentPayload{
		DocumentID: doc.ID,
		Title:      doc.Title,
		Reference:  doc.Reference,
	}

	templates := make(map[string]interface{})
	for _, sec := range doc.Sections {
		sp := model.SectionPayload{
			SectionID: sec.ID,
			Kind:      sec.Kind,
			Title:     sec.Title,
		}
		for _, b := range sec.Blocks {
			sp.Blocks = append(sp.Blocks, model.BlockPayload{
				BlockID: b.ID,
				Text:    exercise.StripMarkers(b.Template),
			})
			templates[b.ID.String()] = b.Template
		}
		payload.Sections = append(payload.Sections, sp)
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	// Cache both atomically via pipeline.
	pipe := s.rdb.Pipeline()
	pipe.Set(ctx, config.CacheKey.DocumentPayloadKey(doc.ID.String()), payloadJSON, 0)
	pipe.Del(ctx, config.CacheKey.DocumentTemplatesKey(doc.ID.String()))
	pipe.HSet(ctx, config.CacheKey.DocumentTemplatesKey(doc.ID.String()), templates)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache to redis: %w", err)
	}

	s.log.Debug().
		Str("document_id", doc.ID.String()).
		Int("sections", len(doc.Sections)).
		Msg("Cache warmed")
	return nil
}

// PrewarmAllCaches loads all published documents into Redis on application
// startup. This prevents lazy-loading races under first-request traffic.
func (s *DocumentService) PrewarmAllCaches(ctx context.Context) error {
	docs, err := s.docRepo.ListPublished(ctx)
	if err != nil {
		return fmt.Errorf("list published documents: %w", err)
	}

	if len(docs) == 0 {
		s.log.Info().Msg("No published documents to prewarm")
		return nil
	}

	s.log.Info().Int("count", len(docs)).Msg("Prewarming published documents...")
	warmed := 0
	for _, doc := range docs {
		if err := s.WarmDocumentCache(ctx, doc.ID); err != nil {
			s.log.Error().Err(err).Str("document_id", doc.ID.String()).Msg("Prewarm failed")
			continue
		}
		warmed++
	}

	s.log.Info().Int("warmed", warmed).Msg("Prewarm complete")
	return nil
}

// GetPayload returns the cached reference rendering of a published document.
// Falls back to warming the cache when the key is missing.
func (s *DocumentService) GetPayload(ctx context.Context, documentID uuid.UUID) (*model.DocumentPayload, error) {
	key := config.CacheKey.DocumentPayloadKey(documentID.String())
	raw, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("get payload cache: %w", err)
		}

		doc, derr := s.docRepo.GetByID(ctx, documentID)
		if derr != nil {
			return nil, derr
		}
		if doc.Status != model.DocumentStatusPublished {
			return nil, ErrDocumentNotPublished
		}
		if werr := s.WarmDocumentCache(ctx, documentID); werr != nil {
			return nil, werr
		}
		raw, err = s.rdb.Get(ctx, key).Result()
		if err != nil {
			return nil, fmt.Errorf("get payload cache after warm: %w", err)
		}
	}

	payload := &model.DocumentPayload{}
	if err := json.Unmarshal([]byte(raw), payload); err != nil {
		return nil, fmt.Errorf("unmarshal payload: %w", err)
	}
	return payload, nil
}

// GetTemplate returns the raw marked template of one block from the cache,
// falling back to PostgreSQL on a miss.
func (s *DocumentService) GetTemplate(ctx context.Context, documentID, blockID uuid.UUID) (string, error) {
	key := config.CacheKey.DocumentTemplatesKey(documentID.String())
	tmpl, err := s.rdb.HGet(ctx, key, blockID.String()).Result()
	if err == nil {
		return tmpl, nil
	}
	if !errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("get template cache: %w", err)
	}

	block, err := s.docRepo.GetBlock(ctx, blockID)
	if err != nil {
		return "", err
	}
	return block.Template, nil
}
