package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/opjlab/opj-backend/internal/middleware"
	"github.com/opjlab/opj-backend/internal/model"
	"github.com/opjlab/opj-backend/internal/response"
	"github.com/opjlab/opj-backend/internal/service"
	"github.com/opjlab/opj-backend/internal/validator"
)

// DocumentHandler handles document management and reading endpoints.
type DocumentHandler struct {
	docService *service.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(docService *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{docService: docService}
}

// ────────────────────────────────────────────────────────────────────────────
// Admin endpoints
// ────────────────────────────────────────────────────────────────────────────

// ListDocuments godoc
// GET /api/v1/admin/documents
// Lists documents with pagination and optional ?status= filter.
func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	var status *model.DocumentStatus
	if raw := c.Query("status"); raw != "" {
		st := model.DocumentStatus(raw)
		if st != model.DocumentStatusDraft && st != model.DocumentStatusPublished {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
			return
		}
		status = &st
	}

	docs, pagination, err := h.docService.List(c.Request.Context(), status, page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"documents": docs}, pagination)
}

// GetDocument godoc
// GET /api/v1/admin/documents/:document_id
// Returns a document with its full section and block tree.
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	documentID, err := uuid.Parse(c.Param("document_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	doc, err := h.docService.GetWithContent(c.Request.Context(), documentID)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"document": doc})
}

// CreateDocument godoc
// POST /api/v1/admin/documents
// Creates a new draft document shell.
func (h *DocumentHandler) CreateDocument(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.CreateDocumentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	doc := &model.Document{
		Title:     req.Title,
		Reference: req.Reference,
		AuthorID:  claims.UserID,
	}

	if err := h.docService.Create(c.Request.Context(), doc); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"document": doc})
}

// UpdateDocument godoc
// PUT /api/v1/admin/documents/:document_id
// Renames a document.
func (h *DocumentHandler) UpdateDocument(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	documentID, err := uuid.Parse(c.Param("document_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateDocumentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	doc, err := h.docService.Update(c.Request.Context(), documentID, claims.UserID, &req)
	if err != nil {
		h.failDocumentError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"document": doc})
}

// ReplaceContent godoc
// PUT /api/v1/admin/documents/:document_id/content
// Replaces a draft document's entire section tree.
func (h *DocumentHandler) ReplaceContent(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	documentID, err := uuid.Parse(c.Param("document_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.ReplaceContentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.docService.ReplaceContent(c.Request.Context(), documentID, claims.UserID, &req); err != nil {
		h.failDocumentError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "contenu remplacé"})
}

// PublishDocument godoc
// POST /api/v1/admin/documents/:document_id/publish
// Publishes a document: warms the Redis caches, changes status.
func (h *DocumentHandler) PublishDocument(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	documentID, err := uuid.Parse(c.Param("document_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.docService.Publish(c.Request.Context(), documentID, claims.UserID); err != nil {
		h.failDocumentError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "document publié"})
}

// UnpublishDocument godoc
// POST /api/v1/admin/documents/:document_id/unpublish
// Reverts a document to DRAFT and drops its caches.
func (h *DocumentHandler) UnpublishDocument(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	documentID, err := uuid.Parse(c.Param("document_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.docService.Unpublish(c.Request.Context(), documentID, claims.UserID); err != nil {
		h.failDocumentError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "document dépublié"})
}

// RefreshDocumentCache godoc
// POST /api/v1/admin/documents/:document_id/refresh-cache
// Re-warms the Redis caches of a published document.
func (h *DocumentHandler) RefreshDocumentCache(c *gin.Context) {
	documentID, err := uuid.Parse(c.Param("document_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	doc, err := h.docService.GetByID(c.Request.Context(), documentID)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	if doc.Status != model.DocumentStatusPublished {
		response.Fail(c, http.StatusBadRequest, response.ErrDocumentNotPublished)
		return
	}

	if err := h.docService.WarmDocumentCache(c.Request.Context(), documentID); err != nil {
		h.failDocumentError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "cache rafraîchi"})
}

// DeleteDocument godoc
// DELETE /api/v1/admin/documents/:document_id
// Deletes a document and its caches.
func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	documentID, err := uuid.Parse(c.Param("document_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.docService.Delete(c.Request.Context(), documentID, claims.UserID); err != nil {
		h.failDocumentError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// ────────────────────────────────────────────────────────────────────────────
// User endpoints
// ────────────────────────────────────────────────────────────────────────────

// ListPublishedDocuments godoc
// GET /api/v1/documents
// Lists published documents for learners.
func (h *DocumentHandler) ListPublishedDocuments(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	status := model.DocumentStatusPublished
	docs, pagination, err := h.docService.List(c.Request.Context(), &status, page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"documents": docs}, pagination)
}

// GetDocumentPayload godoc
// GET /api/v1/documents/:document_id
// Returns the cached reference rendering of a published document.
// Counts against the free tier's daily quota.
func (h *DocumentHandler) GetDocumentPayload(c *gin.Context) {
	documentID, err := uuid.Parse(c.Param("document_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	payload, err := h.docService.GetPayload(c.Request.Context(), documentID)
	if err != nil {
		if errors.Is(err, service.ErrDocumentNotPublished) {
			response.Fail(c, http.StatusForbidden, response.ErrDocumentNotPublished)
			return
		}
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"document": payload})
}

func (h *DocumentHandler) failDocumentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotDocumentAuthor):
		response.Fail(c, http.StatusForbidden, response.ErrNotDocumentAuthor)
	case errors.Is(err, service.ErrDocumentEmpty):
		response.Fail(c, http.StatusBadRequest, response.ErrDocumentEmpty)
	case errors.Is(err, service.ErrDocumentNotDraft):
		response.Fail(c, http.StatusBadRequest, response.ErrDocumentNotDraft)
	case errors.Is(err, service.ErrDocumentNotPublished):
		response.Fail(c, http.StatusBadRequest, response.ErrDocumentNotPublished)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
