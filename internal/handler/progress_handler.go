package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/opjlab/opj-backend/internal/middleware"
	"github.com/opjlab/opj-backend/internal/response"
	"github.com/opjlab/opj-backend/internal/service"
)

// ProgressHandler exposes a user's mastery and attempt history.
type ProgressHandler struct {
	masteryService *service.MasteryService
	accessService  *service.AccessService
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(masteryService *service.MasteryService, accessService *service.AccessService) *ProgressHandler {
	return &ProgressHandler{
		masteryService: masteryService,
		accessService:  accessService,
	}
}

// GetDocumentProgress godoc
// GET /api/v1/progress/documents/:document_id
// Returns per-section averages and per-block mastery for one document.
func (h *ProgressHandler) GetDocumentProgress(c *gin.Context) {
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

	progress, err := h.masteryService.GetDocumentProgress(c.Request.Context(), claims.UserID, documentID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"progress": progress})
}

// GetRecentAttempts godoc
// GET /api/v1/progress/attempts?limit=20
// Returns the user's latest graded attempts.
func (h *ProgressHandler) GetRecentAttempts(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	attempts, err := h.masteryService.RecentAttempts(c.Request.Context(), claims.UserID, limit)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"attempts": attempts})
}

// GetQuota godoc
// GET /api/v1/progress/quota
// Returns how many document opens remain today (-1 means unlimited).
func (h *ProgressHandler) GetQuota(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	remaining, err := h.accessService.RemainingQuota(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"remaining": remaining})
}
