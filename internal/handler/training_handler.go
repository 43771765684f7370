package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/opjlab/opj-backend/internal/middleware"
	"github.com/opjlab/opj-backend/internal/model"
	"github.com/opjlab/opj-backend/internal/repository"
	"github.com/opjlab/opj-backend/internal/response"
	"github.com/opjlab/opj-backend/internal/service"
	"github.com/opjlab/opj-backend/internal/validator"
)

// TrainingHandler handles exercise generation and grading endpoints.
type TrainingHandler struct {
	trainingService *service.TrainingService
}

// NewTrainingHandler creates a new TrainingHandler.
func NewTrainingHandler(trainingService *service.TrainingService) *TrainingHandler {
	return &TrainingHandler{trainingService: trainingService}
}

// GenerateExercise godoc
// POST /api/v1/documents/:document_id/exercise
// Builds a masked exercise over a published document, adapted to the
// learner's mastery.
func (h *TrainingHandler) GenerateExercise(c *gin.Context) {
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

	var req model.GenerateExerciseRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	payload, err := h.trainingService.GenerateExercise(c.Request.Context(), claims.UserID, documentID, &req)
	if err != nil {
		h.failTrainingError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"exercise": payload})
}

// CheckAnswers godoc
// POST /api/v1/documents/:document_id/blocks/:block_id/check
// Grades blank-by-blank answers on one block and folds mastery.
func (h *TrainingHandler) CheckAnswers(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	documentID, blockID, ok := h.parseIDs(c)
	if !ok {
		return
	}

	var req model.CheckAnswersRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.trainingService.CheckAnswers(c.Request.Context(), claims.UserID, documentID, blockID, &req)
	if err != nil {
		h.failTrainingError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"result": result})
}

// Recite godoc
// POST /api/v1/documents/:document_id/blocks/:block_id/recite
// Grades a free-text recitation of one block with a word diff.
func (h *TrainingHandler) Recite(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	documentID, blockID, ok := h.parseIDs(c)
	if !ok {
		return
	}

	var req model.ReciteRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.trainingService.Recite(c.Request.Context(), claims.UserID, documentID, blockID, &req)
	if err != nil {
		h.failTrainingError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"result": result})
}

func (h *TrainingHandler) parseIDs(c *gin.Context) (documentID, blockID uuid.UUID, ok bool) {
	documentID, err := uuid.Parse(c.Param("document_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return uuid.Nil, uuid.Nil, false
	}
	blockID, err = uuid.Parse(c.Param("block_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return uuid.Nil, uuid.Nil, false
	}
	return documentID, blockID, true
}

func (h *TrainingHandler) failTrainingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidTrainingMode):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidTrainingMode)
	case errors.Is(err, service.ErrDocumentNotPublished):
		response.Fail(c, http.StatusForbidden, response.ErrDocumentNotPublished)
	case errors.Is(err, service.ErrBlockNotInDocument):
		response.Fail(c, http.StatusNotFound, response.ErrBlockNotFound)
	case repository.IsNotFound(err):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
