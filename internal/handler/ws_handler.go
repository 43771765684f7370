package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/opjlab/opj-backend/internal/config"
	"github.com/opjlab/opj-backend/internal/exercise"
	"github.com/opjlab/opj-backend/internal/middleware"
	"github.com/opjlab/opj-backend/internal/model"
	"github.com/opjlab/opj-backend/internal/repository"
	"github.com/opjlab/opj-backend/internal/service"
	ws "github.com/opjlab/opj-backend/internal/websocket"
	"github.com/opjlab/opj-backend/internal/worker"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler handles the WebSocket dictation stream.
type WSHandler struct {
	rdb            *redis.Client
	docService     *service.DocumentService
	masteryService *service.MasteryService
	draftRepo      *repository.DraftRepository
	log            zerolog.Logger
	upgrader       websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(
	rdb *redis.Client,
	docService *service.DocumentService,
	masteryService *service.MasteryService,
	draftRepo *repository.DraftRepository,
	log zerolog.Logger,
	allowedOrigins []string,
) *WSHandler {
	return &WSHandler{
		rdb:            rdb,
		docService:     docService,
		masteryService: masteryService,
		draftRepo:      draftRepo,
		log:            log.With().Str("component", "ws_handler").Logger(),
		upgrader:       buildUpgrader(allowedOrigins),
	}
}

// DictationStream godoc
// WS /ws/v1/documents/:document_id/dictation
// Upgrades to WebSocket for real-time dictation autosave and grading.
func (h *WSHandler) DictationStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	documentID, err := uuid.Parse(c.Param("document_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document ID"})
		return
	}

	// Only published documents have a reference payload to dictate against.
	payload, err := h.docService.GetPayload(c.Request.Context(), documentID)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "document not available"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	userID := claims.UserID
	draftsKey := config.CacheKey.DictationDraftKey(documentID.String(), userID)

	wsLog := h.log.With().
		Int("user_id", userID).
		Str("document_id", documentID.String()).
		Logger()

	wsLog.Info().Msg("User connected")

	for {
		var msg ws.RequestPayload
		if err := ws.ReadJSON(conn, &msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			break
		}

		switch msg.Action {
		case ws.ActionAutosave:
			h.handleAutosave(conn, draftsKey, userID, documentID, &msg)
		case ws.ActionSubmit:
			h.handleSubmit(conn, wsLog, draftsKey, userID, payload, &msg)
		case ws.ActionPing:
			ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong})
		default:
			wsLog.Warn().Str("action", string(msg.Action)).Msg("Unknown action")
			ws.WriteError(conn, "unknown action: "+string(msg.Action))
		}
	}
}

// handleAutosave saves a section transcript to Redis and queues it for
// persistence.
func (h *WSHandler) handleAutosave(conn *websocket.Conn, draftsKey string, userID int, documentID uuid.UUID, msg *ws.RequestPayload) {
	ctx := context.Background()

	if msg.SectionID == "" {
		ws.WriteError(conn, "section_id is required")
		return
	}

	// SECURITY: Validate SectionID is a well-formed UUID to prevent Redis key injection.
	if _, err := uuid.Parse(msg.SectionID); err != nil {
		ws.WriteError(conn, "invalid section_id format")
		return
	}

	if err := h.rdb.HSet(ctx, draftsKey, msg.SectionID, msg.Text).Err(); err != nil {
		h.log.Error().Err(err).Int("user_id", userID).Msg("Autosave Redis error")
		ws.WriteError(conn, "save failed")
		return
	}

	payload, _ := json.Marshal(worker.DraftPayload{
		UserID:     userID,
		DocumentID: documentID.String(),
		SectionID:  msg.SectionID,
		Text:       msg.Text,
	})
	h.rdb.RPush(ctx, config.WorkerKey.PersistDraftsQueue(), payload)

	ws.WriteTyped(conn, ws.AutosaveResponse{Event: ws.EventSuccess, Status: "saved"})
}

// handleSubmit grades the section transcript in RAM against the cached
// reference and folds mastery for every block of the section.
func (h *WSHandler) handleSubmit(conn *websocket.Conn, wsLog zerolog.Logger, draftsKey string, userID int, payload *model.DocumentPayload, msg *ws.RequestPayload) {
	ctx := context.Background()

	sectionID, err := uuid.Parse(msg.SectionID)
	if err != nil {
		ws.WriteError(conn, "invalid section_id format")
		return
	}

	section := findSection(payload, sectionID)
	if section == nil {
		ws.WriteError(conn, "section not found in this document")
		return
	}

	// Prefer the submitted text; fall back to the autosaved draft.
	text := msg.Text
	if text == "" {
		saved, err := h.rdb.HGet(ctx, draftsKey, msg.SectionID).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			wsLog.Error().Err(err).Msg("Get draft error")
			ws.WriteError(conn, "failed to get draft")
			return
		}
		text = saved
	}

	reference := sectionReference(section)
	result := exercise.DiffWords(reference, text)

	// The dictation covers the whole section; every block folds the same score.
	answersJSON, _ := json.Marshal(map[string]string{"text": text})
	for _, block := range section.Blocks {
		if _, err := h.masteryService.RecordAttempt(ctx, userID, block.BlockID, model.TrainingModeDictee, 1, result.Score, answersJSON); err != nil {
			wsLog.Error().Err(err).Str("block_id", block.BlockID.String()).Msg("Record attempt error")
		}
	}

	// Clear the draft now that it is graded.
	h.rdb.HDel(ctx, draftsKey, msg.SectionID)
	if err := h.draftRepo.Delete(ctx, userID, sectionID); err != nil {
		wsLog.Debug().Err(err).Msg("Delete persisted draft failed")
	}

	wsLog.Info().
		Int("score", result.Score).
		Str("section_id", msg.SectionID).
		Msg("Dictation submitted and graded")

	ws.WriteTyped(conn, ws.GradedResponse{
		Event:   ws.EventGraded,
		Status:  "completed",
		Score:   result.Score,
		Details: result.Words,
	})
}

func findSection(payload *model.DocumentPayload, sectionID uuid.UUID) *model.SectionPayload {
	for i := range payload.Sections {
		if payload.Sections[i].SectionID == sectionID {
			return &payload.Sections[i]
		}
	}
	return nil
}

// sectionReference joins a section's block texts into the dictation target.
func sectionReference(section *model.SectionPayload) string {
	parts := make([]string, 0, len(section.Blocks))
	for _, b := range section.Blocks {
		parts = append(parts, b.Text)
	}
	return strings.Join(parts, "\n")
}
