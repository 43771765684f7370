package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/opjlab/opj-backend/internal/config"
	"github.com/opjlab/opj-backend/internal/exercise"
	"github.com/opjlab/opj-backend/internal/model"
	"github.com/opjlab/opj-backend/internal/repository"
	"github.com/opjlab/opj-backend/internal/worker"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// MasteryService folds graded attempts into mastery records and queues the
// immutable attempt log for batched persistence.
type MasteryService struct {
	masteryRepo *repository.MasteryRepository
	attemptRepo *repository.AttemptRepository
	rdb         *redis.Client
	log         zerolog.Logger
}

// NewMasteryService creates a new MasteryService.
func NewMasteryService(
	masteryRepo *repository.MasteryRepository,
	attemptRepo *repository.AttemptRepository,
	rdb *redis.Client,
	log zerolog.Logger,
) *MasteryService {
	return &MasteryService{
		masteryRepo: masteryRepo,
		attemptRepo: attemptRepo,
		rdb:         rdb,
		log:         log.With().Str("component", "mastery_service").Logger(),
	}
}

// RecordAttempt folds the score into the (user, block) mastery record and
// queues the attempt for the persistence worker. The fold is a synchronous
// read-modify-write; concurrent attempts resolve last-write-wins.
func (s *MasteryService) RecordAttempt(ctx context.Context, userID int, blockID uuid.UUID, mode model.TrainingMode, level, score int, answers json.RawMessage) (int, error) {
	folded := score
	current, err := s.masteryRepo.Get(ctx, userID, blockID)
	if err == nil {
		folded = exercise.FoldScore(current.MasteryScore, score)
	} else if !repository.IsNotFound(err) {
		return 0, fmt.Errorf("get mastery: %w", err)
	}

	if err := s.masteryRepo.Upsert(ctx, userID, blockID, folded); err != nil {
		return 0, fmt.Errorf("upsert mastery: %w", err)
	}

	payload := worker.AttemptPayload{
		UserID:  userID,
		BlockID: blockID.String(),
		Mode:    string(mode),
		Level:   level,
		Score:   score,
		Answers: answers,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return folded, fmt.Errorf("marshal attempt: %w", err)
	}
	if err := s.rdb.RPush(ctx, config.WorkerKey.PersistAttemptsQueue(), raw).Err(); err != nil {
		// The fold already landed; losing the log entry is tolerable.
		s.log.Error().Err(err).Int("user_id", userID).Msg("Queue attempt failed")
	}

	return folded, nil
}

// SectionAverages returns per-section mastery averages for one document.
func (s *MasteryService) SectionAverages(ctx context.Context, userID int, documentID uuid.UUID) (map[uuid.UUID]model.SectionMastery, error) {
	return s.masteryRepo.SectionAverages(ctx, userID, documentID)
}

// DocumentProgress is a user's progress overview on one document.
type DocumentProgress struct {
	DocumentID uuid.UUID              `json:"document_id"`
	Sections   []model.SectionMastery `json:"sections"`
	Blocks     []model.Mastery        `json:"blocks"`
}

// GetDocumentProgress assembles the per-section and per-block mastery view.
func (s *MasteryService) GetDocumentProgress(ctx context.Context, userID int, documentID uuid.UUID) (*DocumentProgress, error) {
	averages, err := s.masteryRepo.SectionAverages(ctx, userID, documentID)
	if err != nil {
		return nil, err
	}
	blocks, err := s.masteryRepo.ListByUserDocument(ctx, userID, documentID)
	if err != nil {
		return nil, err
	}

	progress := &DocumentProgress{DocumentID: documentID}
	for _, sm := range averages {
		progress.Sections = append(progress.Sections, sm)
	}
	progress.Blocks = blocks
	return progress, nil
}

// RecentAttempts returns a user's latest attempts across all documents.
func (s *MasteryService) RecentAttempts(ctx context.Context, userID, limit int) ([]model.Attempt, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	attempts, err := s.attemptRepo.ListRecentByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	if attempts == nil {
		attempts = []model.Attempt{}
	}
	return attempts, nil
}
