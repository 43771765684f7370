package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/opjlab/opj-backend/internal/exercise"
	"github.com/opjlab/opj-backend/internal/model"
	"github.com/opjlab/opj-backend/internal/repository"
	"github.com/rs/zerolog"
)

// Training errors.
var (
	ErrInvalidTrainingMode = errors.New("unknown training mode")
	ErrBlockNotInDocument  = errors.New("block does not belong to this document")
)

// TrainingService builds exercises and grades submissions.
type TrainingService struct {
	docRepo    *repository.DocumentRepository
	docService *DocumentService
	mastery    *MasteryService
	resolver   *exercise.ProfileResolver
	log        zerolog.Logger
}

// NewTrainingService creates a new TrainingService.
func NewTrainingService(
	docRepo *repository.DocumentRepository,
	docService *DocumentService,
	mastery *MasteryService,
	log zerolog.Logger,
) *TrainingService {
	return &TrainingService{
		docRepo:    docRepo,
		docService: docService,
		mastery:    mastery,
		resolver:   exercise.NewProfileResolver(),
		log:        log.With().Str("component", "training_service").Logger(),
	}
}

// GenerateExercise builds a masked exercise over a published document. Each
// section resolves its completion profile against the user's average mastery
// so difficulty adapts per learner.
func (s *TrainingService) GenerateExercise(ctx context.Context, userID int, documentID uuid.UUID, req *model.GenerateExerciseRequest) (*model.ExercisePayload, error) {
	mode := model.TrainingMode(req.Mode)
	if !mode.Valid() {
		return nil, ErrInvalidTrainingMode
	}
	level := req.Level
	if level == 0 {
		level = 1
	}

	doc, err := s.docRepo.GetWithContent(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.Status != model.DocumentStatusPublished {
		return nil, ErrDocumentNotPublished
	}

	averages, err := s.mastery.SectionAverages(ctx, userID, documentID)
	if err != nil {
		return nil, fmt.Errorf("section averages: %w", err)
	}

	payload := &model.ExercisePayload{
		DocumentID: doc.ID,
		Title:      doc.Title,
		Reference:  doc.Reference,
		Mode:       mode,
		Level:      level,
	}

	for _, sec := range doc.Sections {
		var avgMastery *int
		if sm, ok := averages[sec.ID]; ok {
			avg := sm.AvgMastery
			avgMastery = &avg
		}

		profile := s.resolver.Resolve(mode, sec.Kind, level, avgMastery)

		es := model.ExerciseSection{
			SectionID: sec.ID,
			Kind:      sec.Kind,
			Title:     sec.Title,
			Mode:      profile.Mode,
			Density:   profile.Density,
			Strategy:  profile.Strategy,
		}

		for _, b := range sec.Blocks {
			es.Blocks = append(es.Blocks, s.buildBlock(b, profile))
		}
		payload.Sections = append(payload.Sections, es)
	}

	s.log.Debug().
		Str("document_id", documentID.String()).
		Int("user_id", userID).
		Str("mode", string(mode)).
		Int("level", level).
		Msg("Exercise generated")
	return payload, nil
}

func (s *TrainingService) buildBlock(b model.Block, profile exercise.ResolvedProfile) model.ExerciseBlock {
	eb := model.ExerciseBlock{BlockID: b.ID}

	switch profile.Mode {
	case model.CompletionReadOnly:
		eb.Text = exercise.StripMarkers(b.Template)

	case model.CompletionGaps:
		gaps := exercise.ExtractGaps(b.ID.String(), b.Template)
		selected := exercise.SelectGaps(gaps, profile.Density, profile.Strategy)

		selectedIDs := make(map[string]struct{}, len(selected))
		for _, g := range selected {
			selectedIDs[g.ID] = struct{}{}
			eb.Blanks = append(eb.Blanks, model.ExerciseBlank{ID: g.ID, Position: g.Position, Length: g.Length})
			eb.TargetBlankIDs = append(eb.TargetBlankIDs, g.ID)
		}
		eb.Text = exercise.MaskTemplate(b.ID.String(), b.Template, selectedIDs)

	case model.CompletionFullRewrite:
		eb.Text = exercise.StripMarkers(b.Template)
	}

	return eb
}

// CheckBlockResult is the outcome of grading a gap submission.
type CheckBlockResult struct {
	exercise.CheckResult
	Mastery int `json:"mastery"`
}

// CheckAnswers grades blank-by-blank answers on one block, records the
// attempt and returns the updated mastery.
func (s *TrainingService) CheckAnswers(ctx context.Context, userID int, documentID, blockID uuid.UUID, req *model.CheckAnswersRequest) (*CheckBlockResult, error) {
	if err := s.verifyBlockOwnership(ctx, documentID, blockID); err != nil {
		return nil, err
	}

	template, err := s.docService.GetTemplate(ctx, documentID, blockID)
	if err != nil {
		return nil, err
	}

	result := exercise.CheckAnswers(blockID.String(), template, req.Answers, req.TargetIDs)

	mode, level := submissionMeta(req.Mode, req.Level)
	answersJSON, _ := json.Marshal(req.Answers)
	mastery, err := s.mastery.RecordAttempt(ctx, userID, blockID, mode, level, result.Score, answersJSON)
	if err != nil {
		return nil, err
	}

	return &CheckBlockResult{CheckResult: result, Mastery: mastery}, nil
}

// ReciteBlockResult is the outcome of grading a free-text recitation.
type ReciteBlockResult struct {
	exercise.DiffResult
	Mastery int `json:"mastery"`
}

// Recite grades a full-rewrite or dictation transcript of one block against
// the reference text, records the attempt and returns the updated mastery.
func (s *TrainingService) Recite(ctx context.Context, userID int, documentID, blockID uuid.UUID, req *model.ReciteRequest) (*ReciteBlockResult, error) {
	if err := s.verifyBlockOwnership(ctx, documentID, blockID); err != nil {
		return nil, err
	}

	template, err := s.docService.GetTemplate(ctx, documentID, blockID)
	if err != nil {
		return nil, err
	}
	reference := exercise.StripMarkers(template)

	result := exercise.DiffWords(reference, req.Text)

	mode, level := submissionMeta(req.Mode, req.Level)
	answersJSON, _ := json.Marshal(map[string]string{"text": req.Text})
	mastery, err := s.mastery.RecordAttempt(ctx, userID, blockID, mode, level, result.Score, answersJSON)
	if err != nil {
		return nil, err
	}

	return &ReciteBlockResult{DiffResult: result, Mastery: mastery}, nil
}

func (s *TrainingService) verifyBlockOwnership(ctx context.Context, documentID, blockID uuid.UUID) error {
	owner, err := s.docRepo.GetBlockDocument(ctx, blockID)
	if err != nil {
		return err
	}
	if owner != documentID {
		return ErrBlockNotInDocument
	}
	return nil
}

func submissionMeta(mode string, level int) (model.TrainingMode, int) {
	m := model.TrainingMode(mode)
	if !m.Valid() {
		m = model.TrainingModeTexteTrou
	}
	if level < 1 || level > 3 {
		level = 1
	}
	return m, level
}
