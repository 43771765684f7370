package service

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/opjlab/opj-backend/internal/exercise"
	"github.com/opjlab/opj-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBlock(template string) model.Block {
	return model.Block{ID: uuid.New(), Template: template}
}

func TestBuildBlockReadOnlyStripsMarkers(t *testing.T) {
	s := &TrainingService{}
	b := testBlock("Vu l'article [[63-1]] du code de procédure pénale,")

	eb := s.buildBlock(b, exercise.ResolvedProfile{Mode: model.CompletionReadOnly})

	assert.Equal(t, "Vu l'article 63-1 du code de procédure pénale,", eb.Text)
	assert.Empty(t, eb.Blanks)
	assert.Empty(t, eb.TargetBlankIDs)
}

func TestBuildBlockFullRewriteCarriesReferenceText(t *testing.T) {
	s := &TrainingService{}
	b := testBlock("Vu l'article [[63-1]] du code")

	eb := s.buildBlock(b, exercise.ResolvedProfile{Mode: model.CompletionFullRewrite})

	assert.Equal(t, "Vu l'article 63-1 du code", eb.Text)
	assert.Empty(t, eb.Blanks)
}

func TestBuildBlockGapsBlanksAndTargets(t *testing.T) {
	s := &TrainingService{}
	b := testBlock("Vu les articles [[62-2]] et [[63-1]] du code,")

	eb := s.buildBlock(b, exercise.ResolvedProfile{
		Mode:     model.CompletionGaps,
		Density:  1.0,
		Strategy: model.StrategyAll,
	})

	require.Len(t, eb.Blanks, 2)
	assert.Equal(t, exercise.GapID(b.ID.String(), 0), eb.Blanks[0].ID)
	assert.Equal(t, 0, eb.Blanks[0].Position)
	assert.Equal(t, len([]rune("62-2")), eb.Blanks[0].Length)
	assert.Equal(t, 1, eb.Blanks[1].Position)

	// Every blank is a scoring target, in the same order.
	require.Len(t, eb.TargetBlankIDs, 2)
	for i, blank := range eb.Blanks {
		assert.Equal(t, blank.ID, eb.TargetBlankIDs[i])
	}

	assert.Equal(t, "Vu les articles ____ et ____ du code,", eb.Text)
	assert.False(t, strings.Contains(eb.Text, "[["))
}
