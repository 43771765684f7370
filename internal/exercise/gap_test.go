package exercise

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTemplate = "Vu les articles [[63-1]] et [[77]] du [[code de procédure pénale]], nous procédons à l'audition."

func TestExtractGaps(t *testing.T) {
	gaps := ExtractGaps("b1", sampleTemplate)
	require.Len(t, gaps, 3)

	assert.Equal(t, "b1_0", gaps[0].ID)
	assert.Equal(t, 0, gaps[0].Position)
	assert.Equal(t, "63-1", gaps[0].Expected)
	assert.Equal(t, 4, gaps[0].Length)

	assert.Equal(t, "b1_1", gaps[1].ID)
	assert.Equal(t, "77", gaps[1].Expected)

	assert.Equal(t, "b1_2", gaps[2].ID)
	assert.Equal(t, 2, gaps[2].Position)
	// Length counts runes, not bytes.
	assert.Equal(t, 24, gaps[2].Length)
}

func TestExtractGapsIdempotent(t *testing.T) {
	first := ExtractGaps("b1", sampleTemplate)
	second := ExtractGaps("b1", sampleTemplate)
	assert.Equal(t, first, second)
}

func TestExtractGapsEmpty(t *testing.T) {
	assert.Empty(t, ExtractGaps("b1", ""))
	assert.Empty(t, ExtractGaps("b1", "aucun marqueur ici"))
	// Unbalanced brackets are literal text, not gaps.
	assert.Empty(t, ExtractGaps("b1", "ouvert [[jamais fermé"))
}

func TestStripMarkers(t *testing.T) {
	got := StripMarkers(sampleTemplate)
	assert.Equal(t, "Vu les articles 63-1 et 77 du code de procédure pénale, nous procédons à l'audition.", got)
}

func TestMaskTemplateNoneSelected(t *testing.T) {
	// No selection masks nothing: identical to the stripped reference text.
	got := MaskTemplate("b1", sampleTemplate, nil)
	assert.Equal(t, StripMarkers(sampleTemplate), got)
}

func TestMaskTemplateAllSelected(t *testing.T) {
	selected := map[string]struct{}{}
	for _, g := range ExtractGaps("b1", sampleTemplate) {
		selected[g.ID] = struct{}{}
	}

	got := MaskTemplate("b1", sampleTemplate, selected)
	assert.Equal(t, "Vu les articles ____ et __ du ____________________, nous procédons à l'audition.", got)
}

func TestMaskTemplateBlankWidthCapped(t *testing.T) {
	long := "[[une très longue expression attendue dépassant la limite]]"
	selected := map[string]struct{}{"b1_0": {}}
	got := MaskTemplate("b1", long, selected)
	assert.Equal(t, "____________________", got)
}

func TestMaskTemplatePartialSelection(t *testing.T) {
	selected := map[string]struct{}{"b1_1": {}}
	got := MaskTemplate("b1", sampleTemplate, selected)
	assert.Equal(t, "Vu les articles 63-1 et __ du code de procédure pénale, nous procédons à l'audition.", got)
}

func TestMaskRoundTrip(t *testing.T) {
	// Re-extracting from the original template and re-selecting the same
	// ids must reproduce the same masked output.
	gaps := ExtractGaps("b1", sampleTemplate)
	selected := map[string]struct{}{gaps[0].ID: {}, gaps[2].ID: {}}

	first := MaskTemplate("b1", sampleTemplate, selected)

	again := ExtractGaps("b1", sampleTemplate)
	reselected := map[string]struct{}{again[0].ID: {}, again[2].ID: {}}
	second := MaskTemplate("b1", sampleTemplate, reselected)

	assert.Equal(t, first, second)
}
