package exercise

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Article 63-1", "article 63 1"},
		{"procédure", "procedure"},
		{"  GARDE   À   VUE  ", "garde a vue"},
		{"l'officier", "l officier"},
		{"", ""},
		{"...", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "input %q", tt.in)
	}
}

func TestLevenshtein(t *testing.T) {
	assert.Equal(t, 0, Levenshtein("abc", "abc"))
	assert.Equal(t, 1, Levenshtein("abc", "abd"))
	assert.Equal(t, 3, Levenshtein("", "abc"))
	assert.Equal(t, 3, Levenshtein("abc", ""))
	assert.Equal(t, 1, Levenshtein("chat", "chats"))
	// Runes, not bytes: é ↔ e is a single edit.
	assert.Equal(t, 1, Levenshtein("pénale", "penale"))
}

func TestIsCorrect(t *testing.T) {
	// Whitespace and case normalization.
	assert.True(t, IsCorrect("Article 63-1", "article   63-1"))
	// Diacritic stripping.
	assert.True(t, IsCorrect("procédure", "procedure"))
	// 10% tolerance band: floor(10*0.10) = 1.
	assert.True(t, IsCorrect("abcdefghij", "abcdefghix"))
	assert.False(t, IsCorrect("abcdefghij", "abcdefghxx"))
	// Short expected strings get zero tolerance.
	assert.False(t, IsCorrect("vol", "vom"))
	assert.True(t, IsCorrect("vol", "VOL"))
}

func TestCheckAnswersAllTargets(t *testing.T) {
	template := "Vu l'article [[63-1]] relatif à la [[garde à vue]]"

	res := CheckAnswers("b1", template, map[string]string{
		"b1_0": "63-1",
		"b1_1": "garde a vue",
	}, nil)

	assert.Equal(t, 100, res.Score)
	require.Len(t, res.Details, 2)
	assert.True(t, res.Details[0].Correct)
	assert.True(t, res.Details[1].Correct)
}

func TestCheckAnswersPartial(t *testing.T) {
	template := "Vu l'article [[63-1]] relatif à la [[garde à vue]]"

	res := CheckAnswers("b1", template, map[string]string{
		"b1_0": "77",
		"b1_1": "garde à vue",
	}, nil)

	assert.Equal(t, 50, res.Score)
	require.Len(t, res.Details, 2)
	assert.False(t, res.Details[0].Correct)
	assert.Equal(t, "63-1", res.Details[0].Expected)
	assert.Equal(t, "77", res.Details[0].Actual)
	assert.True(t, res.Details[1].Correct)
}

func TestCheckAnswersTargetFilter(t *testing.T) {
	template := "[[un]] [[deux]] [[trois]]"

	res := CheckAnswers("b1", template, map[string]string{
		"b1_1": "deux",
	}, []string{"b1_1"})

	assert.Equal(t, 100, res.Score)
	require.Len(t, res.Details, 1)
	assert.Equal(t, "b1_1", res.Details[0].BlankID)
}

func TestCheckAnswersMissingAnswerIncorrect(t *testing.T) {
	template := "[[flagrance]]"

	res := CheckAnswers("b1", template, map[string]string{}, nil)

	assert.Equal(t, 0, res.Score)
	require.Len(t, res.Details, 1)
	assert.False(t, res.Details[0].Correct)
}

func TestCheckAnswersNoGapsVacuous(t *testing.T) {
	res := CheckAnswers("b1", "aucun marqueur", nil, nil)
	assert.Equal(t, 100, res.Score)
	assert.Empty(t, res.Details)
}
