package exercise

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func verdicts(words []WordResult) map[WordVerdict][]string {
	out := make(map[WordVerdict][]string)
	for _, w := range words {
		out[w.Verdict] = append(out[w.Verdict], w.Token)
	}
	return out
}

func TestDiffWordsSubstitution(t *testing.T) {
	res := DiffWords("le chat noir", "le chien noir")

	v := verdicts(res.Words)
	assert.Equal(t, []string{"le", "noir"}, v[WordCorrect])
	assert.Equal(t, []string{"chat"}, v[WordMissing])
	assert.Equal(t, []string{"chien"}, v[WordExtra])
	assert.Equal(t, 67, res.Score) // round(100*2/3)
}

func TestDiffWordsExact(t *testing.T) {
	res := DiffWords("nous soussigné officier", "nous soussigné officier")
	assert.Equal(t, 100, res.Score)
	for _, w := range res.Words {
		assert.Equal(t, WordCorrect, w.Verdict)
	}
}

func TestDiffWordsNormalizedMatch(t *testing.T) {
	res := DiffWords("procédure pénale", "Procedure PENALE")
	assert.Equal(t, 100, res.Score)
}

func TestDiffWordsOmission(t *testing.T) {
	res := DiffWords("vu les articles du code", "vu les articles")

	v := verdicts(res.Words)
	assert.Equal(t, []string{"vu", "les", "articles"}, v[WordCorrect])
	assert.Equal(t, []string{"du", "code"}, v[WordMissing])
	assert.Empty(t, v[WordExtra])
	assert.Equal(t, 60, res.Score) // round(100*3/5)
}

func TestDiffWordsInsertion(t *testing.T) {
	res := DiffWords("garde à vue", "la garde à vue")

	v := verdicts(res.Words)
	assert.Equal(t, []string{"la"}, v[WordExtra])
	assert.Equal(t, 100, res.Score) // all 3 expected tokens aligned
}

func TestDiffWordsEmptyExpected(t *testing.T) {
	res := DiffWords("", "quelque chose")
	assert.Equal(t, 100, res.Score)

	v := verdicts(res.Words)
	assert.Equal(t, []string{"quelque", "chose"}, v[WordExtra])
}

func TestDiffWordsEmptyActual(t *testing.T) {
	res := DiffWords("un deux", "")
	assert.Equal(t, 0, res.Score)

	v := verdicts(res.Words)
	assert.Equal(t, []string{"un", "deux"}, v[WordMissing])
}

func TestDiffWordsPunctuationTokens(t *testing.T) {
	res := DiffWords("vu, les articles.", "vu, les articles.")
	assert.Equal(t, 100, res.Score)
	require.Len(t, res.Words, 5) // vu , les articles .
}
