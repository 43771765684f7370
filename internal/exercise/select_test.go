package exercise

import (
	"fmt"
	"testing"

	"github.com/opjlab/opj-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkGaps(expected ...string) []Gap {
	gaps := make([]Gap, len(expected))
	for i, e := range expected {
		gaps[i] = Gap{
			ID:       fmt.Sprintf("b_%d", i),
			Position: i,
			Length:   len([]rune(e)),
			Expected: e,
		}
	}
	return gaps
}

func TestSelectGapsCount(t *testing.T) {
	gaps := mkGaps("un", "deux", "trois", "quatre", "cinq", "six", "sept", "huit", "neuf", "dix")

	tests := []struct {
		density float64
		want    int
	}{
		{0.0, 1}, // at least one gap when any exist
		{0.1, 1},
		{0.25, 3}, // round(2.5) = 3
		{0.5, 5},
		{1.0, 10},
	}
	for _, tt := range tests {
		got := SelectGaps(gaps, tt.density, model.StrategyAll)
		assert.Len(t, got, tt.want, "density %v", tt.density)
	}
}

func TestSelectGapsEmpty(t *testing.T) {
	assert.Nil(t, SelectGaps(nil, 0.5, model.StrategyAll))
}

func TestSelectGapsOrderPreserving(t *testing.T) {
	gaps := mkGaps("alpha", "beta", "gamma", "delta")
	got := SelectGaps(gaps, 1.0, model.StrategyAll)
	require.Len(t, got, 4)
	for i, g := range got {
		assert.Equal(t, i, g.Position)
	}
}

func TestSelectGapsArticlesOnly(t *testing.T) {
	gaps := mkGaps("article 63-1", "flagrance", "art. 77", "perquisition", "15 jours")

	got := SelectGaps(gaps, 0.6, model.StrategyArticlesOnly) // count = 3
	require.Len(t, got, 3)
	assert.Equal(t, "article 63-1", got[0].Expected)
	assert.Equal(t, "art. 77", got[1].Expected)
	assert.Equal(t, "15 jours", got[2].Expected)
}

func TestSelectGapsKeywords(t *testing.T) {
	// Keywords exclude gaps containing digits and gaps shorter than 4 runes.
	gaps := mkGaps("flagrance", "art 77", "vol", "perquisition")

	got := SelectGaps(gaps, 0.5, model.StrategyKeywords) // count = 2
	require.Len(t, got, 2)
	assert.Equal(t, "flagrance", got[0].Expected)
	assert.Equal(t, "perquisition", got[1].Expected)
}

func TestSelectGapsFallback(t *testing.T) {
	// Only one gap matches ARTICLES_ONLY; fallback appends the rest in
	// template order to reach the count.
	gaps := mkGaps("flagrance", "article 53", "perquisition", "saisie")

	got := SelectGaps(gaps, 0.75, model.StrategyArticlesOnly) // count = 3
	require.Len(t, got, 3)
	assert.Equal(t, "article 53", got[0].Expected)
	assert.Equal(t, "flagrance", got[1].Expected)
	assert.Equal(t, "perquisition", got[2].Expected)
}

func TestSelectGapsFallbackExhausts(t *testing.T) {
	gaps := mkGaps("a", "b")
	got := SelectGaps(gaps, 1.0, model.StrategyKeywords) // pool empty, fallback all
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Expected)
	assert.Equal(t, "b", got[1].Expected)
}

func TestSelectGapsDeterministic(t *testing.T) {
	gaps := mkGaps("article 63-1", "flagrance", "art. 77", "perquisition")
	first := SelectGaps(gaps, 0.5, model.StrategyArticlesOnly)
	second := SelectGaps(gaps, 0.5, model.StrategyArticlesOnly)
	assert.Equal(t, first, second)
}
