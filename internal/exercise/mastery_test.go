package exercise

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoldScore(t *testing.T) {
	// round(80*0.3 + 40*0.7) = round(24 + 28) = 52
	assert.Equal(t, 52, FoldScore(80, 40))
	// Stationary when scores repeat.
	assert.Equal(t, 80, FoldScore(80, 80))
	// Biased toward the newest attempt.
	assert.Equal(t, 70, FoldScore(0, 100))
	assert.Equal(t, 30, FoldScore(100, 0))
	assert.Equal(t, 0, FoldScore(0, 0))
	assert.Equal(t, 100, FoldScore(100, 100))
}
