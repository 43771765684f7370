package exercise

import "math"

// Fixed EMA weights: the newest attempt dominates. These feed the profile
// resolver's difficulty adaptation, so the 0.7/0.3 split and the rounding
// must not change.
const (
	priorWeight    = 0.3
	newScoreWeight = 0.7
)

// FoldScore folds a new attempt score into an existing mastery score with a
// fixed-weight exponential moving average, rounded to the nearest integer.
func FoldScore(prev, next int) int {
	return int(math.Round(float64(prev)*priorWeight + float64(next)*newScoreWeight))
}
