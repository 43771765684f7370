package exercise

import (
	"math"
	"strings"
	"unicode"

	"github.com/opjlab/opj-backend/internal/model"
)

// SelectGaps chooses which gaps become blanks. The target count is
// max(1, round(len(gaps)*density)); the strategy filters the candidate pool
// first, and when the filtered pool is too small the remaining gaps are
// appended in template order until the count is reached or all gaps are
// used. The result preserves template order within the pool.
func SelectGaps(gaps []Gap, density float64, strategy model.GapStrategy) []Gap {
	if len(gaps) == 0 {
		return nil
	}

	count := int(math.Round(float64(len(gaps)) * density))
	if count < 1 {
		count = 1
	}

	pool := filterGaps(gaps, strategy)

	if len(pool) < count {
		inPool := make(map[string]struct{}, len(pool))
		for _, g := range pool {
			inPool[g.ID] = struct{}{}
		}
		for _, g := range gaps {
			if len(pool) >= count {
				break
			}
			if _, ok := inPool[g.ID]; !ok {
				pool = append(pool, g)
			}
		}
	}

	if count > len(pool) {
		count = len(pool)
	}
	return pool[:count]
}

// filterGaps applies the strategy heuristics. These are deliberately the
// crude digit/substring checks the scoring behavior depends on; do not
// refine them.
func filterGaps(gaps []Gap, strategy model.GapStrategy) []Gap {
	switch strategy {
	case model.StrategyArticlesOnly:
		out := make([]Gap, 0, len(gaps))
		for _, g := range gaps {
			if containsDigit(g.Expected) || strings.Contains(strings.ToLower(g.Expected), "art") {
				out = append(out, g)
			}
		}
		return out
	case model.StrategyKeywords:
		out := make([]Gap, 0, len(gaps))
		for _, g := range gaps {
			if !containsDigit(g.Expected) && len([]rune(g.Expected)) >= 4 {
				out = append(out, g)
			}
		}
		return out
	default:
		// ALL or unspecified: the full gap list is the pool.
		out := make([]Gap, len(gaps))
		copy(out, gaps)
		return out
	}
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
