package exercise

import (
	"math"
	"regexp"
)

// WordVerdict classifies one token of a recitation diff.
type WordVerdict string

const (
	WordCorrect WordVerdict = "correct"
	WordMissing WordVerdict = "missing"
	WordExtra   WordVerdict = "extra"
)

// WordResult is one classified token, in diff order.
type WordResult struct {
	Token   string      `json:"token"`
	Verdict WordVerdict `json:"verdict"`
}

// DiffResult is the outcome of scoring a whole-text recitation.
type DiffResult struct {
	Score int          `json:"score"`
	Words []WordResult `json:"words"`
}

// tokenRe splits text into word tokens (letter/digit runs) and punctuation
// runs.
var tokenRe = regexp.MustCompile(`[\p{L}\p{N}]+|[^\p{L}\p{N}\s]+`)

func tokenize(s string) []string {
	return tokenRe.FindAllString(s, -1)
}

// tokensEqual compares two tokens by normalized form. Pure punctuation
// tokens normalize to the empty string, so those fall back to literal
// comparison.
func tokensEqual(a, b string) bool {
	na, nb := Normalize(a), Normalize(b)
	if na == "" && nb == "" {
		return a == b
	}
	return na == nb
}

// DiffWords aligns the expected and actual texts with a token-level LCS and
// classifies every token: aligned matches are correct, unaligned expected
// tokens are missing, unaligned actual tokens are extra. The score is
// round(100 * correct / len(expectedTokens)), or 100 when the expected text
// has no tokens.
func DiffWords(expected, actual string) DiffResult {
	et := tokenize(expected)
	at := tokenize(actual)

	n, m := len(et), len(at)
	dp := make([][]int, n+1)
	for i := range dp {
		dp[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if tokensEqual(et[i], at[j]) {
				dp[i][j] = dp[i+1][j+1] + 1
			} else if dp[i+1][j] >= dp[i][j+1] {
				dp[i][j] = dp[i+1][j]
			} else {
				dp[i][j] = dp[i][j+1]
			}
		}
	}

	words := make([]WordResult, 0, n+m)
	correct := 0
	i, j := 0, 0
	for i < n && j < m {
		switch {
		case tokensEqual(et[i], at[j]):
			words = append(words, WordResult{Token: et[i], Verdict: WordCorrect})
			correct++
			i++
			j++
		case dp[i+1][j] >= dp[i][j+1]:
			words = append(words, WordResult{Token: et[i], Verdict: WordMissing})
			i++
		default:
			words = append(words, WordResult{Token: at[j], Verdict: WordExtra})
			j++
		}
	}
	for ; i < n; i++ {
		words = append(words, WordResult{Token: et[i], Verdict: WordMissing})
	}
	for ; j < m; j++ {
		words = append(words, WordResult{Token: at[j], Verdict: WordExtra})
	}

	score := 100
	if n > 0 {
		score = int(math.Round(100 * float64(correct) / float64(n)))
	}
	return DiffResult{Score: score, Words: words}
}
