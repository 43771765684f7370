package exercise

import (
	"math"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)

// Normalize prepares a string for comparison: lowercase, NFD decomposition
// with combining marks stripped (so "procédure" and "procedure" compare
// equal), every non [a-z0-9] rune replaced by a space, whitespace collapsed
// and trimmed.
func Normalize(s string) string {
	s = strings.ToLower(s)

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	if stripped, _, err := transform.String(t, s); err == nil {
		s = stripped
	}

	s = nonAlnumRe.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// Levenshtein returns the character-level edit distance between a and b,
// computed over runes with the classic two-row dynamic program.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

// IsCorrect compares an expected string against a user answer: exact match
// after normalization, otherwise an edit distance within the 10% tolerance
// band floor(len(normalizedExpected)/10).
func IsCorrect(expected, actual string) bool {
	ne := Normalize(expected)
	na := Normalize(actual)
	if ne == na {
		return true
	}
	tolerance := len([]rune(ne)) / 10
	return Levenshtein(ne, na) <= tolerance
}

// BlankResult is the verdict for a single scored blank.
type BlankResult struct {
	BlankID  string `json:"blank_id"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
	Correct  bool   `json:"correct"`
}

// CheckResult is the outcome of scoring a block's blanks.
type CheckResult struct {
	Score   int           `json:"score"`
	Details []BlankResult `json:"details"`
}

// CheckAnswers extracts the block's gaps fresh from the template and scores
// the supplied answers. When targetIDs is non-empty only those gaps are
// scored; otherwise every gap is. Zero scored gaps yield a vacuous 100.
func CheckAnswers(blockID, template string, answers map[string]string, targetIDs []string) CheckResult {
	gaps := ExtractGaps(blockID, template)

	var targets map[string]struct{}
	if len(targetIDs) > 0 {
		targets = make(map[string]struct{}, len(targetIDs))
		for _, id := range targetIDs {
			targets[id] = struct{}{}
		}
	}

	details := make([]BlankResult, 0, len(gaps))
	correct := 0
	for _, g := range gaps {
		if targets != nil {
			if _, ok := targets[g.ID]; !ok {
				continue
			}
		}
		actual := answers[g.ID]
		ok := IsCorrect(g.Expected, actual)
		if ok {
			correct++
		}
		details = append(details, BlankResult{
			BlankID:  g.ID,
			Expected: g.Expected,
			Actual:   actual,
			Correct:  ok,
		})
	}

	score := 100
	if len(details) > 0 {
		score = int(math.Round(100 * float64(correct) / float64(len(details))))
	}
	return CheckResult{Score: score, Details: details}
}
