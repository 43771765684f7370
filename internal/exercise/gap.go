// Package exercise implements the template gap and scoring engine: marker
// extraction, gap selection, masking, difficulty profiles, answer comparison
// and mastery folding. Everything here is a pure function over in-memory
// strings; persistence and transport live in the surrounding layers.
package exercise

import (
	"fmt"
	"regexp"
	"strings"
)

// markerRe matches one [[expected text]] gap marker. Non-greedy, so markers
// never nest or overlap; an unbalanced bracket simply fails to match and the
// surrounding text is treated as literal.
var markerRe = regexp.MustCompile(`\[\[(.*?)\]\]`)

// maxBlankWidth caps the underscore run substituted for a masked gap.
const maxBlankWidth = 20

// Gap is a derived descriptor of one marker occurrence. Gaps are recomputed
// from the template on every call and never persisted, so masking and
// checking always agree on identity.
type Gap struct {
	ID       string `json:"id"`
	Position int    `json:"position"`
	Length   int    `json:"length"`
	Expected string `json:"expected"`
}

// ExtractGaps scans template left to right and returns one Gap per marker,
// in template order. The i-th occurrence gets the stable id "<blockID>_<i>".
// A template without markers yields an empty slice.
func ExtractGaps(blockID, template string) []Gap {
	matches := markerRe.FindAllStringSubmatch(template, -1)
	gaps := make([]Gap, 0, len(matches))
	for i, m := range matches {
		expected := m[1]
		gaps = append(gaps, Gap{
			ID:       GapID(blockID, i),
			Position: i,
			Length:   len([]rune(expected)),
			Expected: expected,
		})
	}
	return gaps
}

// GapID builds the stable id of the i-th gap of a block.
func GapID(blockID string, position int) string {
	return fmt.Sprintf("%s_%d", blockID, position)
}

// MaskTemplate renders template with the selected gaps replaced by underscore
// runs of length min(expectedLength, 20) and every other gap resolved to its
// literal expected text. Literal text between markers is preserved verbatim.
func MaskTemplate(blockID, template string, selected map[string]struct{}) string {
	pos := -1
	return markerRe.ReplaceAllStringFunc(template, func(marker string) string {
		pos++
		expected := marker[2 : len(marker)-2]
		if _, ok := selected[GapID(blockID, pos)]; !ok {
			return expected
		}
		width := len([]rune(expected))
		if width > maxBlankWidth {
			width = maxBlankWidth
		}
		return strings.Repeat("_", width)
	})
}

// StripMarkers removes every marker and returns the literal reference text.
// Used for READ_ONLY and FULL_REWRITE rendering.
func StripMarkers(template string) string {
	return markerRe.ReplaceAllString(template, "$1")
}
