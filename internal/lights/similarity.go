// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lights

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/pdiddy/legend-engine/internal/link"
)

// Similarity scores text against a category name on a 0-100 scale. It is
// the best of three views: token overlap, the category appearing as a
// token run inside the text, and a character ratio over the sorted tokens
// so word order does not matter.
func Similarity(text, category string) float64 {
	overlap := link.TokenOverlap(text, category, 3)
	ratio := sortedTokenRatio(text, category)

	contained := 0.0
	nt, nc := link.NormalizeName(text), link.NormalizeName(category)
	if nc != "" && strings.Contains(" "+nt+" ", " "+nc+" ") {
		contained = 1
	}
	return 100 * math.Max(overlap, math.Max(contained, ratio))
}

// sortedTokenRatio is 1 - indel/(len(a)+len(b)) over the tokens of a and b
// sorted and joined with spaces, counting runes.
func sortedTokenRatio(a, b string) float64 {
	sa, sb := sortedTokens(a), sortedTokens(b)
	if sa == sb {
		if sa == "" {
			return 0
		}
		return 1
	}
	if sa == "" || sb == "" {
		return 0
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(sa, sb, false)
	indel := 0
	for _, d := range diffs {
		if d.Type != diffmatchpatch.DiffEqual {
			indel += utf8.RuneCountInString(d.Text)
		}
	}
	total := utf8.RuneCountInString(sa) + utf8.RuneCountInString(sb)
	return 1 - float64(indel)/float64(total)
}

func sortedTokens(s string) string {
	toks := link.Tokens(s)
	sort.Strings(toks)
	return strings.Join(toks, " ")
}
