// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lights

import (
	"regexp"
	"strings"

	"github.com/pdiddy/legend-engine/internal/legend"
	"github.com/pdiddy/legend-engine/pkg/types"
)

// Counter tallies lighting items by canonical category.
type Counter struct {
	classifier *Classifier
}

// NewCounter creates a counter backed by c.
func NewCounter(c *Classifier) *Counter {
	return &Counter{classifier: c}
}

// CountLines classifies each line and adds one to its category. Lines that
// are not lighting items leave the counts unchanged.
func (n *Counter) CountLines(lines []string) types.LightCounts {
	var counts types.LightCounts
	for _, line := range lines {
		if m, ok := n.classifier.Classify(line); ok {
			counts.Add(m.Category, m.Group.Label(), 1)
		}
	}
	return counts
}

// Categorize returns the matches of the lighting terms among terms, in
// input order. Non-lighting terms are omitted.
func (n *Counter) Categorize(terms []string) []types.LightMatch {
	var out []types.LightMatch
	for _, t := range terms {
		if m, ok := n.classifier.Classify(t); ok {
			out = append(out, m)
		}
	}
	return out
}

// CountOccurrences counts whole-word, case-insensitive occurrences of each
// lighting term in raw and adds them under the term's category. The legend
// row itself counts as an occurrence. Terms never found add nothing.
func (n *Counter) CountOccurrences(raw string, terms []string) types.LightCounts {
	text := legend.Normalize(raw)
	var counts types.LightCounts
	for _, m := range n.Categorize(terms) {
		c := len(termPattern(m.Input).FindAllStringIndex(text, -1))
		if c == 0 {
			continue
		}
		counts.Add(m.Category, m.Group.Label(), c)
	}
	return counts
}

// termPattern matches term as whole words with any whitespace between them.
func termPattern(term string) *regexp.Regexp {
	words := strings.Fields(term)
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	expr := strings.Join(words, `\s+`)
	if wordByte(term, true) {
		expr = `\b` + expr
	}
	if wordByte(term, false) {
		expr += `\b`
	}
	return regexp.MustCompile(`(?i)` + expr)
}

// wordByte reports whether the first (or last) byte of the trimmed term is
// an ASCII word character, where \b can anchor.
func wordByte(term string, first bool) bool {
	t := strings.TrimSpace(term)
	if t == "" {
		return false
	}
	b := t[len(t)-1]
	if first {
		b = t[0]
	}
	return b == '_' || (b >= '0' && b <= '9') || (b|0x20 >= 'a' && b|0x20 <= 'z')
}
