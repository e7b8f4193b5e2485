// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package legend

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	// \P and \X break paragraphs; \~ is a non-breaking space.
	paragraphRe = regexp.MustCompile(`\\[PX]`)
	nbspRe      = regexp.MustCompile(`\\~`)

	// \S1/2; \S1^2; \S1#2; stacked fractions keep their text.
	stackRe = regexp.MustCompile(`\\S([^;\\{}]*);`)

	// Formatting tags that carry a parameter up to ';' (\H0.7x; \C131; \fArial|b0;).
	paramTagRe = regexp.MustCompile(`\\[ACFHQTWfpa][^;\\{}]*;`)

	// On/off toggles for underline, overline, strike-through.
	toggleRe = regexp.MustCompile(`\\[LlOoKkN]`)

	dashReplacer = strings.NewReplacer(
		"–", "-", // en dash
		"—", "-", // em dash
		"‒", "-", // figure dash
		"―", "-", // horizontal bar
		"−", "-", // minus sign
	)
)

// Normalize strips drawing-annotation markup from raw text. Paragraph
// escapes become newlines, formatting tags and braces are removed, dash
// variants become '-', and horizontal whitespace collapses to one space.
// Lines are trimmed and empty lines dropped so the result stays
// line-oriented. Normalize is idempotent.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	s := norm.NFKC.String(raw)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	s = paragraphRe.ReplaceAllString(s, "\n")
	s = nbspRe.ReplaceAllString(s, " ")
	s = stackRe.ReplaceAllStringFunc(s, func(m string) string {
		inner := stackRe.FindStringSubmatch(m)[1]
		return strings.NewReplacer("^", "/", "#", "/").Replace(inner)
	})
	s = paramTagRe.ReplaceAllString(s, "")
	s = toggleRe.ReplaceAllString(s, "")
	s = strings.Map(func(r rune) rune {
		switch r {
		case '\\', '{', '}':
			return -1
		}
		return r
	}, s)

	// Removing markup can leave combining marks next to their base rune.
	s = norm.NFKC.String(s)
	s = dashReplacer.Replace(s)

	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, line := range lines {
		if collapsed := strings.Join(strings.Fields(line), " "); collapsed != "" {
			out = append(out, collapsed)
		}
	}
	return strings.Join(out, "\n")
}
