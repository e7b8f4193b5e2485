// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package legend

import (
	"regexp"
	"strings"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pdiddy/legend-engine/pkg/types"
)

var (
	// 12.  12)  12 : numbered rows. The rest must not start with a digit,
	// so decimals like 12.5W stay intact.
	numberPrefixRe = regexp.MustCompile(`^(\d{1,3})(?:\s*[.)]\s*|\s+)`)

	// L2  DL-03.  SW1)  : short alphanumeric symbol codes.
	codePrefixRe = regexp.MustCompile(`^([A-Z]{1,3}-?\d{1,3})(?:\s*[.):-]\s*|\s+)`)

	bulletPrefixRe = regexp.MustCompile(`^[-*•·▪●○◦►]+\s*`)

	segmentSplitRe = regexp.MustCompile(`[\n|,]`)
)

// Filter turns a legend chunk into legend entries by stripping code and
// bullet prefixes and running each segment through the rule table.
type Filter struct {
	rules  []Rule
	logger *zap.Logger
}

// NewFilter creates a filter for the given limits and vocabulary.
func NewFilter(cfg types.ExtractionConfig, v types.Vocabulary, opts ...Option) *Filter {
	o := applyOptions(opts)
	return &Filter{rules: NewRules(cfg, v), logger: o.logger}
}

// Rules returns the filter's rule table in evaluation order.
func (f *Filter) Rules() []Rule {
	return append([]Rule(nil), f.rules...)
}

// Check returns the first rule that rejects segment.
func (f *Filter) Check(segment string) (Rule, bool) {
	for _, r := range f.rules {
		if r.Test(segment) {
			return r, true
		}
	}
	return Rule{}, false
}

// Apply splits chunk into segments and returns the surviving entries in
// input order together with a rejection trace. Duplicates are not removed
// here.
func (f *Filter) Apply(chunk string) ([]types.LegendEntry, []types.Rejection) {
	var (
		entries    []types.LegendEntry
		rejections []types.Rejection
	)
	for _, seg := range Segments(chunk) {
		code, text := StripPrefix(seg)
		if text == "" {
			continue
		}
		if r, rejected := f.Check(text); rejected {
			f.logger.Debug("segment rejected",
				zap.String("segment", text), zap.String("rule", r.Name))
			rejections = append(rejections, types.Rejection{
				Segment: text,
				Rule:    r.Name,
				Reason:  r.Reason,
			})
			continue
		}
		entries = append(entries, types.LegendEntry{Code: code, Term: TitleCase(text)})
	}
	return entries, rejections
}

// Segments splits text on newlines, pipes and commas, dropping blanks.
func Segments(text string) []string {
	var out []string
	for _, s := range segmentSplitRe.Split(text, -1) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// StripPrefix removes a leading row number, symbol code or bullet from
// segment and returns the code (empty for bullets) and the cleaned text.
func StripPrefix(segment string) (code, text string) {
	s := strings.TrimSpace(segment)

	if m := numberPrefixRe.FindStringSubmatch(s); m != nil && !isDecimal(m[0], s[len(m[0]):]) {
		code, s = m[1], s[len(m[0]):]
	} else if m := codePrefixRe.FindStringSubmatch(s); m != nil && !isDecimal(m[0], s[len(m[0]):]) {
		code, s = m[1], s[len(m[0]):]
	}
	s = bulletPrefixRe.ReplaceAllString(s, "")

	return code, trimPunct(s)
}

// TitleCase upper-cases the first letter of each word and collapses inner
// whitespace.
func TitleCase(s string) string {
	caser := cases.Title(language.English)
	return caser.String(strings.Join(strings.Fields(s), " "))
}

func trimPunct(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(".,;:-_*•·|/\\=~", r)
	})
}

// isDecimal reports whether a prefix ending in a bare '.' runs straight
// into more digits, as in "12.5W".
func isDecimal(prefix, rest string) bool {
	return strings.HasSuffix(prefix, ".") && startsWithDigit(rest)
}

func startsWithDigit(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}
