// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package legend

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pdiddy/legend-engine/pkg/types"
)

// Rule is one entry of the filter's rejection table. Test returns true when
// the segment must be rejected.
type Rule struct {
	Name   string
	Reason string
	Test   func(segment string) bool
}

// Rule names as recorded in rejections.
const (
	RuleStopTerm     = "stop_term"
	RuleTooLong      = "too_long"
	RuleTooManyWords = "too_many_words"
	RuleNoAlpha      = "no_alpha"
	RuleDigitRun     = "digit_run"
	RuleDateLike     = "date_like"
	RuleDimension    = "dimension"
	RuleQuoted       = "quoted"
	RuleElevation    = "elevation"
	RuleBoilerplate  = "boilerplate"
	RuleRoomName     = "room_name"
	RuleAllCapsCode  = "all_caps_code"
	RuleStructural   = "structural"
	RuleLocale       = "locale"
	RuleMissingHint  = "missing_hint"
)

var (
	digitRunRe  = regexp.MustCompile(`\d{3,}`)
	dateLikeRe  = regexp.MustCompile(`\b\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4}\b`)
	feetInchRe  = regexp.MustCompile(`\d\s*['′"″]`)
	crossDimRe  = regexp.MustCompile(`\d\s*[xX×*]\s*\d`)
	metricDimRe = regexp.MustCompile(`(?i)\d\s*(mm|cm|m|mtr|ft|in)\b`)
	levelMarkRe = regexp.MustCompile(`[+±]\s?\d`)
	allCapsRe   = regexp.MustCompile(`^[A-Z0-9-]+$`)
)

// NewRules builds the ordered rejection table from the extraction limits and
// vocabulary. The first rule whose test returns true rejects a segment.
func NewRules(cfg types.ExtractionConfig, v types.Vocabulary) []Rule {
	stopTerms := make(map[string]bool, len(v.StopTerms))
	for _, t := range v.StopTerms {
		stopTerms[strings.ToLower(strings.TrimSpace(t))] = true
	}
	elevation := newKeywordSet(v.ElevationTerms)
	boilerplate := newKeywordSet(v.BoilerplateTerms)
	rooms := newKeywordSet(v.RoomTerms)
	structural := newKeywordSet(v.StructuralTerms)
	locale := newKeywordSet(v.LocaleTerms)
	hints := newKeywordSet(v.FixtureHints)

	rules := []Rule{
		{RuleStopTerm, "matches a stop term", func(s string) bool {
			return stopTerms[strings.ToLower(s)]
		}},
		{RuleTooLong, "longer than the maximum length", func(s string) bool {
			return utf8.RuneCountInString(s) > cfg.MaxLength
		}},
		{RuleTooManyWords, "more words than a legend term has", func(s string) bool {
			return len(strings.Fields(s)) > cfg.MaxWords
		}},
		{RuleNoAlpha, "contains no letter", func(s string) bool {
			return strings.IndexFunc(s, unicode.IsLetter) < 0
		}},
		{RuleDigitRun, "contains a run of three or more digits", digitRunRe.MatchString},
		{RuleDateLike, "looks like a date", dateLikeRe.MatchString},
		{RuleDimension, "looks like a dimension", func(s string) bool {
			return feetInchRe.MatchString(s) || crossDimRe.MatchString(s) || metricDimRe.MatchString(s)
		}},
		{RuleQuoted, "contains quotation marks", func(s string) bool {
			return strings.ContainsAny(s, "\"“”‘’'`")
		}},
		{RuleElevation, "elevation or level annotation", func(s string) bool {
			return levelMarkRe.MatchString(s) || elevation.matches(s)
		}},
		{RuleBoilerplate, "drawing metadata", boilerplate.matches},
		{RuleRoomName, "room or space name", rooms.matches},
		{RuleAllCapsCode, "bare upper-case code", allCapsRe.MatchString},
		{RuleStructural, "structural or annotation label", structural.matches},
		{RuleLocale, "locale or project boilerplate", locale.matches},
	}
	if cfg.RequireHint {
		rules = append(rules, Rule{RuleMissingHint, "no fixture hint keyword", func(s string) bool {
			return !hints.matches(s)
		}})
	}
	return rules
}

// keywordSet matches lower-cased keywords at a word start. Keywords of
// three runes or fewer must also end at a word boundary so that short
// abbreviations do not catch longer words.
type keywordSet []string

func newKeywordSet(words []string) keywordSet {
	seen := make(map[string]bool, len(words))
	var out keywordSet
	for _, w := range words {
		w = strings.ToLower(strings.Join(strings.Fields(w), " "))
		if w == "" || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}

func (k keywordSet) matches(s string) bool {
	_, ok := k.find(s)
	return ok
}

// find returns the first keyword found in s.
func (k keywordSet) find(s string) (string, bool) {
	lower := strings.ToLower(s)
	for _, kw := range k {
		if containsAtWordStart(lower, kw, utf8.RuneCountInString(kw) <= 3) {
			return kw, true
		}
	}
	return "", false
}

// ContainsKeyword reports whether keyword occurs in text at a word start,
// ignoring case. Keywords of three runes or fewer must be whole words.
func ContainsKeyword(text, keyword string) bool {
	kw := strings.ToLower(strings.Join(strings.Fields(keyword), " "))
	if kw == "" {
		return false
	}
	return containsAtWordStart(strings.ToLower(text), kw, utf8.RuneCountInString(kw) <= 3)
}

// containsAtWordStart reports whether kw occurs in text starting at a word
// boundary, and when wholeWord is set, also ending at one.
func containsAtWordStart(text, kw string, wholeWord bool) bool {
	from := 0
	for from <= len(text) {
		idx := strings.Index(text[from:], kw)
		if idx < 0 {
			return false
		}
		idx += from
		end := idx + len(kw)

		before, after := ' ', ' '
		if idx > 0 {
			before, _ = utf8.DecodeLastRuneInString(text[:idx])
		}
		if end < len(text) {
			after, _ = utf8.DecodeRuneInString(text[end:])
		}
		if !isWordRune(before) && (!wholeWord || !isWordRune(after)) {
			return true
		}
		from = idx + 1
	}
	return false
}
