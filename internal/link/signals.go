// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package link

import (
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pdiddy/legend-engine/pkg/types"
)

// Tokens lower-cases s and splits it on every rune that is not a letter or
// digit, so underscores, dashes and punctuation all separate tokens.
func Tokens(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// NormalizeName joins the tokens of s with single spaces.
func NormalizeName(s string) string {
	return strings.Join(Tokens(s), " ")
}

// TokenOverlap returns the Jaccard similarity of the token sets of a and b.
// Tokens pair up one to one: equal tokens first, then tokens where the
// shorter one is alphabetic, at least minPrefix runes long and a prefix of
// the other (PEND and pendant). A minPrefix of zero gives strict Jaccard.
// The result is 0 when either side has no tokens.
func TokenOverlap(a, b string, minPrefix int) float64 {
	ta, tb := tokenSet(a), tokenSet(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	usedA := make([]bool, len(ta))
	usedB := make([]bool, len(tb))
	matched := 0
	for i, x := range ta {
		for j, y := range tb {
			if !usedB[j] && x == y {
				usedA[i], usedB[j] = true, true
				matched++
				break
			}
		}
	}
	if minPrefix > 0 {
		for i, x := range ta {
			if usedA[i] {
				continue
			}
			for j, y := range tb {
				if !usedB[j] && prefixMatch(x, y, minPrefix) {
					usedA[i], usedB[j] = true, true
					matched++
					break
				}
			}
		}
	}

	union := len(ta) + len(tb) - matched
	return float64(matched) / float64(union)
}

// Containment returns 1 when the normalized form of one string occurs in
// the other as a whole run of tokens, and 0 otherwise.
func Containment(a, b string) float64 {
	na, nb := NormalizeName(a), NormalizeName(b)
	if na == "" || nb == "" {
		return 0
	}
	pa, pb := " "+na+" ", " "+nb+" "
	if strings.Contains(pa, pb) || strings.Contains(pb, pa) {
		return 1
	}
	return 0
}

// NamingHint returns bonus when any naming-convention hint matching symbol
// implies a canonical term equal to term, ignoring case. The bonus is
// applied once however many hints agree.
func NamingHint(term, symbol string, hints []types.NamingHint, bonus float64) float64 {
	for _, implied := range ImpliedTerms(symbol, hints) {
		if strings.EqualFold(strings.TrimSpace(implied), strings.TrimSpace(term)) {
			return bonus
		}
	}
	return 0
}

// UsagePrior rewards frequently placed symbols: weight × log10(count+1),
// capped at limit. A count of zero or less gives 0.
func UsagePrior(count int, weight, limit float64) float64 {
	if count <= 0 {
		return 0
	}
	return math.Min(limit, math.Log10(float64(count)+1)*weight)
}

// tokenSet returns the distinct tokens of s in sorted order.
func tokenSet(s string) []string {
	toks := Tokens(s)
	sort.Strings(toks)
	out := toks[:0]
	for i, t := range toks {
		if i == 0 || t != toks[i-1] {
			out = append(out, t)
		}
	}
	return out
}

func prefixMatch(x, y string, minPrefix int) bool {
	short, long := x, y
	if utf8.RuneCountInString(short) > utf8.RuneCountInString(long) {
		short, long = long, short
	}
	if utf8.RuneCountInString(short) < minPrefix {
		return false
	}
	for _, r := range short {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return strings.HasPrefix(long, short)
}
