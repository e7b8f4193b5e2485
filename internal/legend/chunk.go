// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package legend

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// FindLegendChunk returns the lines between the first legend anchor and the
// next stop marker. Text left on the anchor line after the anchor spelling
// is the first captured line. The second return value is false when no
// anchor line exists; callers then fall back to the full text.
//
// Only the first anchor is honored. Matching is case-insensitive and
// happens at the start of a line.
func FindLegendChunk(text string, anchors, stops []string) (string, bool) {
	anchors = longestFirst(anchors)

	lines := strings.Split(text, "\n")
	start := -1
	var first string
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if rest, ok := matchAnchor(line, anchors); ok {
			start = i
			first = rest
			break
		}
	}
	if start < 0 {
		return "", false
	}

	var captured []string
	if first != "" {
		captured = append(captured, first)
	}
	for _, line := range lines[start+1:] {
		line = strings.TrimSpace(line)
		if startsWithMarker(line, stops) {
			break
		}
		if line != "" {
			captured = append(captured, line)
		}
	}
	return strings.Join(captured, "\n"), true
}

// matchAnchor reports whether line opens with one of the anchors and
// returns what follows the anchor. A bare spelling such as "LEGEND" must be
// the whole line or be followed by ':' or '-', so title lines like
// "Legend Lighting Pvt" are not anchors.
func matchAnchor(line string, anchors []string) (string, bool) {
	for _, a := range anchors {
		if !hasFoldPrefix(line, a) {
			continue
		}
		rest := line[len(a):]
		if last, _ := utf8.DecodeLastRuneInString(a); unicode.IsLetter(last) {
			tail := strings.TrimLeftFunc(rest, unicode.IsSpace)
			if tail != "" && tail[0] != ':' && tail[0] != '-' {
				continue
			}
		}
		return strings.TrimFunc(rest, func(r rune) bool {
			return unicode.IsSpace(r) || r == ':' || r == '-'
		}), true
	}
	return "", false
}

func startsWithMarker(line string, markers []string) bool {
	for _, m := range markers {
		if !hasFoldPrefix(line, m) {
			continue
		}
		rest := line[len(m):]
		if r, _ := utf8.DecodeRuneInString(rest); rest == "" || !isWordRune(r) {
			return true
		}
	}
	return false
}

func hasFoldPrefix(s, prefix string) bool {
	return prefix != "" && len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func longestFirst(words []string) []string {
	out := append([]string(nil), words...)
	sort.SliceStable(out, func(i, j int) bool { return len(out[i]) > len(out[j]) })
	return out
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
