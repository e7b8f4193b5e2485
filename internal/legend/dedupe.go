// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package legend

import (
	"strings"

	"github.com/pdiddy/legend-engine/pkg/types"
)

// Dedupe removes case-insensitive duplicates from terms, keeping the first
// occurrence and the original order. It returns the kept terms and the
// number removed.
func Dedupe(terms []string) ([]string, int) {
	seen := make(map[string]bool, len(terms))
	out := make([]string, 0, len(terms))
	removed := 0
	for _, t := range terms {
		key := dedupeKey(t)
		if seen[key] {
			removed++
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	return out, removed
}

// DedupeEntries is Dedupe keyed on each entry's term. The code of the first
// occurrence is kept.
func DedupeEntries(entries []types.LegendEntry) ([]types.LegendEntry, int) {
	seen := make(map[string]bool, len(entries))
	out := make([]types.LegendEntry, 0, len(entries))
	removed := 0
	for _, e := range entries {
		key := dedupeKey(e.Term)
		if seen[key] {
			removed++
			continue
		}
		seen[key] = true
		out = append(out, e)
	}
	return out, removed
}

func dedupeKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
