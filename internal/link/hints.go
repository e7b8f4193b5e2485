// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package link

import (
	"strings"

	"github.com/pdiddy/legend-engine/pkg/types"
)

// ImpliedTerms returns the canonical legend terms implied by the naming
// hints that match symbol, in hint order without repeats. Patterns are
// compared against the upper-cased symbol name.
func ImpliedTerms(symbol string, hints []types.NamingHint) []string {
	name := strings.ToUpper(strings.TrimSpace(symbol))
	if name == "" {
		return nil
	}

	var terms []string
	seen := make(map[string]bool)
	for _, h := range hints {
		if !hintMatches(name, h) {
			continue
		}
		key := strings.ToLower(h.Term)
		if seen[key] {
			continue
		}
		seen[key] = true
		terms = append(terms, h.Term)
	}
	return terms
}

func hintMatches(name string, h types.NamingHint) bool {
	p := strings.ToUpper(h.Pattern)
	if p == "" {
		return false
	}
	switch h.Match {
	case types.HintPrefix:
		return strings.HasPrefix(name, p)
	case types.HintSuffix:
		return strings.HasSuffix(name, p)
	case types.HintExact:
		return name == p
	default:
		return strings.Contains(name, p)
	}
}
