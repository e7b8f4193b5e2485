// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidUsage is returned when a symbol usage map violates its contract
// (negative counts, empty names, non-numeric values in a usage file).
var ErrInvalidUsage = errors.New("invalid symbol usage")

// SymbolUsage maps a drawing symbol (block) name to the number of times it is
// placed in the drawing.
type SymbolUsage map[string]int

// Validate reports the first contract violation in lexical name order.
func (u SymbolUsage) Validate() error {
	for _, name := range u.Names() {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: empty symbol name", ErrInvalidUsage)
		}
		if u[name] < 0 {
			return fmt.Errorf("%w: symbol %q has negative count %d", ErrInvalidUsage, name, u[name])
		}
	}
	return nil
}

// Names returns the symbol names sorted lexically.
func (u SymbolUsage) Names() []string {
	names := make([]string, 0, len(u))
	for name := range u {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Total returns the sum of all counts.
func (u SymbolUsage) Total() int {
	total := 0
	for _, c := range u {
		total += c
	}
	return total
}
