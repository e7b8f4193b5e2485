// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the legend-engine pipeline:
// legend entries extracted from drawing annotation text, symbol usage counts,
// link results, light categories and counts, and the engine configuration.
package types

// LegendEntry is one legend row that survived filtering and deduplication.
type LegendEntry struct {
	// Code is the numbering or symbol code stripped from the row
	// (e.g. "01", "L2"). Empty when the row had no code.
	Code string `json:"code,omitempty" yaml:"code,omitempty"`

	// Term is the title-cased legend description (e.g. "Suspended Light").
	Term string `json:"term" yaml:"term"`
}

// Rejection records why a candidate segment was dropped by the filter.
type Rejection struct {
	// Segment is the cleaned segment text that was evaluated.
	Segment string `json:"segment" yaml:"segment"`

	// Rule is the name of the first rule that rejected the segment.
	Rule string `json:"rule" yaml:"rule"`

	// Reason is a short human-readable explanation.
	Reason string `json:"reason" yaml:"reason"`
}

// ExtractionResult holds the legend extracted from a single drawing.
type ExtractionResult struct {
	// Drawing identifies the source drawing (usually the input file stem).
	Drawing string `json:"drawing" yaml:"drawing"`

	// AnchorFound reports whether a legend anchor was located. When false the
	// whole normalized text was searched.
	AnchorFound bool `json:"anchor_found" yaml:"anchor_found"`

	// Entries are the legend rows in drawing order.
	Entries []LegendEntry `json:"entries" yaml:"entries"`

	// LegendItems is the ordered list of legend terms (Entries[i].Term).
	LegendItems []string `json:"legend_items" yaml:"legend_items"`

	// DuplicatesRemoved counts case-insensitive repeats dropped by dedup.
	DuplicatesRemoved int `json:"duplicates_removed" yaml:"duplicates_removed"`

	// Rejections lists segments dropped by the filter, in evaluation order.
	Rejections []Rejection `json:"rejections,omitempty" yaml:"rejections,omitempty"`
}

// Terms returns the legend terms of the entries in order.
func Terms(entries []LegendEntry) []string {
	terms := make([]string, len(entries))
	for i, e := range entries {
		terms[i] = e.Term
	}
	return terms
}
