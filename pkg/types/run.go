// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Run is one complete pipeline execution over a single drawing: the legend,
// the link results and the light counts, as stored in the run history.
type Run struct {
	// ID is a UUID assigned when the run is created.
	ID string `json:"id" yaml:"id"`

	// Drawing identifies the source drawing.
	Drawing string `json:"drawing" yaml:"drawing"`

	// CreatedAt is when the run finished.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// Legend lists the extracted legend terms in order.
	Legend []string `json:"legend" yaml:"legend"`

	// Links holds one rounded result per legend term.
	Links []LinkResult `json:"links" yaml:"links"`

	// Lights holds the per-category light counts.
	Lights LightCounts `json:"lights" yaml:"lights"`

	// Summary counts resolved and unresolved links.
	Summary LinkSummary `json:"summary" yaml:"summary"`
}
