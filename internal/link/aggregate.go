// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package link

import "math"

// Signals holds the individual evidence values for one term/symbol pair.
type Signals struct {
	Overlap     float64
	Containment float64
	Hint        float64
	Prior       float64
}

// HasEvidence reports whether any signal other than the usage prior is
// positive. Symbols without evidence never become candidates.
func (s Signals) HasEvidence() bool {
	return s.Overlap > 0 || s.Containment > 0 || s.Hint > 0
}

// Aggregator combines signals into one score.
type Aggregator interface {
	Score(s Signals) float64
}

// AggregatorFunc adapts a function to the Aggregator interface.
type AggregatorFunc func(Signals) float64

// Score calls f(s).
func (f AggregatorFunc) Score(s Signals) float64 { return f(s) }

// MaxPlusBonus scores the stronger of token overlap and containment, plus
// the hint bonus and the usage prior.
type MaxPlusBonus struct{}

// Score implements Aggregator.
func (MaxPlusBonus) Score(s Signals) float64 {
	return math.Max(s.Overlap, s.Containment) + s.Hint + s.Prior
}
