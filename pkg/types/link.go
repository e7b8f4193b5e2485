// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"fmt"
	"math"

	"go.yaml.in/yaml/v3"
)

// Candidate is a scored symbol for one legend term. It serializes as a
// two-element array ["SYMBOL", 0.734] in both JSON and YAML.
type Candidate struct {
	Symbol string
	Score  float64
}

// MarshalJSON encodes the candidate as a [symbol, score] pair.
func (c Candidate) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{c.Symbol, c.Score})
}

// UnmarshalJSON decodes a [symbol, score] pair.
func (c *Candidate) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("decoding candidate: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("decoding candidate: want 2 elements, got %d", len(pair))
	}
	if err := json.Unmarshal(pair[0], &c.Symbol); err != nil {
		return fmt.Errorf("decoding candidate symbol: %w", err)
	}
	if err := json.Unmarshal(pair[1], &c.Score); err != nil {
		return fmt.Errorf("decoding candidate score: %w", err)
	}
	return nil
}

// MarshalYAML encodes the candidate as a [symbol, score] sequence.
func (c Candidate) MarshalYAML() (any, error) {
	return []any{c.Symbol, c.Score}, nil
}

// UnmarshalYAML decodes a [symbol, score] sequence.
func (c *Candidate) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode || len(node.Content) != 2 {
		return fmt.Errorf("decoding candidate at line %d: want a 2-element sequence", node.Line)
	}
	if err := node.Content[0].Decode(&c.Symbol); err != nil {
		return fmt.Errorf("decoding candidate symbol: %w", err)
	}
	if err := node.Content[1].Decode(&c.Score); err != nil {
		return fmt.Errorf("decoding candidate score: %w", err)
	}
	return nil
}

// LinkResult is the outcome of linking one legend term to a drawing symbol.
// BestBlock is nil when the term is unresolved (no candidate, or the
// confidence guardrail withheld the top candidate). When present it equals
// Candidates[0].Symbol. Candidates are sorted by descending score.
type LinkResult struct {
	// LegendItem is the legend term being linked.
	LegendItem string `json:"legend_item" yaml:"legend_item"`

	// BestBlock is the accepted symbol, or nil for manual review.
	BestBlock *string `json:"best_block" yaml:"best_block"`

	// Score is the accepted candidate's score, 0 when unresolved.
	Score float64 `json:"score" yaml:"score"`

	// Candidates holds the top-ranked symbols for inspection.
	Candidates []Candidate `json:"candidates" yaml:"candidates"`
}

// Resolved reports whether a symbol was accepted.
func (r LinkResult) Resolved() bool {
	return r.BestBlock != nil
}

// Block returns the accepted symbol name or "" when unresolved.
func (r LinkResult) Block() string {
	if r.BestBlock == nil {
		return ""
	}
	return *r.BestBlock
}

// Rounded returns a copy with every score rounded to 3 decimals, the form
// persisted by writers. Candidates is never nil in the copy.
func (r LinkResult) Rounded() LinkResult {
	out := LinkResult{
		LegendItem: r.LegendItem,
		Score:      Round3(r.Score),
		Candidates: make([]Candidate, len(r.Candidates)),
	}
	if r.BestBlock != nil {
		b := *r.BestBlock
		out.BestBlock = &b
	}
	for i, c := range r.Candidates {
		out.Candidates[i] = Candidate{Symbol: c.Symbol, Score: Round3(c.Score)}
	}
	return out
}

// RoundAll applies Rounded to every result.
func RoundAll(results []LinkResult) []LinkResult {
	out := make([]LinkResult, len(results))
	for i, r := range results {
		out[i] = r.Rounded()
	}
	return out
}

// Round3 rounds x to 3 decimal places.
func Round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}

// LinkSummary counts resolved and unresolved link results.
type LinkSummary struct {
	Total      int `json:"total" yaml:"total"`
	Resolved   int `json:"resolved" yaml:"resolved"`
	Unresolved int `json:"unresolved" yaml:"unresolved"`
}

// SummarizeLinks counts the results.
func SummarizeLinks(results []LinkResult) LinkSummary {
	s := LinkSummary{Total: len(results)}
	for _, r := range results {
		if r.Resolved() {
			s.Resolved++
		} else {
			s.Unresolved++
		}
	}
	return s
}
