// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"
)

func strPtr(s string) *string { return &s }

func TestLinkResultJSONRoundTrip(t *testing.T) {
	in := []LinkResult{
		{
			LegendItem: "Pendant Light",
			BestBlock:  strPtr("PEND_01"),
			Score:      0.5640123,
			Candidates: []Candidate{{Symbol: "PEND_01", Score: 0.5640123}, {Symbol: "PENDANT_X", Score: 0.33349}},
		},
		{LegendItem: "Fire Alarm Panel", Candidates: []Candidate{}},
	}

	data, err := json.Marshal(RoundAll(in))
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"legend_item": "Pendant Light", "best_block": "PEND_01", "score": 0.564,
		 "candidates": [["PEND_01", 0.564], ["PENDANT_X", 0.333]]},
		{"legend_item": "Fire Alarm Panel", "best_block": null, "score": 0, "candidates": []}
	]`, string(data))

	var back []LinkResult
	require.NoError(t, json.Unmarshal(data, &back))
	require.Len(t, back, 2)
	assert.Equal(t, "PEND_01", back[0].Block())
	assert.Equal(t, 0.333, back[0].Candidates[1].Score)
	assert.Nil(t, back[1].BestBlock, "null stays unresolved")
	assert.False(t, back[1].Resolved())
}

func TestLinkResultYAML(t *testing.T) {
	in := LinkResult{LegendItem: "Cove Light", BestBlock: strPtr("COVE_A"), Score: 1.056,
		Candidates: []Candidate{{Symbol: "COVE_A", Score: 1.056}}}
	data, err := yaml.Marshal(in)
	require.NoError(t, err)

	var back LinkResult
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, in, back)

	var unresolved LinkResult
	require.NoError(t, yaml.Unmarshal([]byte("legend_item: X\nbest_block: null\nscore: 0\ncandidates: []\n"), &unresolved))
	assert.Nil(t, unresolved.BestBlock)
}

func TestCandidateDecodeErrors(t *testing.T) {
	var c Candidate
	assert.Error(t, json.Unmarshal([]byte(`["ONLY"]`), &c))
	assert.Error(t, json.Unmarshal([]byte(`{"symbol": "X"}`), &c))
	assert.Error(t, json.Unmarshal([]byte(`[1, 2]`), &c))
}

func TestRoundedCopies(t *testing.T) {
	best := "A"
	in := LinkResult{LegendItem: "x", BestBlock: &best, Score: 0.12345}
	out := in.Rounded()
	best = "B"
	assert.Equal(t, "A", out.Block(), "best block is copied")
	assert.NotNil(t, out.Candidates)
	assert.Equal(t, 0.123, out.Score)
}

func TestSummarizeLinks(t *testing.T) {
	s := SummarizeLinks([]LinkResult{{BestBlock: strPtr("A")}, {}, {}})
	assert.Equal(t, LinkSummary{Total: 3, Resolved: 1, Unresolved: 2}, s)
}

func TestLightCountsOrderAndForms(t *testing.T) {
	var lc LightCounts
	lc.Add("Down Light", GroupRecessed.Label(), 2)
	lc.Add("Cove Light", GroupIndirect.Label(), 1)
	lc.Add("Down Light", "ignored on repeat", 3)

	n, ok := lc.Get("Down Light")
	assert.True(t, ok)
	assert.Equal(t, 5, n)
	assert.Equal(t, 6, lc.Total())
	assert.Equal(t, map[string]int{"Down Light": 5, "Cove Light": 1}, lc.Flat())

	data, err := json.Marshal(lc)
	require.NoError(t, err)
	assert.Equal(t, `{"Down Light":{"count":5,"category":"Recessed/Down"},"Cove Light":{"count":1,"category":"Indirect/Cove"}}`, string(data))

	var back LightCounts
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, lc.Items(), back.Items())

	var flat LightCounts
	require.NoError(t, json.Unmarshal([]byte(`{"Halogen": 4, "Cove Light": 1}`), &flat))
	items := flat.Items()
	require.Len(t, items, 2)
	assert.Equal(t, LightCount{Name: "Halogen", Count: 4, Category: "Other"}, items[0])

	y, err := yaml.Marshal(LightsDocument{Legend: []string{"Down Light"}, Lights: lc})
	require.NoError(t, err)
	var doc LightsDocument
	require.NoError(t, yaml.Unmarshal(y, &doc))
	assert.Equal(t, lc.Items(), doc.Lights.Items())

	require.NoError(t, yaml.Unmarshal([]byte("lights:\n  Halogen: 2\n"), &doc))
	assert.Equal(t, []LightCount{{Name: "Halogen", Count: 2, Category: "Other"}}, doc.Lights.Items())
}

func TestLightGroupLabel(t *testing.T) {
	assert.Equal(t, "Recessed/Down", GroupRecessed.Label())
	assert.Equal(t, "Other", LightGroup("neon").Label())
	assert.False(t, LightGroup("neon").Valid())
	assert.Len(t, LightGroups, 6)
}

func TestSymbolUsageValidate(t *testing.T) {
	assert.NoError(t, SymbolUsage{"A": 0, "B": 3}.Validate())
	assert.NoError(t, SymbolUsage(nil).Validate())

	err := SymbolUsage{"A": 1, "B": -2}.Validate()
	assert.True(t, errors.Is(err, ErrInvalidUsage))
	assert.Contains(t, err.Error(), `"B"`)

	assert.True(t, errors.Is(SymbolUsage{" ": 1}.Validate(), ErrInvalidUsage))
	assert.Equal(t, []string{"A", "B"}, SymbolUsage{"B": 1, "A": 2}.Names())
	assert.Equal(t, 3, SymbolUsage{"B": 1, "A": 2}.Total())
}

func validConfig() Config {
	return Config{
		Extraction: ExtractionConfig{MaxLength: 40, MaxWords: 6},
		Linking:    LinkingConfig{AcceptThreshold: 0.55, MinMargin: 0.08, TopK: 5},
		Lights:     LightConfig{Strategy: StrategyFuzzy, Threshold: 80},
		Vocabulary: Vocabulary{
			LightCategories: []LightCategory{{Name: "Down Light", Group: GroupRecessed}},
			LightSynonyms:   []Synonym{{From: "Downlight", To: "Down Light"}},
		},
	}
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"max length", func(c *Config) { c.Extraction.MaxLength = 0 }},
		{"max words", func(c *Config) { c.Extraction.MaxWords = -1 }},
		{"threshold", func(c *Config) { c.Linking.AcceptThreshold = -0.1 }},
		{"bonus", func(c *Config) { c.Linking.PriorCap = -1 }},
		{"top k", func(c *Config) { c.Linking.TopK = 0 }},
		{"strategy", func(c *Config) { c.Lights.Strategy = "neural" }},
		{"light threshold", func(c *Config) { c.Lights.Threshold = 101 }},
		{"no categories", func(c *Config) { c.Vocabulary.LightCategories = nil }},
		{"bad group", func(c *Config) { c.Vocabulary.LightCategories[0].Group = "neon" }},
		{"synonym target", func(c *Config) { c.Vocabulary.LightSynonyms[0].To = "Lava Lamp" }},
		{"keyword target", func(c *Config) {
			c.Vocabulary.KeywordCategories = []KeywordCategory{{Keyword: "lava", Category: "Lava Lamp"}}
		}},
		{"hint match", func(c *Config) {
			c.Vocabulary.NamingHints = []NamingHint{{Pattern: "X", Match: "regex", Term: "Y"}}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			assert.True(t, errors.Is(cfg.Validate(), ErrInvalidConfig))
		})
	}
}
