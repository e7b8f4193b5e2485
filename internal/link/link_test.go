// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package link

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/legend-engine/internal/vocab"
	"github.com/pdiddy/legend-engine/pkg/types"
)

func newTestLinker(opts ...Option) *Linker {
	cfg := vocab.DefaultConfig()
	return New(cfg.Linking, cfg.Vocabulary.NamingHints, opts...)
}

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"pend", "01"}, Tokens("PEND_01"))
	assert.Equal(t, []string{"down", "light", "type", "a"}, Tokens("Down-Light (Type A)"))
	assert.Empty(t, Tokens("__--"))
	assert.Equal(t, "cove light", NormalizeName("  COVE__LIGHT "))
}

func TestTokenOverlap(t *testing.T) {
	tests := []struct {
		name      string
		a, b      string
		minPrefix int
		want      float64
	}{
		{"prefix abbreviation", "Pendant Light", "PEND_01", 3, 1.0 / 3},
		{"strict jaccard", "Pendant Light", "PEND_01", 0, 0},
		{"identical after normalizing", "Down Light", "DOWN_LIGHT", 3, 1},
		{"subset", "Cove Light", "Cove Light Strip", 3, 2.0 / 3},
		{"numeric tokens need exact match", "Light 12", "LIGHT_120", 3, 1.0 / 3},
		{"short prefix ignored", "Fan Point", "FA", 3, 0},
		{"repeated tokens count once", "Light Light", "LIGHT", 3, 1},
		{"empty side", "Cove Light", "", 3, 0},
		{"both empty", "", "", 3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, TokenOverlap(tt.a, tt.b, tt.minPrefix), 1e-9)
			assert.InDelta(t, tt.want, TokenOverlap(tt.b, tt.a, tt.minPrefix), 1e-9, "symmetric")
		})
	}
}

func TestContainment(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"Down Light", "DOWN_LIGHT", 1},
		{"Cove Light Strip", "COVE_LIGHT", 1},
		{"Fan", "FAN_POINT_2", 1},
		{"Cove Light", "L", 0},
		{"Fan", "FANCY", 0},
		{"", "X", 0},
	}
	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, Containment(tt.a, tt.b))
		})
	}
}

func TestNamingHint(t *testing.T) {
	hints := vocab.DefaultVocabulary().NamingHints
	tests := []struct {
		term, symbol string
		want         float64
	}{
		{"Pendant Light", "PEND_01", 0.15},
		{"pendant light", "PENDANT_L", 0.15},
		{"Switch Board", "SW1", 0.15},
		{"Fan Point", "CEIL_FAN", 0.15},
		{"Down Light", "LED", 0.15},
		{"Down Light", "LED_2", 0},
		{"Pendant Light", "SW1", 0},
		{"Cove Light", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.term+"/"+tt.symbol, func(t *testing.T) {
			assert.Equal(t, tt.want, NamingHint(tt.term, tt.symbol, hints, 0.15))
		})
	}
}

func TestImpliedTermsDeduplicates(t *testing.T) {
	hints := vocab.DefaultVocabulary().NamingHints
	assert.Equal(t, []string{"Pendant Light"}, ImpliedTerms("pendant_01", hints))
	assert.Equal(t, []string{"Down Light", "Button Spot Light"}, ImpliedTerms("DOWN_SPOT", hints))
	assert.Nil(t, ImpliedTerms("XYZ", hints))
}

func TestUsagePrior(t *testing.T) {
	assert.Zero(t, UsagePrior(0, 0.05, 0.2))
	assert.Zero(t, UsagePrior(-3, 0.05, 0.2))
	assert.InDelta(t, 0.05, UsagePrior(9, 0.05, 0.2), 1e-9)
	assert.InDelta(t, 0.0806, UsagePrior(40, 0.05, 0.2), 1e-4)
	assert.Equal(t, 0.2, UsagePrior(1_000_000, 0.05, 0.2))
}

func TestLinkPendantScenario(t *testing.T) {
	usage := types.SymbolUsage{"PEND_01": 40, "SW1": 3}
	results, err := newTestLinker().Link(context.Background(), []string{"Pendant Light"}, usage)
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	require.True(t, r.Resolved())
	assert.Equal(t, "PEND_01", r.Block())
	assert.InDelta(t, 1.0/3+0.15+0.0806, r.Score, 1e-3)
	for _, c := range r.Candidates {
		assert.NotEqual(t, "SW1", c.Symbol)
	}
}

func TestLinkFireAlarmUnresolved(t *testing.T) {
	usage := types.SymbolUsage{"FAP": 1, "SW2": 2}
	results, err := newTestLinker().Link(context.Background(), []string{"Fire Alarm Panel"}, usage)
	require.NoError(t, err)

	r := results[0]
	assert.False(t, r.Resolved())
	assert.Nil(t, r.BestBlock)
	assert.Zero(t, r.Score)
	assert.NotNil(t, r.Candidates)
	assert.Empty(t, r.Candidates)
}

func TestLinkGuardrail(t *testing.T) {
	k := newTestLinker()

	t.Run("tie withholds and breaks lexically", func(t *testing.T) {
		r := k.LinkTerm("Cove Light", types.SymbolUsage{"COVE_LIGHT_B": 1, "COVE_LIGHT_A": 1})
		assert.Nil(t, r.BestBlock)
		assert.Zero(t, r.Score)
		require.Len(t, r.Candidates, 2)
		assert.Equal(t, "COVE_LIGHT_A", r.Candidates[0].Symbol)
		assert.Equal(t, r.Candidates[0].Score, r.Candidates[1].Score)
	})

	t.Run("low score withholds", func(t *testing.T) {
		r := k.LinkTerm("Cove Light", types.SymbolUsage{"COVE_X": 0})
		assert.Nil(t, r.BestBlock)
		require.Len(t, r.Candidates, 1)
		assert.Less(t, r.Candidates[0].Score, 0.55)
	})

	t.Run("clear winner accepted", func(t *testing.T) {
		r := k.LinkTerm("Cove Light", types.SymbolUsage{"COVE_LIGHT": 12, "COVE_X": 3})
		require.NotNil(t, r.BestBlock)
		assert.Equal(t, "COVE_LIGHT", *r.BestBlock)
		assert.Equal(t, r.Candidates[0].Score, r.Score)
	})
}

func TestLinkResultProperties(t *testing.T) {
	usage := types.SymbolUsage{
		"FAN_1": 1, "FAN_2": 30, "CEIL_FAN": 4, "FAN_POINT": 2,
		"COVE_LIGHT": 5, "COVE": 9, "PEND_01": 12, "PENDANT_LIGHT": 1,
		"SW1": 8, "DOWN_LIGHT": 20, "LED": 7, "X": 100,
	}
	terms := []string{"Fan Point", "Cove Light", "Pendant Light", "Switch Board", "Down Light", "Fire Alarm Panel"}
	results, err := newTestLinker().Link(context.Background(), terms, usage)
	require.NoError(t, err)
	require.Len(t, results, len(terms))

	for i, r := range results {
		assert.Equal(t, terms[i], r.LegendItem)
		assert.LessOrEqual(t, len(r.Candidates), 5)
		for j := 1; j < len(r.Candidates); j++ {
			assert.GreaterOrEqual(t, r.Candidates[j-1].Score, r.Candidates[j].Score, "term %q", r.LegendItem)
		}
		if r.BestBlock != nil {
			require.NotEmpty(t, r.Candidates)
			assert.Equal(t, r.Candidates[0].Symbol, *r.BestBlock)
			assert.GreaterOrEqual(t, r.Score, 0.55)
			if len(r.Candidates) > 1 {
				assert.GreaterOrEqual(t, r.Score-r.Candidates[1].Score, 0.08)
			}
		} else {
			assert.Zero(t, r.Score)
		}
	}
}

func TestLinkKeepsTopK(t *testing.T) {
	usage := types.SymbolUsage{}
	for i := 1; i <= 7; i++ {
		usage[fmt.Sprintf("FAN_%d", i)] = i
	}
	r := newTestLinker().LinkTerm("Fan", usage)
	require.Len(t, r.Candidates, 5)
	assert.Equal(t, "FAN_7", r.Candidates[0].Symbol)
	assert.Equal(t, "FAN_3", r.Candidates[4].Symbol)
}

func TestLinkRejectsNegativeUsage(t *testing.T) {
	results, err := newTestLinker().Link(context.Background(), []string{"Fan Point"}, types.SymbolUsage{"FAN": -1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrInvalidUsage))
	assert.Nil(t, results)
}

func TestLinkEmptyInputs(t *testing.T) {
	k := newTestLinker()

	results, err := k.Link(context.Background(), nil, types.SymbolUsage{"FAN": 1})
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = k.Link(context.Background(), []string{"Fan Point"}, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Nil(t, results[0].BestBlock)
	assert.Empty(t, results[0].Candidates)
}

func TestLinkParallelPreservesOrder(t *testing.T) {
	usage := types.SymbolUsage{"FAN_POINT": 3, "COVE_LIGHT": 2, "PEND_01": 40, "SW1": 3, "DOWN_LIGHT": 9}
	var terms []string
	for i := 0; i < 50; i++ {
		terms = append(terms, []string{"Fan Point", "Cove Light", "Pendant Light", "Switch Board", "Down Light"}[i%5])
	}

	sequential, err := newTestLinker().Link(context.Background(), terms, usage)
	require.NoError(t, err)

	cfg := vocab.DefaultConfig()
	cfg.Linking.Workers = 4
	parallel, err := New(cfg.Linking, cfg.Vocabulary.NamingHints).Link(context.Background(), terms, usage)
	require.NoError(t, err)

	assert.Equal(t, sequential, parallel)
}

func TestLinkCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestLinker().Link(ctx, []string{"Fan Point"}, types.SymbolUsage{"FAN": 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestWithAggregator(t *testing.T) {
	overlapOnly := AggregatorFunc(func(s Signals) float64 { return s.Overlap })
	r := newTestLinker(WithAggregator(overlapOnly)).LinkTerm("Pendant Light", types.SymbolUsage{"PEND_01": 40})
	require.Len(t, r.Candidates, 1)
	assert.InDelta(t, 1.0/3, r.Candidates[0].Score, 1e-9)
	assert.Nil(t, r.BestBlock)
}
