// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package link ranks drawing symbols against legend terms and decides, with
// a confidence guardrail, whether the top symbol may be accepted. Each
// evidence signal is a standalone function; an Aggregator combines them.
package link

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/legend-engine/pkg/types"
)

// Option configures a Linker.
type Option func(*Linker)

// WithLogger sets the logger used for debug-level link decisions.
func WithLogger(l *zap.Logger) Option {
	return func(k *Linker) {
		if l != nil {
			k.logger = l
		}
	}
}

// WithAggregator replaces the default MaxPlusBonus aggregator.
func WithAggregator(a Aggregator) Option {
	return func(k *Linker) {
		if a != nil {
			k.agg = a
		}
	}
}

// Linker scores every symbol of a drawing against legend terms.
type Linker struct {
	cfg    types.LinkingConfig
	hints  []types.NamingHint
	agg    Aggregator
	logger *zap.Logger
}

// New creates a linker with the given weights, guardrail and naming hints.
func New(cfg types.LinkingConfig, hints []types.NamingHint, opts ...Option) *Linker {
	k := &Linker{
		cfg:    cfg,
		hints:  hints,
		agg:    MaxPlusBonus{},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// Signals computes the evidence for one term/symbol pair.
func (k *Linker) Signals(term, symbol string, count int) Signals {
	return Signals{
		Overlap:     TokenOverlap(term, symbol, k.cfg.MinPrefix),
		Containment: Containment(term, symbol),
		Hint:        NamingHint(term, symbol, k.hints, k.cfg.HintBonus),
		Prior:       UsagePrior(count, k.cfg.PriorWeight, k.cfg.PriorCap),
	}
}

// Link returns one result per term, in term order. The usage map is
// validated before any scoring; a negative count or empty symbol name
// fails the whole call with types.ErrInvalidUsage.
//
// With Workers greater than 1 terms are scored concurrently. Each worker
// writes only its own slot, so the output order never depends on
// scheduling.
func (k *Linker) Link(ctx context.Context, terms []string, usage types.SymbolUsage) ([]types.LinkResult, error) {
	if err := usage.Validate(); err != nil {
		return nil, err
	}
	symbols := usage.Names()
	results := make([]types.LinkResult, len(terms))

	if k.cfg.Workers <= 1 {
		for i, term := range terms {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("linking terms: %w", err)
			}
			results[i] = k.link(term, symbols, usage)
		}
		return results, nil
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(k.cfg.Workers)
	for i, term := range terms {
		i, term := i, term
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			results[i] = k.link(term, symbols, usage)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("linking terms: %w", err)
	}
	return results, nil
}

// LinkTerm links a single term. The usage map must already be valid.
func (k *Linker) LinkTerm(term string, usage types.SymbolUsage) types.LinkResult {
	return k.link(term, usage.Names(), usage)
}

func (k *Linker) link(term string, symbols []string, usage types.SymbolUsage) types.LinkResult {
	cands := make([]types.Candidate, 0)
	for _, sym := range symbols {
		s := k.Signals(term, sym, usage[sym])
		if !s.HasEvidence() {
			continue
		}
		cands = append(cands, types.Candidate{Symbol: sym, Score: k.agg.Score(s)})
	}
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].Score != cands[j].Score {
			return cands[i].Score > cands[j].Score
		}
		return cands[i].Symbol < cands[j].Symbol
	})

	res := types.LinkResult{LegendItem: term}
	if ok, top, margin := k.accept(cands); ok {
		best := cands[0].Symbol
		res.BestBlock = &best
		res.Score = top
	} else if len(cands) > 0 {
		k.logger.Debug("link withheld",
			zap.String("term", term),
			zap.String("top", cands[0].Symbol),
			zap.Float64("score", top),
			zap.Float64("margin", margin))
	}

	if k.cfg.TopK > 0 && len(cands) > k.cfg.TopK {
		cands = cands[:k.cfg.TopK]
	}
	res.Candidates = cands
	return res
}

// accept applies the guardrail to ranked candidates: the top score must
// reach the threshold and lead the runner-up by the minimum margin. With a
// single candidate the margin is measured against zero.
func (k *Linker) accept(cands []types.Candidate) (ok bool, top, margin float64) {
	if len(cands) == 0 {
		return false, 0, 0
	}
	top = cands[0].Score
	margin = top
	if len(cands) > 1 {
		margin = top - cands[1].Score
	}
	return top >= k.cfg.AcceptThreshold && margin >= k.cfg.MinMargin, top, margin
}
