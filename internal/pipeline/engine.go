// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline wires the legend, link and lights stages into one
// engine and runs it over single drawings or batches of drawing files.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdiddy/legend-engine/internal/legend"
	"github.com/pdiddy/legend-engine/internal/lights"
	"github.com/pdiddy/legend-engine/internal/link"
	"github.com/pdiddy/legend-engine/pkg/types"
)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger passed to every stage.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// Engine runs extraction, linking and light counting with one
// configuration. It is safe for sequential reuse across drawings.
type Engine struct {
	cfg        types.Config
	extractor  *legend.Extractor
	linker     *link.Linker
	classifier *lights.Classifier
	counter    *lights.Counter
	logger     *zap.Logger
}

// New validates cfg and builds the stages.
func New(cfg types.Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{cfg: cfg, logger: zap.NewNop()}
	for _, fn := range opts {
		fn(e)
	}
	e.extractor = legend.NewExtractor(cfg, legend.WithLogger(e.logger))
	e.linker = link.New(cfg.Linking, cfg.Vocabulary.NamingHints, link.WithLogger(e.logger))
	e.classifier = lights.NewClassifier(cfg, lights.WithLogger(e.logger))
	e.counter = lights.NewCounter(e.classifier)
	return e, nil
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() types.Config {
	return e.cfg
}

// Extract returns the legend of one drawing's annotation text.
func (e *Engine) Extract(drawing, raw string) types.ExtractionResult {
	return e.extractor.Extract(drawing, raw)
}

// Link scores every term against the symbol usage. Results are unrounded;
// writers round them.
func (e *Engine) Link(ctx context.Context, terms []string, usage types.SymbolUsage) ([]types.LinkResult, error) {
	return e.linker.Link(ctx, terms, usage)
}

// Signals returns the linking evidence for one term/symbol pair.
func (e *Engine) Signals(term, symbol string, count int) link.Signals {
	return e.linker.Signals(term, symbol, count)
}

// Lights counts lighting fixtures in raw. With legend terms the count is
// the number of occurrences of each lighting term in the text; without a
// legend every lighting line of the text counts once.
func (e *Engine) Lights(raw string, terms []string) types.LightCounts {
	if len(terms) > 0 {
		return e.counter.CountOccurrences(raw, terms)
	}
	return e.counter.CountLines(strings.Split(legend.Normalize(raw), "\n"))
}

// Categorize returns the category of each lighting term, in order.
func (e *Engine) Categorize(terms []string) []types.LightMatch {
	return e.counter.Categorize(terms)
}

// Input is one drawing's annotation text and symbol usage.
type Input struct {
	Drawing string
	Text    string
	Usage   types.SymbolUsage
}

// RunResult is the output of a full pipeline run over one drawing.
type RunResult struct {
	ID         string                 `json:"id" yaml:"id"`
	Extraction types.ExtractionResult `json:"extraction" yaml:"extraction"`

	// Links are rounded to 3 decimals, one per legend term in order.
	Links   []types.LinkResult `json:"links" yaml:"links"`
	Lights  types.LightCounts  `json:"lights" yaml:"lights"`
	Summary types.LinkSummary  `json:"summary" yaml:"summary"`
}

// Record converts the result to the form kept in the run history.
func (r RunResult) Record() types.Run {
	return types.Run{
		ID:      r.ID,
		Drawing: r.Extraction.Drawing,
		Legend:  r.Extraction.LegendItems,
		Links:   r.Links,
		Lights:  r.Lights,
		Summary: r.Summary,
	}
}

// LightsDocument returns the lights output document of the run.
func (r RunResult) LightsDocument() types.LightsDocument {
	return types.LightsDocument{Legend: r.Extraction.LegendItems, Lights: r.Lights}
}

// Run executes every stage for one drawing and assigns the run a new ID.
func (e *Engine) Run(ctx context.Context, in Input) (RunResult, error) {
	if err := ctx.Err(); err != nil {
		return RunResult{}, err
	}
	ext := e.Extract(in.Drawing, in.Text)

	links, err := e.Link(ctx, ext.LegendItems, in.Usage)
	if err != nil {
		return RunResult{}, fmt.Errorf("running %s: %w", in.Drawing, err)
	}
	links = types.RoundAll(links)

	res := RunResult{
		ID:         uuid.NewString(),
		Extraction: ext,
		Links:      links,
		Lights:     e.Lights(in.Text, ext.LegendItems),
		Summary:    types.SummarizeLinks(links),
	}
	e.logger.Info("run complete",
		zap.String("drawing", in.Drawing),
		zap.String("run", res.ID),
		zap.Int("terms", res.Summary.Total),
		zap.Int("unresolved", res.Summary.Unresolved),
		zap.Int("lights", res.Lights.Total()))
	return res, nil
}
