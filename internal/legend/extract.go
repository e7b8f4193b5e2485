// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package legend extracts a clean legend from raw drawing annotation text.
// Extraction runs in four stages: Normalize strips markup, FindLegendChunk
// isolates the legend block, Filter drops segments that are not legend
// terms, and Dedupe removes repeats.
package legend

import (
	"go.uber.org/zap"

	"github.com/pdiddy/legend-engine/internal/vocab"
	"github.com/pdiddy/legend-engine/pkg/types"
)

// Option configures an Extractor or Filter.
type Option func(*options)

type options struct {
	logger *zap.Logger
}

// WithLogger sets the logger used for debug-level decisions.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func applyOptions(opts []Option) options {
	o := options{logger: zap.NewNop()}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// Extractor runs the extraction stages with a fixed configuration.
type Extractor struct {
	anchors []string
	stops   []string
	keep    bool
	filter  *Filter
	logger  *zap.Logger
}

// NewExtractor creates an extractor from the extraction limits and
// vocabulary of cfg.
func NewExtractor(cfg types.Config, opts ...Option) *Extractor {
	o := applyOptions(opts)
	return &Extractor{
		anchors: cfg.Vocabulary.Anchors,
		stops:   cfg.Vocabulary.StopMarkers,
		keep:    cfg.Extraction.KeepRejections,
		filter:  NewFilter(cfg.Extraction, cfg.Vocabulary, opts...),
		logger:  o.logger,
	}
}

// Extract turns raw annotation text from one drawing into its legend.
// When no legend anchor is present the whole text is filtered and
// AnchorFound is false. Rejections are kept only when the extraction
// config asks for them.
func (e *Extractor) Extract(drawing, raw string) types.ExtractionResult {
	text := Normalize(raw)

	chunk, found := FindLegendChunk(text, e.anchors, e.stops)
	if !found {
		e.logger.Debug("no legend anchor, using full text", zap.String("drawing", drawing))
		chunk = text
	}

	entries, rejections := e.filter.Apply(chunk)
	entries, removed := DedupeEntries(entries)

	res := types.ExtractionResult{
		Drawing:           drawing,
		AnchorFound:       found,
		Entries:           entries,
		LegendItems:       types.Terms(entries),
		DuplicatesRemoved: removed,
	}
	if e.keep {
		res.Rejections = rejections
	}
	e.logger.Debug("legend extracted",
		zap.String("drawing", drawing),
		zap.Int("terms", len(entries)),
		zap.Int("rejected", len(rejections)),
		zap.Int("duplicates", removed))
	return res
}

// ExtractTerms runs extraction with the default configuration and returns
// only the legend terms.
func ExtractTerms(raw string) []string {
	return NewExtractor(vocab.DefaultConfig()).Extract("", raw).LegendItems
}
