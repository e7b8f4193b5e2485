// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lights maps lighting legend terms to canonical fixture
// categories and tallies them.
package lights

import (
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/legend-engine/internal/legend"
	"github.com/pdiddy/legend-engine/pkg/types"
)

// FallbackCategory is the category name used for lighting items that match
// no other category.
const FallbackCategory = "Other"

// Option configures a Classifier.
type Option func(*Classifier)

// WithLogger sets the logger used for debug-level classification decisions.
func WithLogger(l *zap.Logger) Option {
	return func(c *Classifier) {
		if l != nil {
			c.logger = l
		}
	}
}

// Classifier assigns lighting text to a canonical category. Synonyms are
// checked first, then the lighting keyword gate, then the configured
// strategy, then the fallback category.
type Classifier struct {
	strategy   types.LightStrategy
	threshold  float64
	categories []types.LightCategory
	byName     map[string]types.LightCategory
	synonyms   map[string]string
	keywords   []string
	keywordMap []types.KeywordCategory
	fallback   *types.LightCategory
	logger     *zap.Logger
}

// NewClassifier creates a classifier from the lights settings and the
// vocabulary of cfg.
func NewClassifier(cfg types.Config, opts ...Option) *Classifier {
	v := cfg.Vocabulary
	c := &Classifier{
		strategy:   cfg.Lights.Strategy,
		threshold:  cfg.Lights.Threshold,
		categories: v.LightCategories,
		byName:     make(map[string]types.LightCategory, len(v.LightCategories)),
		synonyms:   make(map[string]string, len(v.LightSynonyms)),
		keywords:   v.LightKeywords,
		keywordMap: v.KeywordCategories,
		logger:     zap.NewNop(),
	}
	for i, cat := range v.LightCategories {
		c.byName[foldKey(cat.Name)] = cat
		if c.fallback == nil && strings.EqualFold(cat.Name, FallbackCategory) {
			c.fallback = &v.LightCategories[i]
		}
	}
	for _, s := range v.LightSynonyms {
		c.synonyms[foldKey(s.From)] = s.To
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify returns the category match for text, or false when the text is
// not a lighting item.
func (c *Classifier) Classify(text string) (types.LightMatch, bool) {
	_, body := legend.StripPrefix(text)
	body = strings.Join(strings.Fields(body), " ")
	if body == "" {
		return types.LightMatch{}, false
	}
	key := foldKey(body)

	if to, ok := c.synonyms[key]; ok {
		if cat, ok := c.byName[foldKey(to)]; ok {
			return c.match(body, cat, types.MethodSynonym, 100), true
		}
	}
	if cat, ok := c.byName[key]; ok && cat.Name != FallbackCategory {
		return c.match(body, cat, types.MethodSynonym, 100), true
	}

	if !c.isLighting(body) {
		return types.LightMatch{}, false
	}

	switch c.strategy {
	case types.StrategyKeyword:
		for _, kc := range c.keywordMap {
			if legend.ContainsKeyword(body, kc.Keyword) {
				if cat, ok := c.byName[foldKey(kc.Category)]; ok {
					return c.match(body, cat, types.MethodKeyword, 100), true
				}
			}
		}
	default:
		var (
			best      types.LightCategory
			bestScore = -1.0
		)
		for _, cat := range c.categories {
			if c.fallback != nil && cat.Name == c.fallback.Name {
				continue
			}
			if s := Similarity(body, cat.Name); s > bestScore {
				best, bestScore = cat, s
			}
		}
		if bestScore >= c.threshold {
			return c.match(body, best, types.MethodFuzzy, bestScore), true
		}
		c.logger.Debug("no category above threshold",
			zap.String("text", body), zap.String("nearest", best.Name), zap.Float64("similarity", bestScore))
	}

	if c.fallback != nil {
		return c.match(body, *c.fallback, types.MethodFallback, 0), true
	}
	return types.LightMatch{}, false
}

// IsLighting reports whether text mentions a lighting keyword.
func (c *Classifier) IsLighting(text string) bool {
	_, body := legend.StripPrefix(text)
	return c.isLighting(body)
}

func (c *Classifier) isLighting(body string) bool {
	for _, kw := range c.keywords {
		if legend.ContainsKeyword(body, kw) {
			return true
		}
	}
	return false
}

func (c *Classifier) match(input string, cat types.LightCategory, m types.MatchMethod, sim float64) types.LightMatch {
	return types.LightMatch{
		Input:      input,
		Category:   cat.Name,
		Group:      cat.Group,
		Method:     m,
		Similarity: sim,
	}
}

func foldKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
