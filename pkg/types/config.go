// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// ExtractionConfig holds settings for the legend extraction stages.
type ExtractionConfig struct {
	// MaxLength is the longest legend term accepted, in runes (default 40).
	MaxLength int `json:"max_length" yaml:"max_length" mapstructure:"max_length"`

	// MaxWords is the largest word count accepted (default 6).
	MaxWords int `json:"max_words" yaml:"max_words" mapstructure:"max_words"`

	// RequireHint keeps only segments containing a fixture hint keyword.
	RequireHint bool `json:"require_hint" yaml:"require_hint" mapstructure:"require_hint"`

	// KeepRejections records rejected segments in the extraction result.
	KeepRejections bool `json:"keep_rejections" yaml:"keep_rejections" mapstructure:"keep_rejections"`
}

// LinkingConfig holds the scoring weights and guardrail of the symbol linker.
type LinkingConfig struct {
	// AcceptThreshold is the minimum top score for a link (default 0.55).
	AcceptThreshold float64 `json:"accept_threshold" yaml:"accept_threshold" mapstructure:"accept_threshold"`

	// MinMargin is the minimum gap between the top two scores (default 0.08).
	MinMargin float64 `json:"min_margin" yaml:"min_margin" mapstructure:"min_margin"`

	// HintBonus is added when a naming hint matches (default 0.15).
	HintBonus float64 `json:"hint_bonus" yaml:"hint_bonus" mapstructure:"hint_bonus"`

	// PriorWeight scales log10(count+1) for the usage prior (default 0.05).
	PriorWeight float64 `json:"prior_weight" yaml:"prior_weight" mapstructure:"prior_weight"`

	// PriorCap bounds the usage prior (default 0.2).
	PriorCap float64 `json:"prior_cap" yaml:"prior_cap" mapstructure:"prior_cap"`

	// TopK is the number of candidates kept per term (default 5).
	TopK int `json:"top_k" yaml:"top_k" mapstructure:"top_k"`

	// MinPrefix is the shortest token that may match a longer token by
	// prefix (default 3). Zero disables prefix matching.
	MinPrefix int `json:"min_prefix" yaml:"min_prefix" mapstructure:"min_prefix"`

	// Workers enables parallel per-term scoring when greater than 1.
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`
}

// LightStrategy selects how lighting items are mapped to categories.
type LightStrategy string

const (
	StrategyFuzzy   LightStrategy = "fuzzy"
	StrategyKeyword LightStrategy = "keyword"
)

// LightConfig holds settings for the light classifier.
type LightConfig struct {
	// Strategy is fuzzy (default) or keyword.
	Strategy LightStrategy `json:"strategy" yaml:"strategy" mapstructure:"strategy"`

	// Threshold is the minimum 0-100 similarity for a fuzzy match (default 80).
	Threshold float64 `json:"threshold" yaml:"threshold" mapstructure:"threshold"`
}

// StoreConfig holds settings for the run history store.
type StoreConfig struct {
	// DataDir is the base directory (contains index/legend.db).
	DataDir string `json:"data_dir" yaml:"data_dir" mapstructure:"data_dir"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is debug, info, warn or error (default warn).
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is console (default) or json.
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// HintMatch is the comparison a naming hint applies to a symbol name.
type HintMatch string

const (
	HintContains HintMatch = "contains"
	HintPrefix   HintMatch = "prefix"
	HintSuffix   HintMatch = "suffix"
	HintExact    HintMatch = "exact"
)

// NamingHint maps a symbol naming convention to the legend term it implies,
// e.g. symbols containing "SUSPEND" imply "Suspended Light".
type NamingHint struct {
	Pattern string    `json:"pattern" yaml:"pattern" mapstructure:"pattern"`
	Match   HintMatch `json:"match" yaml:"match" mapstructure:"match"`
	Term    string    `json:"term" yaml:"term" mapstructure:"term"`
}

// Synonym maps a legend variant to a canonical light category.
type Synonym struct {
	From string `json:"from" yaml:"from" mapstructure:"from"`
	To   string `json:"to" yaml:"to" mapstructure:"to"`
}

// KeywordCategory maps a lighting keyword to a canonical category for the
// keyword strategy.
type KeywordCategory struct {
	Keyword  string `json:"keyword" yaml:"keyword" mapstructure:"keyword"`
	Category string `json:"category" yaml:"category" mapstructure:"category"`
}

// Vocabulary holds every word list the heuristics use. It is configuration
// data so the engine can be retuned without code changes.
type Vocabulary struct {
	Anchors           []string          `json:"anchors" yaml:"anchors" mapstructure:"anchors"`
	StopMarkers       []string          `json:"stop_markers" yaml:"stop_markers" mapstructure:"stop_markers"`
	StopTerms         []string          `json:"stop_terms" yaml:"stop_terms" mapstructure:"stop_terms"`
	ElevationTerms    []string          `json:"elevation_terms" yaml:"elevation_terms" mapstructure:"elevation_terms"`
	BoilerplateTerms  []string          `json:"boilerplate_terms" yaml:"boilerplate_terms" mapstructure:"boilerplate_terms"`
	RoomTerms         []string          `json:"room_terms" yaml:"room_terms" mapstructure:"room_terms"`
	StructuralTerms   []string          `json:"structural_terms" yaml:"structural_terms" mapstructure:"structural_terms"`
	LocaleTerms       []string          `json:"locale_terms" yaml:"locale_terms" mapstructure:"locale_terms"`
	FixtureHints      []string          `json:"fixture_hints" yaml:"fixture_hints" mapstructure:"fixture_hints"`
	NamingHints       []NamingHint      `json:"naming_hints" yaml:"naming_hints" mapstructure:"naming_hints"`
	LightKeywords     []string          `json:"light_keywords" yaml:"light_keywords" mapstructure:"light_keywords"`
	LightCategories   []LightCategory   `json:"light_categories" yaml:"light_categories" mapstructure:"light_categories"`
	LightSynonyms     []Synonym         `json:"light_synonyms" yaml:"light_synonyms" mapstructure:"light_synonyms"`
	KeywordCategories []KeywordCategory `json:"keyword_categories" yaml:"keyword_categories" mapstructure:"keyword_categories"`
}

// Config groups all engine settings.
type Config struct {
	Extraction ExtractionConfig `json:"extraction" yaml:"extraction" mapstructure:"extraction"`
	Linking    LinkingConfig    `json:"linking" yaml:"linking" mapstructure:"linking"`
	Lights     LightConfig      `json:"lights" yaml:"lights" mapstructure:"lights"`
	Store      StoreConfig      `json:"store" yaml:"store" mapstructure:"store"`
	Log        LogConfig        `json:"log" yaml:"log" mapstructure:"log"`
	Vocabulary Vocabulary       `json:"vocabulary" yaml:"vocabulary" mapstructure:"vocabulary"`
}

// Validate checks ranges and references between sections.
func (c Config) Validate() error {
	switch {
	case c.Extraction.MaxLength <= 0:
		return fmt.Errorf("%w: extraction.max_length must be positive", ErrInvalidConfig)
	case c.Extraction.MaxWords <= 0:
		return fmt.Errorf("%w: extraction.max_words must be positive", ErrInvalidConfig)
	case c.Linking.AcceptThreshold < 0 || c.Linking.MinMargin < 0:
		return fmt.Errorf("%w: linking thresholds must not be negative", ErrInvalidConfig)
	case c.Linking.HintBonus < 0 || c.Linking.PriorWeight < 0 || c.Linking.PriorCap < 0:
		return fmt.Errorf("%w: linking bonuses must not be negative", ErrInvalidConfig)
	case c.Linking.TopK <= 0:
		return fmt.Errorf("%w: linking.top_k must be positive", ErrInvalidConfig)
	case c.Linking.MinPrefix < 0:
		return fmt.Errorf("%w: linking.min_prefix must not be negative", ErrInvalidConfig)
	case c.Lights.Strategy != StrategyFuzzy && c.Lights.Strategy != StrategyKeyword:
		return fmt.Errorf("%w: unknown lights.strategy %q", ErrInvalidConfig, c.Lights.Strategy)
	case c.Lights.Threshold < 0 || c.Lights.Threshold > 100:
		return fmt.Errorf("%w: lights.threshold must be within 0-100", ErrInvalidConfig)
	case len(c.Vocabulary.LightCategories) == 0:
		return fmt.Errorf("%w: vocabulary.light_categories is empty", ErrInvalidConfig)
	}

	known := make(map[string]bool, len(c.Vocabulary.LightCategories))
	for _, cat := range c.Vocabulary.LightCategories {
		if !cat.Group.Valid() {
			return fmt.Errorf("%w: category %q has unknown group %q", ErrInvalidConfig, cat.Name, cat.Group)
		}
		known[cat.Name] = true
	}
	for _, s := range c.Vocabulary.LightSynonyms {
		if !known[s.To] {
			return fmt.Errorf("%w: synonym %q targets unknown category %q", ErrInvalidConfig, s.From, s.To)
		}
	}
	for _, kc := range c.Vocabulary.KeywordCategories {
		if !known[kc.Category] {
			return fmt.Errorf("%w: keyword %q targets unknown category %q", ErrInvalidConfig, kc.Keyword, kc.Category)
		}
	}
	for _, h := range c.Vocabulary.NamingHints {
		switch h.Match {
		case HintContains, HintPrefix, HintSuffix, HintExact:
		default:
			return fmt.Errorf("%w: naming hint %q has unknown match %q", ErrInvalidConfig, h.Pattern, h.Match)
		}
	}
	return nil
}
