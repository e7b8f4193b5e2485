// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package vocab provides the default engine configuration and the word lists
// the extraction, linking and light heuristics run on. The lists are data:
// a config file can replace any of them without touching the engine.
package vocab

import "github.com/pdiddy/legend-engine/pkg/types"

// DefaultConfig returns a fresh copy of the default configuration.
func DefaultConfig() types.Config {
	return types.Config{
		Extraction: types.ExtractionConfig{
			MaxLength: 40,
			MaxWords:  6,
		},
		Linking: types.LinkingConfig{
			AcceptThreshold: 0.55,
			MinMargin:       0.08,
			HintBonus:       0.15,
			PriorWeight:     0.05,
			PriorCap:        0.2,
			TopK:            5,
			MinPrefix:       3,
			Workers:         1,
		},
		Lights: types.LightConfig{
			Strategy:  types.StrategyFuzzy,
			Threshold: 80,
		},
		Store: types.StoreConfig{
			DataDir: "data",
		},
		Log: types.LogConfig{
			Level:  "warn",
			Format: "console",
		},
		Vocabulary: DefaultVocabulary(),
	}
}

// DefaultVocabulary returns a fresh copy of the default word lists.
func DefaultVocabulary() types.Vocabulary {
	return types.Vocabulary{
		Anchors: []string{"LEGENDS:-", "LEGENDS:", "LEGEND:-", "LEGEND:", "LEGENDS", "LEGEND"},
		StopMarkers: []string{
			"NOTE", "NOTES", "GENERAL NOTES", "KEY PLAN",
			"TYPICAL FLOOR", "FIRST FLOOR", "GROUND FLOOR", "STILT FLOOR",
		},
		StopTerms: []string{
			"legend", "legends", "switch", "symbol", "symbols", "description",
			"item", "items", "qty", "nos", "tbm", "bm", "ffl", "sffl", "nts",
		},
		ElevationTerms: []string{
			"level", "lvl", "elevation", "elev", "ffl", "sffl", "tbm", "datum",
			"height", "ht", "above", "below", "slab", "sill", "lintel", "soffit",
		},
		BoilerplateTerms: []string{
			"date", "drawn", "checked", "approved", "designed", "scale", "client",
			"address", "project", "revision", "rev", "dwg", "drawing", "sheet",
			"title", "north", "note", "plot", "phone", "tel", "email", "owner",
		},
		RoomTerms: []string{
			"bedroom", "bed room", "toilet", "kitchen", "floor", "lobby", "living",
			"dining", "pdr", "balcony", "terrace", "staircase", "stair", "lift",
			"utility", "foyer", "passage", "corridor", "study", "dress", "family lounge",
			"servant", "garage", "puja", "pooja", "washroom", "wash area", "bath",
		},
		StructuralTerms: []string{
			"wardrobe", "partition", "reference", "detail", "section",
			"door", "window", "false ceiling", "ceiling electrical",
			"framing", "provision", "typical", "plan", "shaft",
		},
		LocaleTerms: []string{
			"dlf", "south ex", "gurgaon", "gurugram", "delhi", "noida", "pvt",
			"ltd", "llp", "architects", "consultants", "india", "sector", "phase",
		},
		FixtureHints: []string{
			"light", "pelmet", "pipe", "duct", "grill", "mirror", "profile",
			"machine", "fan", "switch", "chandelier", "socket", "lamp", "cove",
		},
		NamingHints: []types.NamingHint{
			{Pattern: "SUSPEND", Match: types.HintContains, Term: "Suspended Light"},
			{Pattern: "CONCEALED", Match: types.HintContains, Term: "Concealed Light"},
			{Pattern: "DOWN", Match: types.HintContains, Term: "Down Light"},
			{Pattern: "LED", Match: types.HintExact, Term: "Down Light"},
			{Pattern: "FAN", Match: types.HintPrefix, Term: "Fan Point"},
			{Pattern: "_FAN", Match: types.HintSuffix, Term: "Fan Point"},
			{Pattern: "SPOT", Match: types.HintContains, Term: "Button Spot Light"},
			{Pattern: "SP", Match: types.HintExact, Term: "Button Spot Light"},
			{Pattern: "SW", Match: types.HintPrefix, Term: "Switch Board"},
			{Pattern: "SWITCH", Match: types.HintContains, Term: "Switch Board"},
			{Pattern: "PENDANT", Match: types.HintContains, Term: "Pendant Light"},
			{Pattern: "PENDENT", Match: types.HintContains, Term: "Pendant Light"},
			{Pattern: "PEND", Match: types.HintPrefix, Term: "Pendant Light"},
		},
		LightKeywords: []string{
			"light", "lamp", "track", "pendant", "pendent", "spot", "cove",
			"halogen", "chandelier", "downlight", "glazer",
		},
		LightCategories: []types.LightCategory{
			{Name: "Pendant Light", Group: types.GroupPendant},
			{Name: "Magnetic Track Light", Group: types.GroupTrack},
			{Name: "Cove Light", Group: types.GroupIndirect},
			{Name: "Down Light", Group: types.GroupRecessed},
			{Name: "Halogen", Group: types.GroupHalogen},
			{Name: "Button Spot Light", Group: types.GroupRecessed},
			{Name: "Glazer Light", Group: types.GroupOther},
			{Name: "Other", Group: types.GroupOther},
		},
		LightSynonyms: []types.Synonym{
			{From: "Suspended Light", To: "Pendant Light"},
			{From: "Pendent Light", To: "Pendant Light"},
			{From: "Hanging Light", To: "Pendant Light"},
			{From: "Downlight", To: "Down Light"},
			{From: "Down Light", To: "Down Light"},
			{From: "Spot Light", To: "Button Spot Light"},
			{From: "Spotlight", To: "Button Spot Light"},
			{From: "Track Light", To: "Magnetic Track Light"},
			{From: "Cove", To: "Cove Light"},
			{From: "Halogen Light", To: "Halogen"},
		},
		KeywordCategories: []types.KeywordCategory{
			{Keyword: "pendant", Category: "Pendant Light"},
			{Keyword: "pendent", Category: "Pendant Light"},
			{Keyword: "suspended", Category: "Pendant Light"},
			{Keyword: "chandelier", Category: "Pendant Light"},
			{Keyword: "track", Category: "Magnetic Track Light"},
			{Keyword: "cove", Category: "Cove Light"},
			{Keyword: "downlight", Category: "Down Light"},
			{Keyword: "down", Category: "Down Light"},
			{Keyword: "halogen", Category: "Halogen"},
			{Keyword: "spot", Category: "Button Spot Light"},
			{Keyword: "glazer", Category: "Glazer Light"},
		},
	}
}
