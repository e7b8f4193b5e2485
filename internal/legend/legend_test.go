// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package legend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/legend-engine/internal/vocab"
	"github.com/pdiddy/legend-engine/pkg/types"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"paragraph escapes", `LEGEND:\P01 Down Light\X02 Fan`, "LEGEND:\n01 Down Light\n02 Fan"},
		{"formatting tags and braces", `{\H0.7x;\C131;\fArial|b0|i0;LEGEND:}\P01 Cove Light`, "LEGEND:\n01 Cove Light"},
		{"stacked fraction", `Lamp \S1/2; watt`, "Lamp 1/2 watt"},
		{"toggles", `\LSuspended\l \OLight\o`, "Suspended Light"},
		{"non-breaking space escape", `Down\~Light`, "Down Light"},
		{"dashes", "Cove – Light — Strip", "Cove - Light - Strip"},
		{"crlf", "a\r\nb\rc", "a\nb\nc"},
		{"whitespace", "  a \t  b  \n\n   c  ", "a b\nc"},
		{"fullwidth", "ＬＥＧＥＮＤ", "LEGEND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	samples := []string{
		`{\fArial|b1;LEGEND:}\P01 Suspended Light\P\C1;02 Fan Point`,
		"x＼Py",
		"  LEGEND:-  \r\n 01  Down   Light \r\n\r\n",
		`\S3#4; {{nested}} \\P`,
		"e{\\L}́ café",
		"plain text",
		"",
	}
	for _, s := range samples {
		once := Normalize(s)
		assert.Equal(t, once, Normalize(once), "input %q", s)
	}
}

func TestFindLegendChunk(t *testing.T) {
	v := vocab.DefaultVocabulary()
	tests := []struct {
		name      string
		text      string
		want      string
		wantFound bool
	}{
		{"no anchor", "01 Cove Light\n02 Down Light", "", false},
		{"stops at notes", "Title\nLEGEND:\n01 A\nNOTES:\nx", "01 A", true},
		{"text on anchor line", "LEGEND: 01 Fan Point\n02 Cove Light", "01 Fan Point\n02 Cove Light", true},
		{"dash anchor", "LEGENDS:-\nA\nKEY PLAN\nB", "A", true},
		{"case insensitive", "legend\nA\nnote: b", "A", true},
		{"word must end", "LEGENDARY SPACE\nLEGEND\nA", "A", true},
		{"first anchor only", "LEGEND:\nA\nLEGEND:\nB", "A\nLEGEND:\nB", true},
		{"marker needs boundary", "LEGEND\nNotebook Light\nGROUND FLOOR PLAN", "Notebook Light", true},
		{"anchor without rows", "LEGEND\nNOTES", "", true},
		{"bare anchor with colon after space", "LEGEND :\nA", "A", true},
		{"title line is not an anchor", "Legend Lighting Pvt\nLEGEND:\n01 Cove Light\nNOTES", "01 Cove Light", true},
		{"title line alone", "Legend Lighting Pvt\n01 Cove Light", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := FindLegendChunk(tt.text, v.Anchors, v.StopMarkers)
			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStripPrefix(t *testing.T) {
	tests := []struct {
		in       string
		wantCode string
		wantText string
	}{
		{"01 Suspended Light", "01", "Suspended Light"},
		{"12. Fan Point", "12", "Fan Point"},
		{"3) Cove Light", "3", "Cove Light"},
		{"L2 Pendant Light", "L2", "Pendant Light"},
		{"DL-03. Down Light", "DL-03", "Down Light"},
		{"• Cove Light", "", "Cove Light"},
		{"- Track Light", "", "Track Light"},
		{"12.5W Strip", "", "12.5W Strip"},
		{"3.5 Amp Socket", "", "3.5 Amp Socket"},
		{"02 2 Way Switch", "02", "2 Way Switch"},
		{"4) 3 Phase Socket", "4", "3 Phase Socket"},
		{"SW1 2 Way Switch", "SW1", "2 Way Switch"},
		{"LED Strip:", "", "LED Strip"},
		{"   ", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			code, text := StripPrefix(tt.in)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantText, text)
		})
	}
}

func TestFilterRules(t *testing.T) {
	cfg := vocab.DefaultConfig()
	f := NewFilter(cfg.Extraction, cfg.Vocabulary)

	tests := []struct {
		segment string
		rule    string
	}{
		{"Legend", RuleStopTerm},
		{"SWITCH", RuleStopTerm},
		{"Extra Long Description Of Special Fixture", RuleTooLong},
		{"A B C D E F G", RuleTooManyWords},
		{"12.5", RuleNoAlpha},
		{"Call 9876543210", RuleDigitRun},
		{"Sheet 101", RuleDigitRun},
		{"Issued 12/03/24", RuleDateLike},
		{"Niche 4'-6", RuleDimension},
		{"Panel 6x6", RuleDimension},
		{"Strip 12 mm", RuleDimension},
		{"Architect's Lamp", RuleQuoted},
		{"Sill Level", RuleElevation},
		{"+0.45 Top", RuleElevation},
		{"Drawn By: J. Doe", RuleBoilerplate},
		{"Checked By", RuleBoilerplate},
		{"Master Bedroom", RuleRoomName},
		{"Washroom", RuleRoomName},
		{"Common Wash Area", RuleRoomName},
		{"Floor Lamp", RuleRoomName},
		{"AC-1", RuleAllCapsCode},
		{"Partition Wall", RuleStructural},
		{"DLF Phase 2", RuleLocale},
	}
	for _, tt := range tests {
		t.Run(tt.segment, func(t *testing.T) {
			r, rejected := f.Check(tt.segment)
			require.True(t, rejected, "expected %q to be rejected", tt.segment)
			assert.Equal(t, tt.rule, r.Name)
		})
	}

	for _, keep := range []string{
		"Suspended Light", "Fan Point", "Switch Board", "Wall Light",
		"Magnetic Track Light", "Down Light", "Concealed Light", "Reveal Light",
		"Wall Washer Light", "Key Light",
	} {
		t.Run("keeps "+keep, func(t *testing.T) {
			r, rejected := f.Check(keep)
			assert.False(t, rejected, "rejected by %s", r.Name)
		})
	}
}

func TestFilterRequireHint(t *testing.T) {
	cfg := vocab.DefaultConfig()
	cfg.Extraction.RequireHint = true
	f := NewFilter(cfg.Extraction, cfg.Vocabulary)

	r, rejected := f.Check("Blue Panel")
	require.True(t, rejected)
	assert.Equal(t, RuleMissingHint, r.Name)

	_, rejected = f.Check("Cove Light")
	assert.False(t, rejected)

	names := make([]string, 0)
	for _, r := range f.Rules() {
		names = append(names, r.Name)
	}
	assert.Equal(t, RuleMissingHint, names[len(names)-1])
}

func TestFilterApply(t *testing.T) {
	cfg := vocab.DefaultConfig()
	f := NewFilter(cfg.Extraction, cfg.Vocabulary)

	entries, rejections := f.Apply("01 SUSPENDED LIGHT | 02 fan point, Scale 1:100\nL3 cove light")
	assert.Equal(t, []types.LegendEntry{
		{Code: "01", Term: "Suspended Light"},
		{Code: "02", Term: "Fan Point"},
		{Code: "L3", Term: "Cove Light"},
	}, entries)
	require.Len(t, rejections, 1)
	assert.Equal(t, "Scale 1:100", rejections[0].Segment)
	assert.Equal(t, RuleDigitRun, rejections[0].Rule)
}

func TestDedupe(t *testing.T) {
	in := []string{"Fan Point", "fan  point", "Cove Light", "FAN POINT", "Down Light", "cove light"}
	got, removed := Dedupe(in)
	assert.Equal(t, []string{"Fan Point", "Cove Light", "Down Light"}, got)
	assert.Equal(t, 3, removed)

	again, removed := Dedupe(got)
	assert.Equal(t, got, again)
	assert.Zero(t, removed)

	seen := map[string]bool{}
	for _, term := range got {
		key := dedupeKey(term)
		assert.False(t, seen[key], "duplicate %q", term)
		seen[key] = true
	}
}

func TestDedupeEntriesKeepsFirstCode(t *testing.T) {
	got, removed := DedupeEntries([]types.LegendEntry{
		{Code: "01", Term: "Cove Light"},
		{Code: "07", Term: "COVE LIGHT"},
	})
	assert.Equal(t, 1, removed)
	assert.Equal(t, []types.LegendEntry{{Code: "01", Term: "Cove Light"}}, got)
}

func TestExtractScenarioDrawnByRejected(t *testing.T) {
	cfg := vocab.DefaultConfig()
	cfg.Extraction.KeepRejections = true
	ex := NewExtractor(cfg)

	res := ex.Extract("A-101", "LEGEND:\n01 Suspended Light\nDrawn By: J. Doe\n02 Fan Point")

	assert.True(t, res.AnchorFound)
	assert.Equal(t, "A-101", res.Drawing)
	assert.Equal(t, []string{"Suspended Light", "Fan Point"}, res.LegendItems)
	assert.Equal(t, "01", res.Entries[0].Code)
	assert.Equal(t, "02", res.Entries[1].Code)
	require.Len(t, res.Rejections, 1)
	assert.Equal(t, RuleBoilerplate, res.Rejections[0].Rule)
}

func TestExtractStripsCodeBeforeDigit(t *testing.T) {
	got := ExtractTerms("LEGEND:\n01 Pendant Light\n02 2 Way Switch\n03 LED Strip Light")
	assert.Equal(t, []string{"Pendant Light", "2 Way Switch", "Led Strip Light"}, got)
}

func TestExtractMText(t *testing.T) {
	raw := `{\fArial|b1;LEGEND:}\P01 Suspended Light\P\C1;02 Fan Point\P03 Suspended light\PNOTES:\P1. All dims in mm`
	res := NewExtractor(vocab.DefaultConfig()).Extract("mtext", raw)

	assert.True(t, res.AnchorFound)
	assert.Equal(t, []string{"Suspended Light", "Fan Point"}, res.LegendItems)
	assert.Equal(t, 1, res.DuplicatesRemoved)
	assert.Empty(t, res.Rejections, "rejections are dropped unless kept")
}

func TestExtractFallsBackToFullText(t *testing.T) {
	res := NewExtractor(vocab.DefaultConfig()).Extract("plan", "01 Cove Light\n02 Down Light")
	assert.False(t, res.AnchorFound)
	assert.Equal(t, []string{"Cove Light", "Down Light"}, res.LegendItems)
}

func TestExtractEmpty(t *testing.T) {
	res := NewExtractor(vocab.DefaultConfig()).Extract("", "")
	assert.False(t, res.AnchorFound)
	assert.Empty(t, res.LegendItems)
	assert.Empty(t, ExtractTerms("   \n  "))
}
