// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/legend-engine/pkg/types"
)

func sampleRun() types.Run {
	best := "PEND_01"
	run := types.Run{
		ID:      "0f8fad5b-d9cb-469f-a165-70867728950e",
		Drawing: "A-101",
		Legend:  []string{"Pendant Light", "Fire Alarm Panel"},
		Links: []types.LinkResult{
			{
				LegendItem: "Pendant Light",
				BestBlock:  &best,
				Score:      0.564012,
				Candidates: []types.Candidate{{Symbol: "PEND_01", Score: 0.564012}},
			},
			{LegendItem: "Fire Alarm Panel", Candidates: []types.Candidate{}},
		},
	}
	run.Lights.Add("Pendant Light", "Pendant", 2)
	run.Lights.Add("Down Light", "Recessed/Down", 3)
	return run
}

func TestMarkdown(t *testing.T) {
	md := Markdown(sampleRun())

	assert.Contains(t, md, "# Legend report: A-101")
	assert.Contains(t, md, "1. Pendant Light\n2. Fire Alarm Panel\n")
	assert.Contains(t, md, "| Down Light | Recessed/Down | 3 |")
	assert.Contains(t, md, "| **Total** | | **5** |")
	assert.Contains(t, md, "| Pendant Light | `PEND_01` | 0.564 | PEND_01 (0.564) |")
	assert.Contains(t, md, "| Fire Alarm Panel | _review_ | - | none |")
	assert.Contains(t, md, "2 legend items, 1 linked, 1 for review, 5 lights.")

	// Legend order is preserved in every section.
	assert.Less(t, strings.Index(md, "Pendant Light"), strings.Index(md, "Fire Alarm Panel"))
}

func TestMarkdownEmptyRun(t *testing.T) {
	md := Markdown(types.Run{Drawing: "B-2"})
	assert.Contains(t, md, "No legend items found.")
	assert.Contains(t, md, "No lighting fixtures counted.")
	assert.Contains(t, md, "No links computed.")
	assert.NotContains(t, md, "Run `")
}

func TestMarkdownEscapesPipes(t *testing.T) {
	run := types.Run{Drawing: "X", Links: []types.LinkResult{{LegendItem: "A|B", Candidates: []types.Candidate{}}}}
	assert.Contains(t, Markdown(run), `| A\|B |`)
}

func TestHTML(t *testing.T) {
	run := sampleRun()
	run.Drawing = "A<101>"
	html, err := HTML(run)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(html, "<!doctype html>"))
	assert.Contains(t, html, "<title>Legend report: A&lt;101&gt;</title>")
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "<td>Down Light</td>")
	assert.Contains(t, html, "<code>PEND_01</code>")
	assert.Contains(t, html, "<ol>")
}

func TestFormatTable(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(sampleRun().Links, &buf)
	out := buf.String()

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 4)
	assert.Contains(t, lines[2], "PEND_01")
	assert.Contains(t, lines[2], "0.564")
	assert.Contains(t, lines[3], "(review)")
	assert.Contains(t, out, "2 items, 1 linked, 1 for review")

	buf.Reset()
	FormatTable(nil, &buf)
	assert.Equal(t, "No legend items.\n", buf.String())
}

func TestFormatLights(t *testing.T) {
	var buf bytes.Buffer
	FormatLights(sampleRun().Lights, &buf)
	out := buf.String()
	assert.Contains(t, out, "Pendant Light")
	assert.Regexp(t, `Total\s+5\n$`, out)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd...", truncate("abcdefghij", 7))
}
