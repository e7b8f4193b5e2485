// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders a pipeline run for people: a Markdown or HTML
// document with the legend, the light counts and the link table, and a
// plain-text link table for the terminal.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/pdiddy/legend-engine/pkg/types"
)

// Markdown renders run as a Markdown document with GFM tables.
func Markdown(run types.Run) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Legend report: %s\n\n", escapeCell(run.Drawing))
	if run.ID != "" {
		fmt.Fprintf(&b, "Run `%s`", run.ID)
		if !run.CreatedAt.IsZero() {
			fmt.Fprintf(&b, " recorded %s", run.CreatedAt.UTC().Format("2006-01-02 15:04 MST"))
		}
		b.WriteString("\n\n")
	}

	b.WriteString("## Legend\n\n")
	if len(run.Legend) == 0 {
		b.WriteString("No legend items found.\n\n")
	} else {
		for i, term := range run.Legend {
			fmt.Fprintf(&b, "%d. %s\n", i+1, term)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Light counts\n\n")
	items := run.Lights.Items()
	if len(items) == 0 {
		b.WriteString("No lighting fixtures counted.\n\n")
	} else {
		b.WriteString("| Light | Category | Count |\n|---|---|---:|\n")
		for _, it := range items {
			fmt.Fprintf(&b, "| %s | %s | %d |\n", escapeCell(it.Name), escapeCell(it.Category), it.Count)
		}
		fmt.Fprintf(&b, "| **Total** | | **%d** |\n\n", run.Lights.Total())
	}

	b.WriteString("## Symbol links\n\n")
	if len(run.Links) == 0 {
		b.WriteString("No links computed.\n\n")
	} else {
		b.WriteString("| Legend item | Block | Score | Candidates |\n|---|---|---:|---|\n")
		for _, l := range types.RoundAll(run.Links) {
			block := "_review_"
			score := "-"
			if l.Resolved() {
				block = "`" + escapeCell(l.Block()) + "`"
				score = fmt.Sprintf("%.3f", l.Score)
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
				escapeCell(l.LegendItem), block, score, formatCandidates(l.Candidates))
		}
		b.WriteString("\n")
	}

	summary := types.SummarizeLinks(run.Links)
	fmt.Fprintf(&b, "%d legend items, %d linked, %d for review, %d lights.\n",
		summary.Total, summary.Resolved, summary.Unresolved, run.Lights.Total())
	return b.String()
}

// HTML renders run as a standalone HTML page.
func HTML(run types.Run) (string, error) {
	var content bytes.Buffer
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := md.Convert([]byte(Markdown(run)), &content); err != nil {
		return "", fmt.Errorf("markdown convert: %w", err)
	}
	title := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(run.Drawing)
	return "<!doctype html><html><head><meta charset='utf-8'><title>Legend report: " + title + "</title>" +
		"<style>" + styleCSS + "</style></head><body>" +
		content.String() +
		"</body></html>\n", nil
}

const styleCSS = "body{font-family:sans-serif;max-width:960px;margin:2rem auto;padding:0 1rem;color:#1c1917;} " +
	"table{border-collapse:collapse;width:100%;font-size:0.9rem;} " +
	"th,td{border:1px solid #a8a29e;padding:0.3rem 0.5rem;text-align:left;vertical-align:top;} " +
	"thead th{background:#f1f5f9;} td:nth-child(3){text-align:right;}"

// FormatTable writes the link results as an aligned text table to w.
func FormatTable(links []types.LinkResult, w io.Writer) {
	if len(links) == 0 {
		fmt.Fprintln(w, "No legend items.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-32s  %-24s  %-6s  %s\n", "#", "Legend item", "Block", "Score", "Top candidates")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for i, l := range types.RoundAll(links) {
		block := "(review)"
		score := ""
		if l.Resolved() {
			block = truncate(l.Block(), 24)
			score = fmt.Sprintf("%.3f", l.Score)
		}
		fmt.Fprintf(w, "%-4d  %-32s  %-24s  %-6s  %s\n",
			i+1, truncate(l.LegendItem, 32), block, score, formatCandidates(l.Candidates))
	}

	s := types.SummarizeLinks(links)
	fmt.Fprintf(w, "\n%d items, %d linked, %d for review\n", s.Total, s.Resolved, s.Unresolved)
}

// FormatLights writes light counts as a text table to w.
func FormatLights(lights types.LightCounts, w io.Writer) {
	items := lights.Items()
	if len(items) == 0 {
		fmt.Fprintln(w, "No lighting fixtures counted.")
		return
	}
	fmt.Fprintf(w, "%-32s  %-16s  %s\n", "Light", "Category", "Count")
	fmt.Fprintln(w, strings.Repeat("-", 58))
	for _, it := range items {
		fmt.Fprintf(w, "%-32s  %-16s  %5d\n", truncate(it.Name, 32), it.Category, it.Count)
	}
	fmt.Fprintf(w, "%-32s  %-16s  %5d\n", "Total", "", lights.Total())
}

// FormatJSON writes v as indented JSON to w.
func FormatJSON(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatCandidates(cands []types.Candidate) string {
	if len(cands) == 0 {
		return "none"
	}
	parts := make([]string, len(cands))
	for i, c := range cands {
		parts[i] = fmt.Sprintf("%s (%.3f)", c.Symbol, c.Score)
	}
	return escapeCell(strings.Join(parts, ", "))
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
