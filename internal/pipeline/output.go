// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/legend-engine/internal/report"
	"github.com/pdiddy/legend-engine/pkg/types"
)

// Output file suffixes, appended to the drawing name.
const (
	LegendYAMLSuffix = "-legend.yaml"
	LegendJSONSuffix = "-legend.json"
	LinksSuffix      = "-links.json"
	LightsSuffix     = "-lights.json"
	ReportSuffix     = "-report.md"
)

// legendDocument is the JSON legend file.
type legendDocument struct {
	LegendItems []string `json:"legend_items"`
}

// OutputPaths lists the files written for one drawing.
type OutputPaths struct {
	LegendYAML string
	LegendJSON string
	Links      string
	Lights     string
	Report     string
}

// PathsFor returns the output paths of drawing under dir.
func PathsFor(dir, drawing string) OutputPaths {
	base := filepath.Join(dir, drawing)
	return OutputPaths{
		LegendYAML: base + LegendYAMLSuffix,
		LegendJSON: base + LegendJSONSuffix,
		Links:      base + LinksSuffix,
		Lights:     base + LightsSuffix,
		Report:     base + ReportSuffix,
	}
}

// WriteLegend writes the extraction result as YAML and the legend items as
// {"legend_items": [...]} JSON.
func WriteLegend(p OutputPaths, res types.ExtractionResult) error {
	data, err := yaml.Marshal(&res)
	if err != nil {
		return fmt.Errorf("marshaling legend: %w", err)
	}
	if err := writeFile(p.LegendYAML, data); err != nil {
		return err
	}
	items := res.LegendItems
	if items == nil {
		items = []string{}
	}
	return writeJSON(p.LegendJSON, legendDocument{LegendItems: items})
}

// ReadLegend loads legend terms from a legend file: the YAML extraction
// result, the {"legend_items": [...]} JSON form or a plain JSON array.
func ReadLegend(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var list []string
	if json.Unmarshal(data, &list) == nil {
		return list, nil
	}
	var doc legendDocument
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc.LegendItems, nil
	}
	var res types.ExtractionResult
	if err := yaml.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return res.LegendItems, nil
}

// WriteLinks writes the link results as a JSON array, rounded to 3
// decimals. Unresolved terms keep "best_block": null.
func WriteLinks(path string, links []types.LinkResult) error {
	return writeJSON(path, types.RoundAll(links))
}

// ReadLinks loads a link file written by WriteLinks.
func ReadLinks(path string) ([]types.LinkResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var links []types.LinkResult
	if err := json.Unmarshal(data, &links); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return links, nil
}

// WriteLights writes the lights document as JSON.
func WriteLights(path string, doc types.LightsDocument) error {
	if doc.Legend == nil {
		doc.Legend = []string{}
	}
	return writeJSON(path, doc)
}

// WriteOutputs writes every output file of a run.
func WriteOutputs(p OutputPaths, res RunResult) error {
	if err := WriteLegend(p, res.Extraction); err != nil {
		return err
	}
	if err := WriteLinks(p.Links, res.Links); err != nil {
		return err
	}
	if err := WriteLights(p.Lights, res.LightsDocument()); err != nil {
		return err
	}
	return writeFile(p.Report, []byte(report.Markdown(res.Record())))
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", filepath.Base(path), err)
	}
	return writeFile(path, append(data, '\n'))
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
