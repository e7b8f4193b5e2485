// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/legend-engine/internal/input"
	"github.com/pdiddy/legend-engine/pkg/types"
)

// textExt is the extension of annotation text files and debug dumps.
const textExt = ".txt"

// usageSuffixes are the sibling usage files looked up for a text file.
var usageSuffixes = []string{"-usage.json", "-usage.yaml", "-usage.yml"}

// Source is one drawing on disk: its annotation text (or debug dump) and
// an optional symbol usage file.
type Source struct {
	TextPath  string
	UsagePath string
}

// Drawing returns the drawing name of the source.
func (s Source) Drawing() string {
	return input.DrawingName(s.TextPath)
}

// Recorder stores completed runs.
type Recorder interface {
	SaveRun(ctx context.Context, run *types.Run) error
}

// BatchOptions controls RunBatch and ExtractBatch.
type BatchOptions struct {
	// OutDir receives the output files.
	OutDir string

	// Force reprocesses drawings whose outputs are up to date.
	Force bool

	// Recorder, when set, stores every completed run.
	Recorder Recorder
}

// BatchSummary holds counts from a batch run.
type BatchSummary struct {
	Processed int
	Skipped   int
	Failed    int
}

// Total returns the number of drawings seen.
func (s BatchSummary) Total() int {
	return s.Processed + s.Skipped + s.Failed
}

// HasFailures reports whether any drawing failed.
func (s BatchSummary) HasFailures() bool {
	return s.Failed > 0
}

// Sources expands paths into drawing sources. Directories contribute their
// .txt files; usage files are never treated as drawings. Each text file is
// paired with a sibling <drawing>-usage.json|yaml|yml when present.
func Sources(paths []string) ([]Source, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, fmt.Errorf("reading directory %s: %w", p, err)
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), textExt) {
				continue
			}
			files = append(files, filepath.Join(p, entry.Name()))
		}
	}
	sort.Strings(files)

	var out []Source
	for _, f := range files {
		if isUsageFile(f) {
			continue
		}
		src := Source{TextPath: f}
		dir := filepath.Dir(f)
		for _, suffix := range usageSuffixes {
			candidate := filepath.Join(dir, src.Drawing()+suffix)
			if _, err := os.Stat(candidate); err == nil {
				src.UsagePath = candidate
				break
			}
		}
		out = append(out, src)
	}
	return out, nil
}

func isUsageFile(path string) bool {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.HasSuffix(base, "-usage")
}

// Load reads the source into an engine input. Without a usage file the
// usage comes from the text file when it is a debug dump, and is empty
// otherwise.
func (s Source) Load() (Input, error) {
	in := Input{Drawing: s.Drawing(), Usage: types.SymbolUsage{}}

	data, err := os.ReadFile(s.TextPath)
	if err != nil {
		return in, fmt.Errorf("reading %s: %w", s.TextPath, err)
	}
	if input.IsDump(data) {
		d, err := input.ParseDump(bytes.NewReader(data))
		if err != nil {
			return in, fmt.Errorf("parsing %s: %w", s.TextPath, err)
		}
		in.Text = strings.ToValidUTF8(d.Text, "�")
		in.Usage = d.Usage
	} else {
		in.Text = strings.ToValidUTF8(string(data), "�")
	}

	if s.UsagePath != "" {
		usage, err := input.LoadUsage(s.UsagePath)
		if err != nil {
			return in, err
		}
		in.Usage = usage
	}
	return in, nil
}

// RunBatch runs the full pipeline over each source, writes its outputs to
// opts.OutDir and records it when a recorder is set. Drawings whose link
// file is newer than their inputs are skipped unless opts.Force is set.
// Failures are counted and the batch continues; only cancellation stops it.
func (e *Engine) RunBatch(ctx context.Context, sources []Source, opts BatchOptions, w io.Writer) (BatchSummary, error) {
	var summary BatchSummary

	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		drawing := src.Drawing()
		paths := PathsFor(opts.OutDir, drawing)

		if !opts.Force {
			changed, err := hasChanged(paths.Links, src.TextPath, src.UsagePath)
			if err != nil {
				fmt.Fprintf(w, "failed  %s: %v\n", drawing, err)
				summary.Failed++
				continue
			}
			if !changed {
				fmt.Fprintf(w, "skipped %s\n", drawing)
				summary.Skipped++
				continue
			}
		}

		in, err := src.Load()
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", drawing, err)
			summary.Failed++
			continue
		}

		res, err := e.Run(ctx, in)
		if err != nil {
			if ctx.Err() != nil {
				return summary, err
			}
			fmt.Fprintf(w, "failed  %s: %v\n", drawing, err)
			summary.Failed++
			continue
		}

		if err := WriteOutputs(paths, res); err != nil {
			fmt.Fprintf(w, "failed  %s: write error: %v\n", drawing, err)
			summary.Failed++
			continue
		}
		if opts.Recorder != nil {
			record := res.Record()
			if err := opts.Recorder.SaveRun(ctx, &record); err != nil {
				fmt.Fprintf(w, "failed  %s: recording run: %v\n", drawing, err)
				summary.Failed++
				continue
			}
		}

		fmt.Fprintf(w, "processed %s (%d terms, %d linked, %d for review, %d lights)\n",
			drawing, res.Summary.Total, res.Summary.Resolved, res.Summary.Unresolved, res.Lights.Total())
		summary.Processed++
	}

	fmt.Fprintf(w, "\nBatch summary: %d processed, %d skipped, %d failed (total: %d)\n",
		summary.Processed, summary.Skipped, summary.Failed, summary.Total())
	return summary, nil
}

// ExtractBatch extracts the legend of each source and writes its legend
// files. Drawings whose legend file is newer than the text are skipped
// unless opts.Force is set.
func (e *Engine) ExtractBatch(ctx context.Context, sources []Source, opts BatchOptions, w io.Writer) (BatchSummary, error) {
	var summary BatchSummary

	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		drawing := src.Drawing()
		paths := PathsFor(opts.OutDir, drawing)

		if !opts.Force {
			changed, err := hasChanged(paths.LegendYAML, src.TextPath)
			if err != nil {
				fmt.Fprintf(w, "failed  %s: %v\n", drawing, err)
				summary.Failed++
				continue
			}
			if !changed {
				fmt.Fprintf(w, "skipped %s\n", drawing)
				summary.Skipped++
				continue
			}
		}

		text, err := input.ReadText(src.TextPath)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", drawing, err)
			summary.Failed++
			continue
		}
		res := e.Extract(drawing, text)
		if err := WriteLegend(paths, res); err != nil {
			fmt.Fprintf(w, "failed  %s: write error: %v\n", drawing, err)
			summary.Failed++
			continue
		}

		fmt.Fprintf(w, "extracted %s (%d terms", drawing, len(res.LegendItems))
		if !res.AnchorFound {
			fmt.Fprint(w, ", no legend anchor")
		}
		fmt.Fprintln(w, ")")
		summary.Processed++
	}

	fmt.Fprintf(w, "\nBatch summary: %d extracted, %d skipped, %d failed (total: %d)\n",
		summary.Processed, summary.Skipped, summary.Failed, summary.Total())
	return summary, nil
}

// hasChanged reports whether any input is newer than the output file.
// Returns true if the output does not exist. Empty input paths are ignored.
func hasChanged(outPath string, inputs ...string) (bool, error) {
	outInfo, err := os.Stat(outPath)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("stat output %s: %w", outPath, err)
	}

	for _, in := range inputs {
		if in == "" {
			continue
		}
		info, err := os.Stat(in)
		if err != nil {
			return false, fmt.Errorf("stat input %s: %w", in, err)
		}
		if info.ModTime().After(outInfo.ModTime()) {
			return true, nil
		}
	}
	return false, nil
}
