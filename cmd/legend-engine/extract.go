// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/legend-engine/internal/input"
	"github.com/pdiddy/legend-engine/internal/pipeline"
	"github.com/pdiddy/legend-engine/internal/report"
	"github.com/pdiddy/legend-engine/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract [files or directories...]",
	Short: "Extract the legend from drawing annotation text",
	Long: `Extract reads annotation text (plain text or a DXF debug dump), finds the
legend block, filters out everything that is not a legend item and writes
<drawing>-legend.yaml and <drawing>-legend.json to the output directory.

Directories contribute their .txt files. Drawings whose legend file is newer
than the text are skipped unless --force is given.

Use --trace to print every rejected segment and the rule that rejected it
instead of writing files.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	trace, _ := cmd.Flags().GetBool("trace")
	force, _ := cmd.Flags().GetBool("force")

	sources, err := pipeline.Sources(args)
	if err != nil {
		return err
	}

	if trace {
		engineCfg.Extraction.KeepRejections = true
	}
	engine, err := newEngine()
	if err != nil {
		return err
	}

	if trace {
		return traceExtraction(engine, sources)
	}

	summary, err := engine.ExtractBatch(context.Background(), sources,
		pipeline.BatchOptions{OutDir: outDirFlag(cmd), Force: force}, os.Stdout)
	if err != nil {
		return err
	}
	if summary.HasFailures() {
		return fmt.Errorf("%d drawing(s) failed extraction", summary.Failed)
	}
	return nil
}

func traceExtraction(engine *pipeline.Engine, sources []pipeline.Source) error {
	for _, src := range sources {
		text, err := input.ReadText(src.TextPath)
		if err != nil {
			return err
		}
		res := engine.Extract(src.Drawing(), text)
		printTrace(res)
	}
	return nil
}

func printTrace(res types.ExtractionResult) {
	fmt.Printf("== %s", res.Drawing)
	if !res.AnchorFound {
		fmt.Print(" (no legend anchor, full text searched)")
	}
	fmt.Println()

	for _, e := range res.Entries {
		code := e.Code
		if code == "" {
			code = "-"
		}
		fmt.Printf("  keep    %-5s %s\n", code, e.Term)
	}
	for _, r := range res.Rejections {
		fmt.Printf("  reject  %-18s %s\n", r.Rule, r.Segment)
	}
	fmt.Printf("%d kept, %d rejected, %d duplicates removed\n\n",
		len(res.Entries), len(res.Rejections), res.DuplicatesRemoved)
}

var extractShowCmd = &cobra.Command{
	Use:   "show [file]",
	Short: "Print the legend of one drawing without writing files",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Flags().GetBool("json")
		engine, err := newEngine()
		if err != nil {
			return err
		}
		text, err := input.ReadText(args[0])
		if err != nil {
			return err
		}
		res := engine.Extract(input.DrawingName(args[0]), text)
		if jsonOutput {
			return report.FormatJSON(res, os.Stdout)
		}
		fmt.Println(strings.Join(res.LegendItems, "\n"))
		return nil
	},
}

func init() {
	extractCmd.Flags().String("out-dir", "", "output directory (default: <data-dir>/output)")
	extractCmd.Flags().Bool("force", false, "re-extract drawings whose legend is up to date")
	extractCmd.Flags().Bool("trace", false, "print kept and rejected segments instead of writing files")

	extractShowCmd.Flags().Bool("json", false, "print the full extraction result as JSON")
	extractCmd.AddCommand(extractShowCmd)

	rootCmd.AddCommand(extractCmd)
}
