// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/legend-engine/internal/input"
	"github.com/pdiddy/legend-engine/internal/pipeline"
	"github.com/pdiddy/legend-engine/internal/report"
	"github.com/pdiddy/legend-engine/pkg/types"
)

var lightsCmd = &cobra.Command{
	Use:   "lights [text-file]",
	Short: "Count lighting fixtures by category",
	Long: `Lights classifies the lighting items of a drawing into canonical
categories (Pendant Light, Magnetic Track Light, Cove Light, Down Light, ...)
and counts them.

With a legend (--legend, or extracted from the text when omitted) each
lighting legend item is counted by its occurrences in the text. A drawing
without a legend has every lighting line counted once.

Use --categorize to print the category of each legend item instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runLights,
}

func runLights(cmd *cobra.Command, args []string) error {
	legendPath, _ := cmd.Flags().GetString("legend")
	outPath, _ := cmd.Flags().GetString("out")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	categorize, _ := cmd.Flags().GetBool("categorize")

	engine, err := newEngine()
	if err != nil {
		return err
	}
	text, err := input.ReadText(args[0])
	if err != nil {
		return err
	}

	var terms []string
	if legendPath != "" {
		if terms, err = pipeline.ReadLegend(legendPath); err != nil {
			return err
		}
	} else {
		terms = engine.Extract(input.DrawingName(args[0]), text).LegendItems
	}

	if categorize {
		matches := engine.Categorize(terms)
		if jsonOutput {
			return report.FormatJSON(matches, os.Stdout)
		}
		for _, m := range matches {
			fmt.Printf("%-32s  %-22s  %-8s  %.1f\n", m.Input, m.Category, m.Method, m.Similarity)
		}
		return nil
	}

	doc := types.LightsDocument{Legend: terms, Lights: engine.Lights(text, terms)}
	if outPath != "" {
		if err := pipeline.WriteLights(outPath, doc); err != nil {
			return err
		}
		fmt.Printf("wrote %s (%d lights)\n", outPath, doc.Lights.Total())
		return nil
	}
	if jsonOutput {
		if doc.Legend == nil {
			doc.Legend = []string{}
		}
		return report.FormatJSON(doc, os.Stdout)
	}
	report.FormatLights(doc.Lights, os.Stdout)
	return nil
}

func init() {
	lightsCmd.Flags().String("legend", "", "legend file from extract (default: extract from the text)")
	lightsCmd.Flags().String("out", "", "write the lights document to this JSON file")
	lightsCmd.Flags().Bool("json", false, "print the lights document as JSON")
	lightsCmd.Flags().Bool("categorize", false, "print the category of each lighting legend item")

	rootCmd.AddCommand(lightsCmd)
}
