// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/legend-engine/internal/input"
	"github.com/pdiddy/legend-engine/internal/pipeline"
	"github.com/pdiddy/legend-engine/internal/report"
	"github.com/pdiddy/legend-engine/pkg/types"
)

var linkCmd = &cobra.Command{
	Use:   "link [legend-file] [usage-file]",
	Short: "Link legend items to drawing symbols",
	Long: `Link scores every legend item against every symbol in the usage file
(token overlap, containment, naming hints and a usage prior) and accepts
the best symbol only when it clears the confidence guardrail.

The legend file is a -legend.yaml or -legend.json file from extract (or a
plain JSON array of terms). The usage file is JSON or YAML ({"NAME": count})
or a DXF debug dump with a Block Inserts section.

With --out the rounded results are written as a JSON array; otherwise a
table (or --json) is printed.`,
	Args: cobra.ExactArgs(2),
	RunE: runLink,
}

func runLink(cmd *cobra.Command, args []string) error {
	outPath, _ := cmd.Flags().GetString("out")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	terms, err := pipeline.ReadLegend(args[0])
	if err != nil {
		return err
	}
	usage, err := input.LoadUsage(args[1])
	if err != nil {
		return err
	}

	engine, err := newEngine()
	if err != nil {
		return err
	}
	links, err := engine.Link(context.Background(), terms, usage)
	if err != nil {
		return err
	}

	if outPath != "" {
		if err := pipeline.WriteLinks(outPath, links); err != nil {
			return err
		}
		s := types.SummarizeLinks(links)
		fmt.Printf("wrote %s (%d linked, %d for review)\n", outPath, s.Resolved, s.Unresolved)
		return nil
	}
	if jsonOutput {
		return report.FormatJSON(types.RoundAll(links), os.Stdout)
	}
	report.FormatTable(links, os.Stdout)
	return nil
}

var linkExplainCmd = &cobra.Command{
	Use:   "explain [term] [usage-file]",
	Short: "Show the signals behind every candidate symbol of one term",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		usage, err := input.LoadUsage(args[1])
		if err != nil {
			return err
		}
		engine, err := newEngine()
		if err != nil {
			return err
		}
		links, err := engine.Link(context.Background(), []string{args[0]}, usage)
		if err != nil {
			return err
		}
		res := links[0]

		fmt.Printf("%-24s  %-7s  %-7s  %-5s  %-5s  %s\n", "Symbol", "Overlap", "Contain", "Hint", "Prior", "Score")
		for _, c := range res.Candidates {
			s := engine.Signals(args[0], c.Symbol, usage[c.Symbol])
			fmt.Printf("%-24s  %-7.3f  %-7.3f  %-5.2f  %-5.3f  %.3f\n",
				c.Symbol, s.Overlap, s.Containment, s.Hint, s.Prior, c.Score)
		}
		if res.Resolved() {
			fmt.Printf("\naccepted %s\n", res.Block())
		} else {
			fmt.Println("\nunresolved (manual review)")
		}
		return nil
	},
}

func init() {
	linkCmd.Flags().String("out", "", "write the link results to this JSON file")
	linkCmd.Flags().Bool("json", false, "print the link results as JSON")

	linkCmd.AddCommand(linkExplainCmd)
	rootCmd.AddCommand(linkCmd)
}
