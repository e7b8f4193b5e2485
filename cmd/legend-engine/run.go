// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/legend-engine/internal/pipeline"
)

var runCmd = &cobra.Command{
	Use:   "run [files or directories...]",
	Short: "Run the full pipeline over drawings and record the results",
	Long: `Run extracts the legend, links it to the drawing symbols and counts the
lights of each drawing, then writes the legend, link, lights and report
files to the output directory and records the run in the history database.

A text file a.txt is paired with a sibling a-usage.json, a-usage.yaml or
a-usage.yml; a DXF debug dump carries its own usage. Drawings whose link file
is newer than their inputs are skipped unless --force is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	noHistory, _ := cmd.Flags().GetBool("no-history")

	sources, err := pipeline.Sources(args)
	if err != nil {
		return err
	}
	engine, err := newEngine()
	if err != nil {
		return err
	}

	opts := pipeline.BatchOptions{OutDir: outDirFlag(cmd), Force: force}
	if !noHistory {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()
		opts.Recorder = s
	}

	summary, err := engine.RunBatch(context.Background(), sources, opts, os.Stdout)
	if err != nil {
		return err
	}
	if summary.HasFailures() {
		return fmt.Errorf("%d drawing(s) failed", summary.Failed)
	}
	return nil
}

func init() {
	runCmd.Flags().String("out-dir", "", "output directory (default: <data-dir>/output)")
	runCmd.Flags().Bool("force", false, "rerun drawings whose outputs are up to date")
	runCmd.Flags().Bool("no-history", false, "do not record runs in the history database")

	rootCmd.AddCommand(runCmd)
}
