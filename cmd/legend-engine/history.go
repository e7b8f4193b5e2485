// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/legend-engine/internal/report"
	"github.com/pdiddy/legend-engine/internal/store"
	"github.com/pdiddy/legend-engine/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded runs and the manual review queue",
	Long: `History works over the SQLite run history at <data-dir>/index/legend.db.
Every "run" records the legend, the link results and the light counts of a
drawing. Links the guardrail withheld form the review queue.`,
}

// --- list subcommand ---

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Flags().GetBool("json")
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		runs, err := s.ListRuns(context.Background(), runQueryFromFlags(cmd))
		if err != nil {
			return err
		}
		if jsonOutput {
			return report.FormatJSON(runs, os.Stdout)
		}
		if len(runs) == 0 {
			fmt.Println("No runs recorded.")
			return nil
		}

		fmt.Printf("%-8s  %-24s  %-16s  %5s  %6s  %6s\n", "Run", "Drawing", "Created", "Terms", "Linked", "Review")
		fmt.Println(strings.Repeat("-", 74))
		for _, r := range runs {
			fmt.Printf("%-8s  %-24s  %-16s  %5d  %6d  %6d\n",
				shortID(r.ID), r.Drawing, r.CreatedAt.Local().Format("2006-01-02 15:04"),
				r.Terms, r.Resolved, r.Unresolved)
		}
		fmt.Printf("\n%d runs\n", len(runs))
		return nil
	},
}

// --- show subcommand ---

var historyShowCmd = &cobra.Command{
	Use:   "show [run-id or drawing]",
	Short: "Show the links and light counts of one run",
	Long: `Show prints one stored run. The argument is a run ID, a unique ID prefix,
or a drawing name (its latest run is shown).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Flags().GetBool("json")
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		run, err := findRun(context.Background(), s, args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			return report.FormatJSON(run, os.Stdout)
		}

		fmt.Printf("Run %s  %s  %s\n\n", run.ID, run.Drawing, run.CreatedAt.Local().Format("2006-01-02 15:04"))
		report.FormatTable(run.Links, os.Stdout)
		fmt.Println()
		report.FormatLights(run.Lights, os.Stdout)
		return nil
	},
}

// --- review subcommand ---

var historyReviewCmd = &cobra.Command{
	Use:   "review [run-id]",
	Short: "List unresolved links awaiting manual review",
	Long: `Review lists the legend items the guardrail left unresolved, with their
top candidates. Without a run ID every recorded run is searched.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Flags().GetBool("json")
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		runID := ""
		if len(args) == 1 {
			runID = args[0]
		}
		rows, err := s.Unresolved(context.Background(), runID)
		if err != nil {
			return err
		}
		if jsonOutput {
			return report.FormatJSON(rows, os.Stdout)
		}
		if len(rows) == 0 {
			fmt.Println("Nothing to review.")
			return nil
		}

		fmt.Printf("%-8s  %-20s  %-32s  %s\n", "Run", "Drawing", "Legend item", "Candidates")
		fmt.Println(strings.Repeat("-", 100))
		for _, r := range rows {
			fmt.Printf("%-8s  %-20s  %-32s  %s\n",
				shortID(r.RunID), r.Drawing, r.LegendItem, candidateList(r.Candidates))
		}
		fmt.Printf("\n%d items for review\n", len(rows))
		return nil
	},
}

// --- export subcommand ---

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recorded runs to YAML or JSON",
	Long: `Export writes the recorded runs (or those of one drawing) to
<data-dir>/index/export.yaml or export.json.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		q := runQueryFromFlags(cmd)
		var path string
		switch format {
		case "yaml", "":
			path, err = s.ExportYAML(context.Background(), q)
		case "json":
			path, err = s.ExportJSON(context.Background(), q)
		default:
			return fmt.Errorf("unsupported format %q: use yaml or json", format)
		}
		if err != nil {
			return err
		}
		fmt.Println("Exported to", path)
		return nil
	},
}

// --- delete subcommand ---

var historyDeleteCmd = &cobra.Command{
	Use:   "delete [run-id]",
	Short: "Delete a recorded run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()
		if err := s.DeleteRun(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Println("Deleted", args[0])
		return nil
	},
}

// --- shared helpers ---

// findRun resolves ref as a run ID (or prefix), then as a drawing name.
func findRun(ctx context.Context, s *store.Store, ref string) (types.Run, error) {
	run, err := s.GetRun(ctx, ref)
	if errors.Is(err, store.ErrRunNotFound) {
		return s.LatestRun(ctx, ref)
	}
	return run, err
}

func runQueryFromFlags(cmd *cobra.Command) store.RunQuery {
	drawing, _ := cmd.Flags().GetString("drawing")
	unresolved, _ := cmd.Flags().GetBool("unresolved")
	limit, _ := cmd.Flags().GetInt("limit")
	return store.RunQuery{Drawing: drawing, WithUnresolved: unresolved, Limit: limit}
}

func candidateList(cands []types.Candidate) string {
	if len(cands) == 0 {
		return "none"
	}
	parts := make([]string, len(cands))
	for i, c := range cands {
		parts[i] = fmt.Sprintf("%s %.3f", c.Symbol, c.Score)
	}
	return strings.Join(parts, ", ")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	for _, c := range []*cobra.Command{historyListCmd, historyExportCmd} {
		c.Flags().String("drawing", "", "only runs of this drawing")
		c.Flags().Bool("unresolved", false, "only runs with unresolved links")
		c.Flags().Int("limit", 0, "maximum runs (0 = default)")
	}
	historyListCmd.Flags().Bool("json", false, "output runs as JSON")
	historyShowCmd.Flags().Bool("json", false, "output the run as JSON")
	historyReviewCmd.Flags().Bool("json", false, "output the review queue as JSON")
	historyExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyReviewCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyDeleteCmd)

	rootCmd.AddCommand(historyCmd)
}
