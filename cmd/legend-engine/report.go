// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/legend-engine/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report [run-id or drawing]",
	Short: "Render a stored run as a Markdown or HTML report",
	Long: `Report renders the legend, light counts and link table of a stored run.
The argument is a run ID, a unique ID prefix, or a drawing name (its latest
run is used). The report is printed unless --out is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		outPath, _ := cmd.Flags().GetString("out")

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		run, err := findRun(context.Background(), s, args[0])
		if err != nil {
			return err
		}

		var out string
		switch format {
		case "md", "markdown", "":
			out = report.Markdown(run)
		case "html":
			if out, err = report.HTML(run); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unsupported format %q: use md or html", format)
		}
		return writeOrPrint(outPath, []byte(out))
	},
}

func init() {
	reportCmd.Flags().String("format", "md", "report format: md or html")
	reportCmd.Flags().String("out", "", "write the report to this file")

	rootCmd.AddCommand(reportCmd)
}
