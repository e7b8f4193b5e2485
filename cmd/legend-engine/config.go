// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/legend-engine/internal/vocab"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Write or show the engine configuration",
	Long: `The configuration holds the extraction limits, linking weights and
guardrail, light classification settings and every vocabulary list the
heuristics use. All of it can be retuned in legend-engine.yaml.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration to legend-engine.yaml",
	// The current configuration may be the broken one being replaced.
	PersistentPreRunE: skipConfig,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("path")
		force, _ := cmd.Flags().GetBool("force")

		written, err := vocab.WriteFile(path, vocab.DefaultConfig(), force)
		if err != nil {
			return err
		}
		if !written {
			fmt.Printf("%s already exists (use --force to overwrite)\n", path)
			return nil
		}
		fmt.Println("Wrote", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(&engineCfg)
	},
}

func init() {
	configInitCmd.Flags().String("path", "legend-engine.yaml", "where to write the configuration")
	configInitCmd.Flags().Bool("force", false, "overwrite an existing file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
