// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the legend-engine CLI.
// Each pipeline stage is a subcommand: extract, link, lights and run, with
// history and report working over the stored runs.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/legend-engine/internal/logging"
	"github.com/pdiddy/legend-engine/internal/pipeline"
	"github.com/pdiddy/legend-engine/internal/store"
	"github.com/pdiddy/legend-engine/internal/vocab"
	"github.com/pdiddy/legend-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// Loaded once per invocation by the root PersistentPreRunE.
var (
	engineCfg types.Config
	logger    = zap.NewNop()
)

// outputDir is the default output directory under the data directory.
const outputDir = "output"

// rootCmd is the base command for the legend-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "legend-engine",
	Short: "Extract drawing legends, link them to symbols and count lights",
	Long: `legend-engine turns annotation text extracted from architectural drawings
into a clean legend, links each legend item to the drawing symbol it most
likely labels, and counts lighting fixtures by category.

Links are only accepted above a confidence threshold; everything else is
left unresolved for manual review (see "history review").`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		engineCfg = cfg
		l, err := logging.New(cfg.Log, os.Stderr)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./legend-engine.yaml or ~/.config/legend-engine/legend-engine.yaml)")
	pf.String("data-dir", "", "base directory for outputs and run history (default: data)")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.String("log-format", "", "log format: console or json")
	pf.Int("workers", 0, "parallel workers for linking (0 = use config)")

	_ = viper.BindPFlag("store.data_dir", pf.Lookup("data-dir"))
	_ = viper.BindPFlag("log.level", pf.Lookup("log-level"))
	_ = viper.BindPFlag("log.format", pf.Lookup("log-format"))
	_ = viper.BindPFlag("linking.workers", pf.Lookup("workers"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("legend-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "legend-engine"))
		}
	}

	viper.SetEnvPrefix("LEGEND_ENGINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig starts from the defaults, overlays the config file found by
// viper and then the scalar settings viper resolves from flags and the
// environment.
func loadConfig() (types.Config, error) {
	cfg := vocab.DefaultConfig()
	if path := viper.ConfigFileUsed(); path != "" {
		if _, err := os.Stat(path); err == nil {
			loaded, err := vocab.LoadFile(path)
			if err != nil {
				return cfg, err
			}
			cfg = loaded
		}
	}

	if v := viper.GetString("store.data_dir"); v != "" {
		cfg.Store.DataDir = v
	}
	if v := viper.GetString("log.level"); v != "" {
		cfg.Log.Level = v
	}
	if v := viper.GetString("log.format"); v != "" {
		cfg.Log.Format = v
	}
	if v := viper.GetInt("linking.workers"); v > 0 {
		cfg.Linking.Workers = v
	}
	if v := viper.GetString("lights.strategy"); v != "" {
		cfg.Lights.Strategy = types.LightStrategy(v)
	}
	return cfg, cfg.Validate()
}

// --- shared helpers ---

// skipConfig replaces the root pre-run for commands that must work without
// a valid configuration.
func skipConfig(cmd *cobra.Command, args []string) error { return nil }

func newEngine() (*pipeline.Engine, error) {
	return pipeline.New(engineCfg, pipeline.WithLogger(logger))
}

func openStore() (*store.Store, error) {
	return store.Open(engineCfg.Store)
}

// outDirFlag returns --out-dir or the default output directory.
func outDirFlag(cmd *cobra.Command) string {
	dir, _ := cmd.Flags().GetString("out-dir")
	if dir == "" {
		dir = filepath.Join(engineCfg.Store.DataDir, outputDir)
	}
	return dir
}

// writeOrPrint writes data to path, or to stdout when path is empty.
func writeOrPrint(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", path)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
