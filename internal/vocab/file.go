// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vocab

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/legend-engine/pkg/types"
)

// WriteFile writes cfg as YAML to path so users have a complete starting
// point for retuning. An existing file is left alone unless force is set.
// It reports whether the file was written.
func WriteFile(path string, cfg types.Config, force bool) (bool, error) {
	clean := filepath.Clean(path)
	if !force {
		if _, err := os.Stat(clean); err == nil {
			return false, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return false, fmt.Errorf("checking %s: %w", clean, err)
		}
	}

	if dir := filepath.Dir(clean); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshaling config: %w", err)
	}
	tmp := clean + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return false, fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, clean); err != nil {
		return false, fmt.Errorf("renaming %s: %w", tmp, err)
	}
	return true, nil
}

// LoadFile reads a YAML config file over the defaults. Sections and lists
// present in the file replace the default ones; everything else keeps its
// default value. The result is validated.
func LoadFile(path string) (types.Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
