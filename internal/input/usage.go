// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package input reads the engine's inputs from disk: annotation text files,
// symbol usage files in JSON or YAML, and the plain-text debug dump a DXF
// reader produces (block insert counts plus TEXT and MTEXT entities).
package input

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/legend-engine/pkg/types"
)

// LoadUsage reads a symbol usage file. The format follows the extension:
// .json and .yaml/.yml hold a name to count mapping; anything else is read
// as a debug dump and its block insert section is used. The result is
// validated.
func LoadUsage(path string) (types.SymbolUsage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var usage types.SymbolUsage
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		usage, err = ParseUsageJSON(data)
	case ".yaml", ".yml":
		usage, err = ParseUsageYAML(data)
	default:
		var d Dump
		d, err = ParseDump(bytes.NewReader(data))
		usage = d.Usage
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := usage.Validate(); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return usage, nil
}

// ParseUsageJSON decodes {"NAME": count}. A value that is not an integer,
// null included, is an ErrInvalidUsage.
func ParseUsageJSON(data []byte) (types.SymbolUsage, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return types.SymbolUsage{}, nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidUsage, err)
	}
	usage := make(types.SymbolUsage, len(raw))
	for name, val := range raw {
		var n int
		if bytes.Equal(bytes.TrimSpace(val), []byte("null")) {
			return nil, fmt.Errorf("%w: symbol %q has a null count", types.ErrInvalidUsage, name)
		}
		if err := json.Unmarshal(val, &n); err != nil {
			return nil, fmt.Errorf("%w: symbol %q has non-integer count %s", types.ErrInvalidUsage, name, val)
		}
		usage[name] = n
	}
	return usage, nil
}

// ParseUsageYAML decodes a NAME: count mapping. Empty and null counts are
// an ErrInvalidUsage.
func ParseUsageYAML(data []byte) (types.SymbolUsage, error) {
	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidUsage, err)
	}
	usage := make(types.SymbolUsage, len(raw))
	for name, node := range raw {
		var n int
		if node.Kind != yaml.ScalarNode || node.ShortTag() == "!!null" || node.Decode(&n) != nil {
			return nil, fmt.Errorf("%w: symbol %q has non-integer count %q", types.ErrInvalidUsage, name, node.Value)
		}
		usage[name] = n
	}
	return usage, nil
}
