// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/legend-engine/pkg/types"
)

const exportLimit = 100000

// ExportYAML writes the matching runs to dataDir/index/export.yaml and
// returns the file path.
func (s *Store) ExportYAML(ctx context.Context, q RunQuery) (string, error) {
	runs, err := s.exportRuns(ctx, q)
	if err != nil {
		return "", err
	}
	data, err := yaml.Marshal(runs)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	path := filepath.Join(s.dataDir, indexDir, "export.yaml")
	return path, os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the matching runs to dataDir/index/export.json and
// returns the file path.
func (s *Store) ExportJSON(ctx context.Context, q RunQuery) (string, error) {
	runs, err := s.exportRuns(ctx, q)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(runs, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	path := filepath.Join(s.dataDir, indexDir, "export.json")
	return path, os.WriteFile(path, data, 0o644)
}

func (s *Store) exportRuns(ctx context.Context, q RunQuery) ([]types.Run, error) {
	if q.Limit <= 0 {
		q.Limit = exportLimit
	}
	summaries, err := s.ListRuns(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	runs := make([]types.Run, 0, len(summaries))
	for _, rs := range summaries {
		run, err := s.GetRun(ctx, rs.ID)
		if err != nil {
			return nil, fmt.Errorf("loading run for export: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, nil
}
