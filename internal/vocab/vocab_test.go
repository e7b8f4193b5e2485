// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vocab

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/legend-engine/pkg/types"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 0.55, cfg.Linking.AcceptThreshold)
	assert.Equal(t, 0.08, cfg.Linking.MinMargin)
	assert.Equal(t, 0.15, cfg.Linking.HintBonus)
	assert.Equal(t, 0.2, cfg.Linking.PriorCap)
	assert.Equal(t, 5, cfg.Linking.TopK)
	assert.Equal(t, 80.0, cfg.Lights.Threshold)
}

func TestDefaultConfigIsACopy(t *testing.T) {
	a := DefaultConfig()
	a.Vocabulary.StopTerms[0] = "changed"
	b := DefaultConfig()
	assert.Equal(t, "legend", b.Vocabulary.StopTerms[0])
}

func TestWriteFileThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "legend-engine.yaml")

	written, err := WriteFile(path, DefaultConfig(), false)
	require.NoError(t, err)
	assert.True(t, written)

	written, err = WriteFile(path, DefaultConfig(), false)
	require.NoError(t, err)
	assert.False(t, written, "existing file should be kept without force")

	got, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), got)
}

func TestLoadFileOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legend-engine.yaml")
	content := `
linking:
  accept_threshold: 0.6
  top_k: 3
vocabulary:
  stop_terms: [legend, key]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 0.6, cfg.Linking.AcceptThreshold)
	assert.Equal(t, 3, cfg.Linking.TopK)
	assert.Equal(t, 0.08, cfg.Linking.MinMargin, "unset keys keep defaults")
	assert.Equal(t, []string{"legend", "key"}, cfg.Vocabulary.StopTerms)
	assert.Equal(t, DefaultVocabulary().RoomTerms, cfg.Vocabulary.RoomTerms)
}

func TestLoadFileRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown strategy", "lights:\n  strategy: neural\n"},
		{"threshold out of range", "lights:\n  threshold: 120\n"},
		{"zero top k", "linking:\n  top_k: 0\n"},
		{"synonym to unknown category", "vocabulary:\n  light_synonyms:\n    - {from: Lamp, to: Lava Lamp}\n"},
		{"unknown hint match", "vocabulary:\n  naming_hints:\n    - {pattern: X, match: regex, term: Y}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "c.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			_, err := LoadFile(path)
			require.Error(t, err)
			assert.True(t, errors.Is(err, types.ErrInvalidConfig), "got %v", err)
		})
	}
}
