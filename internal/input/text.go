// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package input

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ReadText reads annotation text from path. Invalid UTF-8 is replaced with
// U+FFFD. When the file is a debug dump only its TEXT and MTEXT entities are
// returned.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	if IsDump(data) {
		d, err := ParseDump(bytes.NewReader(data))
		if err != nil {
			return "", fmt.Errorf("parsing %s: %w", path, err)
		}
		return strings.ToValidUTF8(d.Text, "�"), nil
	}
	return strings.ToValidUTF8(string(data), "�"), nil
}

// IsDump reports whether data starts with a debug dump section header.
func IsDump(data []byte) bool {
	return bytes.HasPrefix(bytes.TrimSpace(data), []byte(">>>"))
}

// DrawingName derives a drawing identifier from a file path: the base name
// without extension and without a trailing "-legend" or "_debug" marker.
func DrawingName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	for _, suffix := range []string{"-legend", "_debug", "-debug"} {
		base = strings.TrimSuffix(base, suffix)
	}
	return base
}
