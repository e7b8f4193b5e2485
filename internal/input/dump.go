// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package input

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pdiddy/legend-engine/pkg/types"
)

// Dump is the content of a DXF debug dump.
type Dump struct {
	// Usage holds the block insert counts.
	Usage types.SymbolUsage

	// Text holds the TEXT and MTEXT entity contents, one per line, in
	// dump order.
	Text string
}

type dumpSection int

const (
	sectionNone dumpSection = iota
	sectionBlocks
	sectionText
)

// ParseDump reads a debug dump. Sections start with a ">>>" header line;
// the block section lists "  NAME: COUNT" rows and the text sections list
// "TEXT: ..." or "MTEXT: ..." rows. Unknown sections are skipped. A block
// row whose count is not an integer is an ErrInvalidUsage.
func ParseDump(r io.Reader) (Dump, error) {
	d := Dump{Usage: types.SymbolUsage{}}
	var text []string
	section := sectionNone

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ">>>") {
			header := strings.ToUpper(line)
			switch {
			case strings.Contains(header, "BLOCK"):
				section = sectionBlocks
			case strings.Contains(header, "TEXT"):
				section = sectionText
			default:
				section = sectionNone
			}
			continue
		}

		switch section {
		case sectionBlocks:
			i := strings.LastIndex(line, ":")
			if i <= 0 {
				return d, fmt.Errorf("%w: line %d: want NAME: COUNT, got %q", types.ErrInvalidUsage, lineNo, line)
			}
			name := strings.TrimSpace(line[:i])
			n, err := strconv.Atoi(strings.TrimSpace(line[i+1:]))
			if err != nil {
				return d, fmt.Errorf("%w: line %d: symbol %q has non-integer count", types.ErrInvalidUsage, lineNo, name)
			}
			d.Usage[name] += n
		case sectionText:
			text = append(text, entityText(line))
		}
	}
	if err := sc.Err(); err != nil {
		return d, fmt.Errorf("reading dump: %w", err)
	}
	d.Text = strings.Join(text, "\n")
	return d, nil
}

// entityText strips the "TEXT:" or "MTEXT:" label and a Python-style repr
// quote pair if present.
func entityText(line string) string {
	for _, label := range []string{"MTEXT:", "TEXT:"} {
		if strings.HasPrefix(line, label) {
			line = strings.TrimSpace(line[len(label):])
			break
		}
	}
	if len(line) >= 2 {
		q := line[0]
		if (q == '\'' || q == '"') && line[len(line)-1] == q {
			if s, err := strconv.Unquote(`"` + strings.ReplaceAll(line[1:len(line)-1], `"`, `\"`) + `"`); err == nil {
				return s
			}
			return line[1 : len(line)-1]
		}
	}
	return line
}
