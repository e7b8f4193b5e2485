// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"bytes"
	"encoding/json"
	"fmt"

	"go.yaml.in/yaml/v3"
)

// LightGroup is the closed set of broad lighting-fixture groups.
type LightGroup string

const (
	GroupPendant  LightGroup = "pendant"
	GroupTrack    LightGroup = "track"
	GroupIndirect LightGroup = "indirect"
	GroupRecessed LightGroup = "recessed"
	GroupHalogen  LightGroup = "halogen"
	GroupOther    LightGroup = "other"
)

var groupLabels = map[LightGroup]string{
	GroupPendant:  "Pendant",
	GroupTrack:    "Track",
	GroupIndirect: "Indirect/Cove",
	GroupRecessed: "Recessed/Down",
	GroupHalogen:  "Halogen",
	GroupOther:    "Other",
}

// LightGroups lists every group in display order.
var LightGroups = []LightGroup{GroupPendant, GroupTrack, GroupIndirect, GroupRecessed, GroupHalogen, GroupOther}

// Label returns the display label, "Other" for unknown groups.
func (g LightGroup) Label() string {
	if l, ok := groupLabels[g]; ok {
		return l
	}
	return groupLabels[GroupOther]
}

// Valid reports whether g is one of the known groups.
func (g LightGroup) Valid() bool {
	_, ok := groupLabels[g]
	return ok
}

// LightCategory is a canonical fixture category such as "Down Light".
type LightCategory struct {
	Name  string     `json:"name" yaml:"name" mapstructure:"name"`
	Group LightGroup `json:"group" yaml:"group" mapstructure:"group"`
}

// MatchMethod records which classification strategy produced a match.
type MatchMethod string

const (
	MethodSynonym  MatchMethod = "synonym"
	MethodKeyword  MatchMethod = "keyword"
	MethodFuzzy    MatchMethod = "fuzzy"
	MethodFallback MatchMethod = "fallback"
)

// LightMatch is the category assignment for one legend term or text line.
type LightMatch struct {
	// Input is the text that was classified.
	Input string `json:"input" yaml:"input"`

	// Category is the canonical category name.
	Category string `json:"category" yaml:"category"`

	// Group is the broad group of the category.
	Group LightGroup `json:"group" yaml:"group"`

	// Method is the strategy that produced the match.
	Method MatchMethod `json:"method" yaml:"method"`

	// Similarity is the 0-100 similarity for fuzzy matches, 100 for synonym
	// and keyword matches, 0 for the fallback.
	Similarity float64 `json:"similarity" yaml:"similarity"`
}

// LightCount is the tally for one canonical category.
type LightCount struct {
	Name     string
	Count    int
	Category string
}

type lightCountValue struct {
	Count    int    `json:"count" yaml:"count"`
	Category string `json:"category" yaml:"category"`
}

// LightCounts is an insertion-ordered map from canonical category name to
// its count. It serializes as a key-ordered object:
//
//	{"Down Light": {"count": 3, "category": "Recessed/Down"}}
//
// Decoding also accepts the flat {"Down Light": 3} form.
type LightCounts struct {
	items []LightCount
}

// Add increments name by n, recording category on first insertion.
func (lc *LightCounts) Add(name, category string, n int) {
	for i := range lc.items {
		if lc.items[i].Name == name {
			lc.items[i].Count += n
			return
		}
	}
	lc.items = append(lc.items, LightCount{Name: name, Count: n, Category: category})
}

// Get returns the count for name and whether it is present.
func (lc LightCounts) Get(name string) (int, bool) {
	for _, it := range lc.items {
		if it.Name == name {
			return it.Count, true
		}
	}
	return 0, false
}

// Items returns the counts in insertion order.
func (lc LightCounts) Items() []LightCount {
	return append([]LightCount(nil), lc.items...)
}

// Len returns the number of categories.
func (lc LightCounts) Len() int {
	return len(lc.items)
}

// Total returns the sum of all counts.
func (lc LightCounts) Total() int {
	total := 0
	for _, it := range lc.items {
		total += it.Count
	}
	return total
}

// Flat returns a plain name to count map.
func (lc LightCounts) Flat() map[string]int {
	m := make(map[string]int, len(lc.items))
	for _, it := range lc.items {
		m[it.Name] = it.Count
	}
	return m
}

// MarshalJSON writes the counts as an object keyed in insertion order.
func (lc LightCounts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, it := range lc.items {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(it.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(lightCountValue{Count: it.Count, Category: it.Category})
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads either the nested or the flat object form, keeping
// the key order of the input.
func (lc *LightCounts) UnmarshalJSON(data []byte) error {
	lc.items = nil
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decoding light counts: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("decoding light counts: want object, got %v", tok)
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decoding light counts: %w", err)
		}
		name, _ := keyTok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("decoding light count %q: %w", name, err)
		}
		var n int
		if err := json.Unmarshal(raw, &n); err == nil {
			lc.items = append(lc.items, LightCount{Name: name, Count: n, Category: GroupOther.Label()})
			continue
		}
		var v lightCountValue
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("decoding light count %q: %w", name, err)
		}
		if v.Category == "" {
			v.Category = GroupOther.Label()
		}
		lc.items = append(lc.items, LightCount{Name: name, Count: v.Count, Category: v.Category})
	}
	return nil
}

// MarshalYAML writes the counts as a mapping in insertion order.
func (lc LightCounts) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, it := range lc.items {
		var val yaml.Node
		if err := val.Encode(lightCountValue{Count: it.Count, Category: it.Category}); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: it.Name},
			&val,
		)
	}
	return node, nil
}

// UnmarshalYAML reads either the nested or the flat mapping form.
func (lc *LightCounts) UnmarshalYAML(node *yaml.Node) error {
	lc.items = nil
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("decoding light counts at line %d: want a mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		val := node.Content[i+1]
		if val.Kind == yaml.ScalarNode {
			var n int
			if err := val.Decode(&n); err != nil {
				return fmt.Errorf("decoding light count %q: %w", name, err)
			}
			lc.items = append(lc.items, LightCount{Name: name, Count: n, Category: GroupOther.Label()})
			continue
		}
		var v lightCountValue
		if err := val.Decode(&v); err != nil {
			return fmt.Errorf("decoding light count %q: %w", name, err)
		}
		if v.Category == "" {
			v.Category = GroupOther.Label()
		}
		lc.items = append(lc.items, LightCount{Name: name, Count: v.Count, Category: v.Category})
	}
	return nil
}

// LightsDocument is the lights output file: the legend it was computed from
// and the per-category counts.
type LightsDocument struct {
	Legend []string    `json:"legend" yaml:"legend"`
	Lights LightCounts `json:"lights" yaml:"lights"`
}
