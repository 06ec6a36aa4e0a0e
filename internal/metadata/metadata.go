// Package metadata holds document and theme metadata as an ordered mapping of
// string keys to YAML-typed values.
package metadata

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrNotMapping is returned when a YAML document does not hold a mapping.
var ErrNotMapping = errors.New("metadata is not a YAML mapping")

// Map is a string-keyed mapping that remembers insertion order.
//
// Values are whatever yaml.v3 decodes into `any`: scalars, []any and
// map[string]any for nested structures.
type Map struct {
	keys   []string
	values map[string]any
}

// New returns an empty Map.
func New() *Map {
	return &Map{values: map[string]any{}}
}

// Len returns the number of keys.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in declaration order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Set stores value under key. Existing keys keep their position.
func (m *Map) Set(key string, value any) {
	if m.values == nil {
		m.values = map[string]any{}
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Clone returns a shallow copy; nested values are shared.
func (m *Map) Clone() *Map {
	out := New()
	if m == nil {
		return out
	}
	out.keys = append(out.keys, m.keys...)
	for k, v := range m.values {
		out.values[k] = v
	}
	return out
}

// ToMap returns the entries as a plain map for template contexts.
func (m *Map) ToMap() map[string]any {
	out := make(map[string]any, m.Len())
	if m == nil {
		return out
	}
	for k, v := range m.values {
		out[k] = v
	}
	return out
}

// UnmarshalYAML decodes a mapping node, preserving key order.
func (m *Map) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			*m = *New()
			return nil
		}
		node = node.Content[0]
	}
	if node.Kind == 0 || (node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null") {
		*m = *New()
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: line %d: got %s", ErrNotMapping, node.Line, kindName(node.Kind))
	}

	out := New()
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		if keyNode.Kind == yaml.ScalarNode && keyNode.ShortTag() == "!!merge" {
			if err := mergeInto(out, valNode); err != nil {
				return err
			}
			continue
		}
		var key string
		if err := keyNode.Decode(&key); err != nil {
			return fmt.Errorf("line %d: decode key: %w", keyNode.Line, err)
		}
		var value any
		if err := valNode.Decode(&value); err != nil {
			return fmt.Errorf("line %d: decode value of %q: %w", valNode.Line, key, err)
		}
		out.Set(key, value)
	}
	*m = *out
	return nil
}

// mergeInto expands a "<<" merge value. Keys already present in dst win, as
// do keys set later in the same mapping.
func mergeInto(dst *Map, node *yaml.Node) error {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	switch node.Kind {
	case yaml.MappingNode:
		src := New()
		if err := src.UnmarshalYAML(node); err != nil {
			return err
		}
		for _, k := range src.keys {
			if !dst.Has(k) {
				dst.Set(k, src.values[k])
			}
		}
	case yaml.SequenceNode:
		for _, item := range node.Content {
			if err := mergeInto(dst, item); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: line %d: merge value is %s", ErrNotMapping, node.Line, kindName(node.Kind))
	}
	return nil
}

// MarshalYAML encodes the map as a mapping node in key order.
func (m *Map) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range m.keys {
		var val yaml.Node
		if err := val.Encode(m.values[k]); err != nil {
			return nil, fmt.Errorf("encode %q: %w", k, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&val,
		)
	}
	return node, nil
}

// Parse decodes raw YAML into a Map. Empty input and an explicit null
// both yield an empty Map.
func Parse(data []byte) (*Map, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	m := New()
	if err := m.UnmarshalYAML(&node); err != nil {
		return nil, err
	}
	return m, nil
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	case yaml.MappingNode:
		return "mapping"
	default:
		return "document"
	}
}
