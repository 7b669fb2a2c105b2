// Copyright (c) 2026, DomainTricks Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package property

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Prop is a single named value used to build a Set.
type Prop struct {
	Name  string
	Value Reading
}

// P creates a Prop from any value, converting it with ToReading.
func P(name string, v any) Prop {
	return Prop{Name: name, Value: ToReading(v)}
}

// Set is an ordered mapping from property name to Reading.
// Key order is insertion order; re-setting an existing key keeps its position.
// A Set returned by an executor must be treated as immutable.
type Set struct {
	keys   []string
	values map[string]Reading
}

// NewSet creates a Set from the given properties, in order.
func NewSet(props ...Prop) *Set {
	s := &Set{
		keys:   make([]string, 0, len(props)),
		values: make(map[string]Reading, len(props)),
	}
	for _, p := range props {
		s.Set(p.Name, p.Value)
	}
	return s
}

// Set stores v under name and returns the set for chaining.
func (s *Set) Set(name string, v Reading) *Set {
	if s.values == nil {
		s.values = make(map[string]Reading)
	}
	if v == nil {
		v = Null{}
	}
	if _, ok := s.values[name]; !ok {
		s.keys = append(s.keys, name)
	}
	s.values[name] = v
	return s
}

// Get returns the reading stored under name, or nil.
func (s *Set) Get(name string) Reading {
	if s == nil {
		return nil
	}
	return s.values[name]
}

// Lookup returns the reading stored under name and whether it exists.
func (s *Set) Lookup(name string) (Reading, bool) {
	if s == nil {
		return nil, false
	}
	v, ok := s.values[name]
	return v, ok
}

// LookupFold is Lookup with case-insensitive name matching.
// An exact match wins over a case-folded one.
func (s *Set) LookupFold(name string) (string, Reading, bool) {
	if v, ok := s.Lookup(name); ok {
		return name, v, true
	}
	if s == nil {
		return "", nil, false
	}
	for _, k := range s.keys {
		if strings.EqualFold(k, name) {
			return k, s.values[k], true
		}
	}
	return "", nil, false
}

// Has reports whether name is present.
func (s *Set) Has(name string) bool {
	_, ok := s.Lookup(name)
	return ok
}

// Keys returns the property names in order.
func (s *Set) Keys() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Len returns the number of properties.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// Range calls fn for each property in order until fn returns false.
func (s *Set) Range(fn func(name string, v Reading) bool) {
	if s == nil {
		return
	}
	for _, k := range s.keys {
		if !fn(k, s.values[k]) {
			return
		}
	}
}

// Select returns a new set holding only the named fields, in the requested
// order. Names are matched case-insensitively and keep the requested spelling.
// Fields absent from s are returned in missing.
func (s *Set) Select(fields []string) (*Set, []string) {
	out := NewSet()
	var missing []string
	for _, f := range fields {
		_, v, ok := s.LookupFold(f)
		if !ok {
			missing = append(missing, f)
			continue
		}
		out.Set(f, v)
	}
	return out, missing
}

// Without returns a copy of s minus every property whose name matches one of
// the wildcard patterns (e.g. "*Password*").
func (s *Set) Without(patterns ...string) *Set {
	out := NewSet()
	s.Range(func(name string, v Reading) bool {
		for _, p := range patterns {
			if matchesPattern(name, p) {
				return true
			}
		}
		out.Set(name, v)
		return true
	})
	return out
}

// Clone returns a shallow copy; readings are values and safe to share.
func (s *Set) Clone() *Set {
	out := NewSet()
	s.Range(func(name string, v Reading) bool {
		out.Set(name, v)
		return true
	})
	return out
}

// Equal reports whether both sets hold the same keys in the same order with
// equal readings.
func (s *Set) Equal(other *Set) bool {
	if s.Len() != other.Len() {
		return false
	}
	for i, k := range s.Keys() {
		if other.keys[i] != k {
			return false
		}
		if !Equal(s.values[k], other.values[k]) {
			return false
		}
	}
	return true
}

// Flatten returns the properties as a name to string map, for tabular output.
func (s *Set) Flatten() map[string]string {
	out := make(map[string]string, s.Len())
	s.Range(func(name string, v Reading) bool {
		out[name] = v.String()
		return true
	})
	return out
}

// GetString returns the property as a string if it is a string reading.
func (s *Set) GetString(name string) (string, error) {
	v, ok := s.Lookup(name)
	if !ok {
		return "", fmt.Errorf("property %q not found", name)
	}
	str, ok := v.Any().(string)
	if !ok {
		return "", fmt.Errorf("property %q is %s, not string", name, v.Kind())
	}
	return str, nil
}

// GetInt64 returns the property as an int64 if it is an integral number.
func (s *Set) GetInt64(name string) (int64, error) {
	v, ok := s.Lookup(name)
	if !ok {
		return 0, fmt.Errorf("property %q not found", name)
	}
	switch n := v.Any().(type) {
	case int64:
		return n, nil
	case uint64:
		if n > 1<<63-1 {
			return 0, fmt.Errorf("property %q overflows int64", name)
		}
		return int64(n), nil
	default:
		return 0, fmt.Errorf("property %q is %s, not an integer", name, v.Kind())
	}
}

// GetFloat64 returns the property as a float64 if it is a number.
func (s *Set) GetFloat64(name string) (float64, error) {
	v, ok := s.Lookup(name)
	if !ok {
		return 0, fmt.Errorf("property %q not found", name)
	}
	f, ok := AsFloat64(v)
	if !ok {
		return 0, fmt.Errorf("property %q is %s, not a number", name, v.Kind())
	}
	return f, nil
}

// GetBool returns the property as a bool if it is a boolean reading.
func (s *Set) GetBool(name string) (bool, error) {
	v, ok := s.Lookup(name)
	if !ok {
		return false, fmt.Errorf("property %q not found", name)
	}
	b, ok := v.Any().(bool)
	if !ok {
		return false, fmt.Errorf("property %q is %s, not boolean", name, v.Kind())
	}
	return b, nil
}

// MarshalJSON encodes the set as a JSON object preserving key order.
func (s *Set) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range s.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(s.values[k])
		if err != nil {
			return nil, fmt.Errorf("failed to marshal property %q: %w", k, err)
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object keeping its key order.
// Nested objects and arrays become Opaque readings, except the {"$type": ...}
// form Opaque itself encodes to.
func (s *Set) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to read property set: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("property set must be a JSON object, got %v", tok)
	}

	*s = Set{}
	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return fmt.Errorf("failed to read property name: %w", err)
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected property name token %v", tok)
		}
		var raw any
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("failed to decode property %q: %w", name, err)
		}
		s.Set(name, ToReading(raw))
	}
	if _, err := dec.Token(); err != nil && err != io.EOF {
		return fmt.Errorf("failed to close property set: %w", err)
	}
	return nil
}

// MarshalYAML encodes the set as a YAML mapping preserving key order.
func (s *Set) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range s.Keys() {
		var val yaml.Node
		if err := val.Encode(s.values[k]); err != nil {
			return nil, fmt.Errorf("failed to encode property %q: %w", k, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&val,
		)
	}
	return node, nil
}

// UnmarshalYAML decodes a YAML mapping keeping its key order.
func (s *Set) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("property set must be a YAML mapping, got kind %d", node.Kind)
	}
	*s = Set{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		var raw any
		if err := node.Content[i+1].Decode(&raw); err != nil {
			return fmt.Errorf("failed to decode property %q: %w", name, err)
		}
		s.Set(name, ToReading(raw))
	}
	return nil
}

// matchesPattern checks if a key matches a wildcard pattern.
// Supports '*' as a wildcard:
//   - "prefix*" matches keys starting with prefix
//   - "*suffix" matches keys ending with suffix
//   - "*contains*" matches keys containing the substring
//   - "exact" matches only exact key
func matchesPattern(key, pattern string) bool {
	if !strings.Contains(pattern, "*") {
		return key == pattern
	}

	parts := strings.Split(pattern, "*")
	pos := 0
	for i, part := range parts {
		if part == "" {
			continue
		}
		idx := strings.Index(key[pos:], part)
		if idx < 0 {
			return false
		}
		if i == 0 && idx != 0 {
			return false
		}
		pos += idx + len(part)
	}
	if last := parts[len(parts)-1]; last != "" && !strings.HasSuffix(key, last) {
		return false
	}
	return true
}
