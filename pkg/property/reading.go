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
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Kind is the closed set of value kinds a property can hold.
type Kind string

// String returns the string representation of the Kind.
func (k Kind) String() string {
	return string(k)
}

const (
	KindString Kind = "string"
	KindNumber Kind = "number"
	KindBool   Kind = "boolean"
	KindNull   Kind = "null"
	KindOpaque Kind = "opaque"
)

// opaqueKey is the single key of the JSON/YAML object an Opaque value encodes to.
const opaqueKey = "$type"

// AllowedScalar is a constraint (compile-time) for what we allow as readings.
type AllowedScalar interface {
	~int64 | ~uint64 | ~float64 | ~bool | ~string
}

// Reading is a *runtime* interface (so it can be stored in a set with mixed types).
type Reading interface {
	isReading()
	Kind() Kind
	Any() any
	String() string

	json.Marshaler
	yaml.Marshaler
}

// Scalar wraps an allowed scalar type.
// This is how we keep compile-time constraints while still using a runtime interface.
type Scalar[T AllowedScalar] struct {
	V T
}

func (Scalar[T]) isReading() {}

// Kind returns KindString, KindBool or KindNumber depending on T.
func (s Scalar[T]) Kind() Kind {
	switch any(s.V).(type) {
	case string:
		return KindString
	case bool:
		return KindBool
	default:
		return KindNumber
	}
}

func (s Scalar[T]) Any() any { return s.V }

// String returns the string representation of the underlying scalar value.
func (s Scalar[T]) String() string {
	return fmt.Sprintf("%v", s.V)
}

// MarshalJSON makes the JSON value be the underlying scalar (not an object wrapper).
func (s Scalar[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.V)
}

// MarshalYAML makes the YAML value be the underlying scalar (not an object wrapper).
func (s Scalar[T]) MarshalYAML() (any, error) {
	return s.V, nil
}

// Null is the reading of a property that is present but has no value.
type Null struct{}

func (Null) isReading()     {}
func (Null) Kind() Kind     { return KindNull }
func (Null) Any() any       { return nil }
func (Null) String() string { return "null" }

// MarshalJSON encodes Null as JSON null.
func (Null) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

// MarshalYAML encodes Null as YAML null.
func (Null) MarshalYAML() (any, error) { return nil, nil }

// Opaque marks a value whose native type has no counterpart in the closed set.
// Only the name of the native type is kept.
type Opaque struct {
	Type string
}

func (Opaque) isReading()       {}
func (Opaque) Kind() Kind       { return KindOpaque }
func (o Opaque) Any() any       { return o }
func (o Opaque) String() string { return "<" + o.Type + ">" }

// MarshalJSON encodes Opaque as {"$type": "<native type>"}.
func (o Opaque) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{opaqueKey: o.Type})
}

// MarshalYAML encodes Opaque as a one-key mapping.
func (o Opaque) MarshalYAML() (any, error) {
	return map[string]string{opaqueKey: o.Type}, nil
}

// Convenience constructors for each allowed scalar type.
func Int64(v int64) Reading     { return Scalar[int64]{V: v} }
func Uint64(v uint64) Reading   { return Scalar[uint64]{V: v} }
func Float64(v float64) Reading { return Scalar[float64]{V: v} }
func Bool(v bool) Reading       { return Scalar[bool]{V: v} }
func Str(v string) Reading      { return Scalar[string]{V: v} }
func Int(v int) Reading         { return Scalar[int64]{V: int64(v)} }

// ToReading creates a Reading from any value.
// Values outside the closed set become an Opaque marker naming their type.
func ToReading(v any) Reading {
	r, _ := ToReadingWithType(v)
	return r
}

// ToReadingWithType converts a value to a Reading and reports whether the
// conversion was lossless (false means an Opaque marker was produced).
// This allows callers to detect if unexpected types were encountered.
func ToReadingWithType(v any) (Reading, bool) {
	switch val := v.(type) {
	case nil:
		return Null{}, true
	case Reading:
		return val, true
	case int:
		return Int64(int64(val)), true
	case int8:
		return Int64(int64(val)), true
	case int16:
		return Int64(int64(val)), true
	case int32:
		return Int64(int64(val)), true
	case int64:
		return Int64(val), true
	case uint:
		return Uint64(uint64(val)), true
	case uint8:
		return Uint64(uint64(val)), true
	case uint16:
		return Uint64(uint64(val)), true
	case uint32:
		return Uint64(uint64(val)), true
	case uint64:
		return Uint64(val), true
	case float32:
		return Float64(float64(val)), true
	case float64:
		return Float64(val), true
	case json.Number:
		return fromNumber(val.String()), true
	case bool:
		return Bool(val), true
	case string:
		return Str(val), true
	case []byte:
		return Str(string(val)), true
	case map[string]any:
		if t, ok := val[opaqueKey].(string); ok && len(val) == 1 {
			return Opaque{Type: t}, true
		}
		return Opaque{Type: "object"}, false
	case []any:
		return Opaque{Type: "array"}, false
	default:
		return Opaque{Type: fmt.Sprintf("%T", v)}, false
	}
}

// fromNumber parses a decimal literal into the narrowest numeric reading.
func fromNumber(s string) Reading {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int64(i)
	}
	if u, err := strconv.ParseUint(s, 10, 64); err == nil {
		return Uint64(u)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Float64(f)
	}
	return Str(s)
}

// AsFloat64 returns the numeric value of r, if it is a number.
func AsFloat64(r Reading) (float64, bool) {
	if r == nil {
		return 0, false
	}
	switch v := r.Any().(type) {
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float64:
		if math.IsNaN(v) {
			return 0, false
		}
		return v, true
	default:
		return 0, false
	}
}

// Equal reports whether two readings have the same kind and value.
// Numbers compare by value regardless of their Go representation.
func Equal(a, b Reading) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	if a.Kind() == KindNumber {
		af, _ := AsFloat64(a)
		bf, _ := AsFloat64(b)
		return af == bf
	}
	return a.Any() == b.Any()
}
