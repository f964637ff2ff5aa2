package propdiff

import (
	"bytes"
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
)

// Tree is a nested property configuration. Values are nil, bool, string,
// int64, float64, []any, or Tree once normalized.
type Tree map[string]any

// Kind classifies a configuration value.
type Kind int

const (
	KindScalar Kind = iota
	KindSequence
	KindTree
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	case KindTree:
		return "tree"
	default:
		return "unknown"
	}
}

// KindOf reports how v participates in a diff.
func KindOf(v any) Kind {
	if _, ok := asTree(v); ok {
		return KindTree
	}
	if _, ok := asSequence(v); ok {
		return KindSequence
	}
	return KindScalar
}

// FromMap converts a decoded map into a normalized Tree.
func FromMap(in map[string]any) Tree {
	if in == nil {
		return Tree{}
	}
	out := make(Tree, len(in))
	for key, value := range in {
		out[key] = Normalize(value)
	}
	return out
}

// Normalize canonicalizes a decoded JSON or TOML value: nested maps become
// Tree, slices become []any, integers become int64 and floats float64.
// Values implementing encoding.TextMarshaler (TOML dates, times) become
// strings. Anything else is returned unchanged.
func Normalize(v any) any {
	switch value := v.(type) {
	case nil, bool, string, int64, float64:
		return value
	case Tree:
		return FromMap(value)
	case map[string]any:
		return FromMap(value)
	case []any:
		out := make([]any, len(value))
		for i, item := range value {
			out[i] = Normalize(item)
		}
		return out
	case json.Number:
		if i, err := value.Int64(); err == nil {
			return i
		}
		if f, err := value.Float64(); err == nil {
			return f
		}
		return value.String()
	case float32:
		return float64(value)
	case int:
		return int64(value)
	case int8:
		return int64(value)
	case int16:
		return int64(value)
	case int32:
		return int64(value)
	case uint:
		return normalizeUnsigned(uint64(value))
	case uint8:
		return int64(value)
	case uint16:
		return int64(value)
	case uint32:
		return int64(value)
	case uint64:
		return normalizeUnsigned(value)
	case encoding.TextMarshaler:
		text, err := value.MarshalText()
		if err != nil {
			return value
		}
		return string(text)
	}

	if tree, ok := asTree(v); ok {
		return FromMap(tree)
	}
	if seq, ok := asSequence(v); ok {
		return Normalize(seq)
	}
	return v
}

func normalizeUnsigned(v uint64) any {
	if v > math.MaxInt64 {
		return float64(v)
	}
	return int64(v)
}

// asTree views v as a Tree without copying when possible.
func asTree(v any) (Tree, bool) {
	switch value := v.(type) {
	case Tree:
		return value, true
	case map[string]any:
		return Tree(value), true
	case nil:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(Tree, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

// asSequence views v as a []any. Byte slices are treated as scalars.
func asSequence(v any) ([]any, bool) {
	switch value := v.(type) {
	case []any:
		return value, true
	case nil, []byte, string:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// Empty reports whether the tree has no keys.
func (t Tree) Empty() bool {
	return len(t) == 0
}

// Keys returns the top-level keys in sorted order.
func (t Tree) Keys() []string {
	keys := make([]string, 0, len(t))
	for key := range t {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy of the tree.
func (t Tree) Clone() Tree {
	if t == nil {
		return nil
	}
	out := make(Tree, len(t))
	for key, value := range t {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(v any) any {
	if tree, ok := asTree(v); ok {
		return tree.Clone()
	}
	if seq, ok := asSequence(v); ok {
		out := make([]any, len(seq))
		for i, item := range seq {
			out[i] = cloneValue(item)
		}
		return out
	}
	return v
}

// Encode serializes the tree as a single JSON document, the transport
// format understood by the native player. A nil tree encodes as "{}".
func (t Tree) Encode() (string, error) {
	if t == nil {
		return "{}", nil
	}
	data, err := json.Marshal(map[string]any(t))
	if err != nil {
		return "", fmt.Errorf("encode property tree: %w", err)
	}
	return string(data), nil
}

// ParseJSON decodes a JSON object into a normalized Tree. Integral numbers
// stay integers so unsigned element properties survive the round trip.
func ParseJSON(data []byte) (Tree, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Tree{}, nil
	}
	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()
	var raw any
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse property tree: %w", err)
	}
	if decoder.More() {
		return nil, errors.New("parse property tree: trailing data after document")
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("parse property tree: expected JSON object, got %T", raw)
	}
	return FromMap(obj), nil
}
