package propdiff

import (
	"fmt"
	"sort"
	"strings"
)

// Change is a single leaf of a delta addressed by its key path, usually
// element name followed by property name.
type Change struct {
	Path  []string
	Value any
}

// Key joins the path with dots.
func (c Change) Key() string {
	return strings.Join(c.Path, ".")
}

func (c Change) String() string {
	return fmt.Sprintf("%s=%s", c.Key(), FormatValue(c.Value))
}

// Flatten lists the leaves of t sorted by path. Sequences are leaves.
func Flatten(t Tree) []Change {
	var changes []Change
	flattenInto(&changes, nil, t)
	sort.Slice(changes, func(i, j int) bool {
		return changes[i].Key() < changes[j].Key()
	})
	return changes
}

func flattenInto(out *[]Change, prefix []string, t Tree) {
	for key, value := range t {
		path := make([]string, len(prefix)+1)
		copy(path, prefix)
		path[len(prefix)] = key
		if sub, ok := asTree(value); ok && len(sub) > 0 {
			flattenInto(out, path, sub)
			continue
		}
		*out = append(*out, Change{Path: path, Value: value})
	}
}

// FormatValue renders a configuration value for human-readable output.
func FormatValue(v any) string {
	switch value := v.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("%q", value)
	}
	if seq, ok := asSequence(v); ok {
		parts := make([]string, len(seq))
		for i, item := range seq {
			parts[i] = FormatValue(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	if tree, ok := asTree(v); ok {
		keys := tree.Keys()
		parts := make([]string, len(keys))
		for i, key := range keys {
			parts[i] = key + ": " + FormatValue(tree[key])
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return fmt.Sprint(v)
}
