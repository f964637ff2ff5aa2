// Package treefile reads property trees from JSON and TOML documents.
package treefile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"gstplayer/internal/propdiff"
)

// Format names a supported document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported property file %q: expected .json or .toml", path)
	}
}

// Load reads the property tree stored at path.
func Load(path string) (propdiff.Tree, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read property file: %w", err)
	}
	tree, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tree, nil
}

// Parse decodes data in the given format.
func Parse(data []byte, format Format) (propdiff.Tree, error) {
	switch format {
	case FormatJSON:
		return propdiff.ParseJSON(data)
	case FormatTOML:
		var raw map[string]any
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse property tree: %w", err)
		}
		return propdiff.FromMap(raw), nil
	default:
		return nil, fmt.Errorf("unknown property format %q", format)
	}
}

// Resolve treats arg as an inline JSON object when it starts with '{' and
// as a file path otherwise.
func Resolve(arg string) (propdiff.Tree, error) {
	if strings.HasPrefix(strings.TrimSpace(arg), "{") {
		return propdiff.ParseJSON([]byte(arg))
	}
	return Load(arg)
}
