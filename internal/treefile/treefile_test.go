package treefile_test

import (
	"path/filepath"
	"strings"
	"testing"

	"gstplayer/internal/propdiff"
	"gstplayer/internal/testsupport"
	"gstplayer/internal/treefile"
)

func TestLoadJSONAndTOMLAgree(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "props.json")
	tomlPath := filepath.Join(dir, "props.toml")
	testsupport.WriteFile(t, jsonPath, `{"volumeControl":{"volume":0.5,"mute":false},"audioSrc":{"freq":440,"tags":["a","b"]}}`)
	testsupport.WriteFile(t, tomlPath, `
[volumeControl]
volume = 0.5
mute = false

[audioSrc]
freq = 440
tags = ["b", "a"]
`)

	fromJSON, err := treefile.Load(jsonPath)
	if err != nil {
		t.Fatalf("Load json: %v", err)
	}
	fromTOML, err := treefile.Load(tomlPath)
	if err != nil {
		t.Fatalf("Load toml: %v", err)
	}
	if diff := propdiff.Diff(fromTOML, fromJSON); !diff.Empty() {
		t.Fatalf("expected equivalent trees, diff=%v", diff)
	}
	if _, ok := fromTOML["audioSrc"].(propdiff.Tree)["freq"].(int64); !ok {
		t.Fatalf("expected int64 freq, got %T", fromTOML["audioSrc"].(propdiff.Tree)["freq"])
	}
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "props.yaml")
	testsupport.WriteFile(t, path, "a: 1")
	if _, err := treefile.Load(path); err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Fatalf("expected unsupported error, got %v", err)
	}
}

func TestLoadReportsPathOnParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	testsupport.WriteFile(t, path, "[volumeControl\nvolume = ")
	_, err := treefile.Load(path)
	if err == nil || !strings.Contains(err.Error(), path) {
		t.Fatalf("expected error naming %s, got %v", path, err)
	}
}

func TestResolveInlineJSON(t *testing.T) {
	tree, err := treefile.Resolve(` {"a":{"x":1}}`)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !propdiff.Equal(tree, propdiff.Tree{"a": propdiff.Tree{"x": 1}}) {
		t.Fatalf("unexpected tree %v", tree)
	}
}
