package propdiff_test

import (
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	"gstplayer/internal/propdiff"
)

func TestParseJSONKeepsIntegers(t *testing.T) {
	tree, err := propdiff.ParseJSON([]byte(`{"levelInfo":{"interval":1000000000,"post-messages":true},"volumeControl":{"volume":0.75},"tags":["a",1]}`))
	if err != nil {
		t.Fatalf("ParseJSON returned error: %v", err)
	}
	level := tree["levelInfo"].(propdiff.Tree)
	if got, ok := level["interval"].(int64); !ok || got != 1000000000 {
		t.Fatalf("unexpected interval: %#v", level["interval"])
	}
	if got, ok := tree["volumeControl"].(propdiff.Tree)["volume"].(float64); !ok || got != 0.75 {
		t.Fatalf("unexpected volume: %#v", tree["volumeControl"])
	}
	want := []any{"a", int64(1)}
	if !reflect.DeepEqual(tree["tags"], want) {
		t.Fatalf("unexpected tags: %#v", tree["tags"])
	}
}

func TestParseJSONRejectsNonObjects(t *testing.T) {
	for _, input := range []string{`[1,2]`, `"text"`, `{"a":1} {"b":2}`, `{`} {
		if _, err := propdiff.ParseJSON([]byte(input)); err == nil {
			t.Fatalf("expected error for %q", input)
		}
	}
	tree, err := propdiff.ParseJSON([]byte("  "))
	if err != nil || len(tree) != 0 {
		t.Fatalf("expected empty tree for blank input, got %#v, %v", tree, err)
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	tree := propdiff.Tree{"b": 1, "a": propdiff.Tree{"z": true, "y": nil}}
	got, err := tree.Encode()
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	if want := `{"a":{"y":null,"z":true},"b":1}`; got != want {
		t.Fatalf("unexpected encoding: got %s want %s", got, want)
	}

	var nilTree propdiff.Tree
	if got, _ := nilTree.Encode(); got != "{}" {
		t.Fatalf("expected nil tree to encode as {}, got %s", got)
	}
}

func TestEncodeFailsOnUnsupportedValues(t *testing.T) {
	_, err := propdiff.Tree{"volume": math.NaN()}.Encode()
	if err == nil {
		t.Fatal("expected NaN to fail encoding")
	}
	if !strings.Contains(err.Error(), "encode property tree") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNormalize(t *testing.T) {
	stamp := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	input := map[string]any{
		"int":     7,
		"uint":    uint32(9),
		"float32": float32(0.5),
		"strings": []string{"a", "b"},
		"maps":    []map[string]any{{"k": 1}},
		"nested":  map[string]any{"deep": map[string]int{"n": 3}},
		"time":    stamp,
	}
	got := propdiff.FromMap(input)
	want := propdiff.Tree{
		"int":     int64(7),
		"uint":    int64(9),
		"float32": 0.5,
		"strings": []any{"a", "b"},
		"maps":    []any{propdiff.Tree{"k": int64(1)}},
		"nested":  propdiff.Tree{"deep": propdiff.Tree{"n": int64(3)}},
		"time":    "2024-01-02T03:04:05Z",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected normalized tree:\n got %#v\nwant %#v", got, want)
	}
}

func TestKindOf(t *testing.T) {
	cases := map[propdiff.Kind][]any{
		propdiff.KindScalar:   {nil, 1, "x", true, []byte("raw")},
		propdiff.KindSequence: {[]any{}, []string{"a"}},
		propdiff.KindTree:     {propdiff.Tree{}, map[string]any{}, map[string]int{}},
	}
	for want, values := range cases {
		for _, value := range values {
			if got := propdiff.KindOf(value); got != want {
				t.Fatalf("KindOf(%#v) = %s, want %s", value, got, want)
			}
		}
	}
}

func TestFlatten(t *testing.T) {
	delta := propdiff.Tree{
		"volumeControl": propdiff.Tree{"volume": 0.5, "mute": true},
		"decodeBin":     propdiff.Tree{"uri": "file:///a.mp4"},
		"tags":          []any{"x"},
	}
	changes := propdiff.Flatten(delta)
	var keys []string
	for _, change := range changes {
		keys = append(keys, change.String())
	}
	want := []string{
		`decodeBin.uri="file:///a.mp4"`,
		`tags=["x"]`,
		`volumeControl.mute=true`,
		`volumeControl.volume=0.5`,
	}
	if !reflect.DeepEqual(keys, want) {
		t.Fatalf("unexpected changes: got %v want %v", keys, want)
	}
}
