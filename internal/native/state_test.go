package native_test

import (
	"testing"

	"gstplayer/internal/native"
)

func TestParseState(t *testing.T) {
	tests := []struct {
		in   string
		want native.State
	}{
		{"null", native.StateNull},
		{"READY", native.StateReady},
		{" paused ", native.StatePaused},
		{"playing", native.StatePlaying},
		{"void-pending", native.StateVoidPending},
		{"0", native.StateVoidPending},
		{"4", native.StatePlaying},
	}
	for _, tc := range tests {
		got, err := native.ParseState(tc.in)
		if err != nil {
			t.Fatalf("ParseState(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseState(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}

	for _, bad := range []string{"", "stopped", "5", "-1"} {
		if _, err := native.ParseState(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestStateNumberingAndNames(t *testing.T) {
	if native.StatePaused != 3 || native.StateNull != 1 {
		t.Fatal("state numbering must match the media framework")
	}
	if native.StatePlaying.String() != "playing" {
		t.Fatalf("unexpected name %q", native.StatePlaying.String())
	}
	if native.State(9).String() != "State(9)" {
		t.Fatalf("unexpected name for unknown state: %q", native.State(9).String())
	}
	if native.State(9).Valid() {
		t.Fatal("unknown state reported valid")
	}
}
