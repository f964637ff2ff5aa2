//go:build !cgo

package gstbackend_test

import (
	"errors"
	"testing"

	"gstplayer/internal/gstbackend"
)

func TestLaunchWithoutCGO(t *testing.T) {
	_, err := gstbackend.New().Launch("fakesrc ! fakesink")
	if !errors.Is(err, gstbackend.ErrCGORequired) {
		t.Fatalf("expected ErrCGORequired, got %v", err)
	}
}
