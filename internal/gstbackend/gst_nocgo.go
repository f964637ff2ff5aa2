//go:build !cgo

package gstbackend

import "gstplayer/internal/native"

// Init is a no-op when cgo is disabled.
func Init() {}

// Backend is a stub whose Launch always fails.
type Backend struct{}

// New returns the stub Backend.
func New() *Backend {
	return &Backend{}
}

// Launch returns ErrCGORequired.
func (b *Backend) Launch(string) (native.Pipeline, error) {
	return nil, ErrCGORequired
}

// Available reports whether this build can launch GStreamer pipelines.
const Available = false
